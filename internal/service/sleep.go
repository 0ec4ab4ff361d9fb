package service

import (
	"context"
	"time"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
	"github.com/AlexanderModestov/baby-sleep-pred/internal/storage"
)

// DefaultSessionLimit caps session listings when the caller does not supply one.
const DefaultSessionLimit = 10

type StartSessionRequest struct {
	ChildID   int64     `json:"child_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
}

type EndSessionRequest struct {
	EndTime time.Time `json:"end_time" validate:"required"`
	Quality *string   `json:"quality" validate:"omitempty,oneof='Slept well' 'Average sleep' 'Poor sleep' 'Very poor sleep'"`
}

func ValidateStartSessionRequest(req *StartSessionRequest) error {
	return validate.Struct(req)
}

func ValidateEndSessionRequest(req *EndSessionRequest) error {
	return validate.Struct(req)
}

// StartSession opens a new ongoing session. It does not check whether the
// child already has one in progress; the newest ongoing row wins on reads.
func StartSession(ctx context.Context, sessionRepo storage.SessionRepository, req *StartSessionRequest) (*internal.SleepSession, error) {
	session := &internal.SleepSession{
		ChildID:   req.ChildID,
		StartTime: req.StartTime,
	}
	if err := sessionRepo.StartSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession completes the session. Re-ending an already completed session is
// accepted and leaves it completed.
func EndSession(ctx context.Context, sessionRepo storage.SessionRepository, id int64, req *EndSessionRequest) error {
	return sessionRepo.EndSession(ctx, id, req.EndTime, req.Quality)
}

func ListSessions(ctx context.Context, sessionRepo storage.SessionRepository, childID int64, limit int) ([]internal.SleepSession, error) {
	if limit <= 0 {
		limit = DefaultSessionLimit
	}
	return sessionRepo.ListSessions(ctx, childID, limit)
}

func GetOngoingSession(ctx context.Context, sessionRepo storage.SessionRepository, childID int64) (*internal.SleepSession, error) {
	return sessionRepo.GetOngoingSession(ctx, childID)
}
