package storage

import (
	"context"
	"errors"
	"time"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("storage: not found")

type UserRepository interface {
	UpsertUser(ctx context.Context, user *internal.User) error
}

type ChildRepository interface {
	CreateChild(ctx context.Context, child *internal.Child) error
	GetChild(ctx context.Context, id int64) (*internal.Child, error)
	ListChildren(ctx context.Context, userID int64) ([]internal.Child, error)
	UpdateChild(ctx context.Context, child *internal.Child) error
	DeleteChild(ctx context.Context, id int64) error
}

type SessionRepository interface {
	StartSession(ctx context.Context, session *internal.SleepSession) error
	EndSession(ctx context.Context, id int64, endTime time.Time, quality *string) error
	ListSessions(ctx context.Context, childID int64, limit int) ([]internal.SleepSession, error)
	ListCompletedSessions(ctx context.Context, childID int64, limit int) ([]internal.SleepSession, error)
	GetOngoingSession(ctx context.Context, childID int64) (*internal.SleepSession, error)
}
