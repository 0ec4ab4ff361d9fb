package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
	"github.com/AlexanderModestov/baby-sleep-pred/internal/storage"
)

var validate = validator.New()

type UserRequest struct {
	TelegramID int64  `json:"telegram_id" validate:"required"`
	Username   string `json:"username" validate:"omitempty"`
	FirstName  string `json:"first_name" validate:"omitempty"`
}

func ValidateUserRequest(req *UserRequest) error {
	return validate.Struct(req)
}

// UpsertUser creates the user or overwrites its mutable fields if the
// telegram id already exists.
func UpsertUser(ctx context.Context, userRepo storage.UserRepository, req *UserRequest) (*internal.User, error) {
	user := &internal.User{
		TelegramID: req.TelegramID,
		Username:   req.Username,
		FirstName:  req.FirstName,
		CreatedAt:  time.Now().UTC(),
	}
	if err := userRepo.UpsertUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
