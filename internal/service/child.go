package service

import (
	"context"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
	"github.com/AlexanderModestov/baby-sleep-pred/internal/storage"
)

type ChildRequest struct {
	UserID    int64  `json:"user_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Gender    string `json:"gender" validate:"required,oneof=Male Female"`
}

type ChildUpdateRequest struct {
	Name      string `json:"name" validate:"required"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Gender    string `json:"gender" validate:"required,oneof=Male Female"`
}

func ValidateChildRequest(req *ChildRequest) error {
	return validate.Struct(req)
}

func ValidateChildUpdateRequest(req *ChildUpdateRequest) error {
	return validate.Struct(req)
}

func CreateChild(ctx context.Context, childRepo storage.ChildRepository, req *ChildRequest) (*internal.Child, error) {
	child := &internal.Child{
		UserID:    req.UserID,
		Name:      req.Name,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
	}
	if err := childRepo.CreateChild(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

// UpdateChild fully replaces the mutable fields of the child.
func UpdateChild(ctx context.Context, childRepo storage.ChildRepository, id int64, req *ChildUpdateRequest) (*internal.Child, error) {
	child := &internal.Child{
		ID:        id,
		Name:      req.Name,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
	}
	if err := childRepo.UpdateChild(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}
