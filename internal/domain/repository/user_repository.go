package repository

import (
	"context"

	"go-hospital-booking/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository finders return (nil, nil) when no record matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindConflicting(ctx context.Context, username, email string, excludeID uuid.UUID) (*entity.User, error)
	FindDoctorByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindDoctors(ctx context.Context, filter entity.DoctorFilter) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
