package repository

import (
	"context"
	"errors"

	"go-hospital-booking/internal/domain/entity"
	domainRepo "go-hospital-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return translateUserError(conn(ctx, r.db).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.first(conn(ctx, r.db).Where("id = ?", id))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(conn(ctx, r.db).Where("email = ?", email))
}

// FindConflicting returns any user other than excludeID holding username or
// email. Empty arguments are ignored.
func (r *userRepository) FindConflicting(ctx context.Context, username, email string, excludeID uuid.UUID) (*entity.User, error) {
	if username == "" && email == "" {
		return nil, nil
	}

	query := conn(ctx, r.db)
	switch {
	case username != "" && email != "":
		query = query.Where("username = ? OR email = ?", username, email)
	case username != "":
		query = query.Where("username = ?", username)
	default:
		query = query.Where("email = ?", email)
	}
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return r.first(query)
}

func (r *userRepository) FindDoctorByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.first(conn(ctx, r.db).Where("id = ? AND role = ?", id, entity.RoleDoctor))
}

func (r *userRepository) FindDoctors(ctx context.Context, filter entity.DoctorFilter) ([]entity.User, error) {
	var doctors []entity.User
	query := conn(ctx, r.db).Where("role = ?", entity.RoleDoctor)
	if filter.Speciality != "" {
		query = query.Where("speciality = ?", filter.Speciality)
	}
	if err := query.Order("created_at DESC").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return translateUserError(conn(ctx, r.db).Save(user).Error)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&entity.User{})
	return result.RowsAffected, result.Error
}

func (r *userRepository) first(query *gorm.DB) (*entity.User, error) {
	var user entity.User
	err := query.First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
