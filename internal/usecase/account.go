package usecase

import (
	"context"

	"go-hospital-booking/internal/domain/entity"
	"go-hospital-booking/internal/domain/repository"
	"go-hospital-booking/pkg/password"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// accountCreator provisions identities for every role. The pre-check gives a
// friendly conflict; the unique indexes catch concurrent duplicates.
type accountCreator struct {
	log      *logrus.Logger
	userRepo repository.UserRepository
}

func (c accountCreator) create(ctx context.Context, user *entity.User, plainPassword string) error {
	existing, err := c.userRepo.FindConflicting(ctx, user.Username, user.Email, uuid.Nil)
	if err != nil {
		c.log.Warnf("Failed to check existing user: %+v", err)
		return err
	}
	if existing != nil {
		return ErrUserAlreadyExists
	}

	hashed, err := password.Hash(plainPassword)
	if err != nil {
		c.log.Warnf("Failed to hash password: %+v", err)
		return err
	}
	user.Password = hashed

	if err := c.userRepo.Create(ctx, user); err != nil {
		if translated := translateUserWriteError(err); translated != err {
			return translated
		}
		c.log.Warnf("Failed to create user: %+v", err)
		return err
	}

	return nil
}
