package usecase

import (
	"errors"

	"go-hospital-booking/internal/domain/repository"
	"go-hospital-booking/pkg/apperror"
	"go-hospital-booking/pkg/validator"
)

var (
	ErrInvalidInput           = apperror.Validation("validation failed")
	ErrInvalidAppointmentTime = apperror.Validation("invalid appointment time")
	ErrAppointmentInPast      = apperror.Validation("appointment time must be in the future")
	ErrUserAlreadyExists      = apperror.Conflict("user already exists with this email or username")
	ErrBookingAlreadyDecided  = apperror.Conflict("booking has already been decided")
	ErrInvalidCredentials     = apperror.Auth("invalid email or password")
	ErrInvalidToken           = apperror.Auth("invalid or expired token")
	ErrTokenRevoked           = apperror.Auth("token has been revoked")
	ErrBookingNotOwned        = apperror.Forbidden("you do not have permission to update this booking")
	ErrUserNotFound           = apperror.NotFound("user not found")
	ErrDoctorNotFound         = apperror.NotFound("doctor not found")
	ErrBookingNotFound        = apperror.NotFound("booking not found")
	ErrAuditLogNotFound       = apperror.NotFound("audit log not found")
)

// validate runs struct validation and reports failures per field.
func validate(v *validator.CustomValidator, req interface{}) error {
	if err := v.Validate(req); err != nil {
		return ErrInvalidInput.WithFields(v.FormatValidationErrors(err))
	}
	return nil
}

// translateUserWriteError maps unique index violations to a conflict.
func translateUserWriteError(err error) error {
	if errors.Is(err, repository.ErrDuplicateEmail) || errors.Is(err, repository.ErrDuplicateUsername) {
		return ErrUserAlreadyExists.Wrap(err)
	}
	return err
}
