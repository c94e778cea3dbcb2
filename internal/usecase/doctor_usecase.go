package usecase

import (
	"context"

	"go-hospital-booking/internal/converter"
	"go-hospital-booking/internal/delivery/dto"
	"go-hospital-booking/internal/domain/entity"
	"go-hospital-booking/internal/domain/repository"
	"go-hospital-booking/internal/service"
	"go-hospital-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type DoctorUsecase interface {
	ListDoctors(ctx context.Context, category string) ([]dto.UserResponse, error)
	UpdateProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.UserResponse, error)
}

type doctorUsecase struct {
	log          *logrus.Logger
	validate     *validator.CustomValidator
	transactor   repository.Transactor
	userRepo     repository.UserRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	log *logrus.Logger,
	validate *validator.CustomValidator,
	transactor repository.Transactor,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		log:          log,
		validate:     validate,
		transactor:   transactor,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

// ListDoctors returns doctors newest first. An empty category or "All"
// lists every doctor; any other value matches the speciality exactly, so an
// unknown category yields an empty list.
func (u *doctorUsecase) ListDoctors(ctx context.Context, category string) ([]dto.UserResponse, error) {
	var filter entity.DoctorFilter
	if category != "" && category != entity.SpecialityAll {
		filter.Speciality = entity.Speciality(category)
	}

	doctors, err := u.userRepo.FindDoctors(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return converter.UsersToResponses(doctors), nil
}

// UpdateProfile applies the doctor's own partial profile update.
func (u *doctorUsecase) UpdateProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.UserResponse, error) {
	if err := validate(u.validate, req); err != nil {
		return nil, err
	}

	var updated *entity.User
	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		doctor, err := u.userRepo.FindDoctorByID(ctx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor: %+v", err)
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}
		before := converter.UserToResponse(doctor)

		if req.Speciality != nil {
			doctor.Speciality = entity.Speciality(*req.Speciality)
		}
		if req.Experience != nil {
			doctor.Experience = *req.Experience
		}
		if req.Description != nil {
			doctor.Description = *req.Description
		}
		if req.ProfileImage != nil {
			doctor.ProfileImage = *req.ProfileImage
		}

		if err := u.userRepo.Update(ctx, doctor); err != nil {
			u.log.Warnf("Failed to update doctor profile: %+v", err)
			return err
		}

		updated = doctor
		return u.auditService.LogUpdate(ctx, &doctorID, entity.AuditActionProfileUpdate, "user", doctorID.String(),
			before, converter.UserToResponse(doctor))
	})
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(updated), nil
}
