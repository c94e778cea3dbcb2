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

type AdminUsecase interface {
	AddAdmin(ctx context.Context, actorID uuid.UUID, req *dto.AddAdminRequest) (*dto.UserResponse, error)
	AddDoctor(ctx context.Context, actorID uuid.UUID, req *dto.AddDoctorRequest) (*dto.UserResponse, error)
	ListDoctors(ctx context.Context) ([]dto.UserResponse, error)
	UpdateDoctor(ctx context.Context, actorID, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.UserResponse, error)
	DeleteDoctor(ctx context.Context, actorID, doctorID uuid.UUID) error
}

type adminUsecase struct {
	log          *logrus.Logger
	validate     *validator.CustomValidator
	transactor   repository.Transactor
	userRepo     repository.UserRepository
	bookingRepo  repository.BookingRepository
	auditService service.AuditService
	sessions     service.SessionStore
	accounts     accountCreator
}

func NewAdminUsecase(
	log *logrus.Logger,
	validate *validator.CustomValidator,
	transactor repository.Transactor,
	userRepo repository.UserRepository,
	bookingRepo repository.BookingRepository,
	auditService service.AuditService,
	sessions service.SessionStore,
) AdminUsecase {
	return &adminUsecase{
		log:          log,
		validate:     validate,
		transactor:   transactor,
		userRepo:     userRepo,
		bookingRepo:  bookingRepo,
		auditService: auditService,
		sessions:     sessions,
		accounts:     accountCreator{log: log, userRepo: userRepo},
	}
}

func (u *adminUsecase) AddAdmin(ctx context.Context, actorID uuid.UUID, req *dto.AddAdminRequest) (*dto.UserResponse, error) {
	if err := validate(u.validate, req); err != nil {
		return nil, err
	}

	admin := &entity.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     entity.RoleAdmin,
	}

	if err := u.createAudited(ctx, actorID, admin, req.Password, entity.AuditActionAdminCreate); err != nil {
		return nil, err
	}
	return converter.UserToResponse(admin), nil
}

func (u *adminUsecase) AddDoctor(ctx context.Context, actorID uuid.UUID, req *dto.AddDoctorRequest) (*dto.UserResponse, error) {
	if err := validate(u.validate, req); err != nil {
		return nil, err
	}

	doctor := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		Role:         entity.RoleDoctor,
		Speciality:   entity.Speciality(req.Speciality),
		Description:  req.Description,
		ProfileImage: req.ProfileImage,
	}
	if req.Experience != nil {
		doctor.Experience = *req.Experience
	}

	if err := u.createAudited(ctx, actorID, doctor, req.Password, entity.AuditActionDoctorCreate); err != nil {
		return nil, err
	}
	return converter.UserToResponse(doctor), nil
}

func (u *adminUsecase) createAudited(ctx context.Context, actorID uuid.UUID, user *entity.User, plainPassword, action string) error {
	return u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.accounts.create(ctx, user, plainPassword); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, &actorID, action, "user", user.ID.String(), converter.UserToResponse(user))
	})
}

func (u *adminUsecase) ListDoctors(ctx context.Context) ([]dto.UserResponse, error) {
	doctors, err := u.userRepo.FindDoctors(ctx, entity.DoctorFilter{})
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}
	return converter.UsersToResponses(doctors), nil
}

// UpdateDoctor changes only the supplied fields of a doctor.
func (u *adminUsecase) UpdateDoctor(ctx context.Context, actorID, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.UserResponse, error) {
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

		var username, email string
		if req.Username != nil {
			username = *req.Username
		}
		if req.Email != nil {
			email = *req.Email
		}
		if username != "" || email != "" {
			existing, err := u.userRepo.FindConflicting(ctx, username, email, doctorID)
			if err != nil {
				u.log.Warnf("Failed to check existing user: %+v", err)
				return err
			}
			if existing != nil {
				return ErrUserAlreadyExists
			}
		}

		if username != "" {
			doctor.Username = username
		}
		if email != "" {
			doctor.Email = email
		}
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
			if translated := translateUserWriteError(err); translated != err {
				return translated
			}
			u.log.Warnf("Failed to update doctor: %+v", err)
			return err
		}

		updated = doctor
		return u.auditService.LogUpdate(ctx, &actorID, entity.AuditActionDoctorUpdate, "user", doctorID.String(),
			before, converter.UserToResponse(doctor))
	})
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(updated), nil
}

// DeleteDoctor removes a doctor and every booking addressed to them as one
// unit of work, then revokes the doctor's sessions.
func (u *adminUsecase) DeleteDoctor(ctx context.Context, actorID, doctorID uuid.UUID) error {
	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		doctor, err := u.userRepo.FindDoctorByID(ctx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor: %+v", err)
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		removed, err := u.bookingRepo.DeleteByDoctorID(ctx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to delete bookings of doctor %s: %+v", doctorID, err)
			return err
		}

		affected, err := u.userRepo.Delete(ctx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to delete doctor %s: %+v", doctorID, err)
			return err
		}
		if affected == 0 {
			return ErrDoctorNotFound
		}

		return u.auditService.LogDelete(ctx, &actorID, entity.AuditActionDoctorDelete, "user", doctorID.String(), entity.JSON{
			"user":             converter.UserToResponse(doctor),
			"bookings_deleted": removed,
		})
	})
	if err != nil {
		return err
	}

	// Lookups of a deleted identity already fail, so a failed revoke only
	// leaves dead session keys behind until they expire.
	if err := u.sessions.RevokeAll(ctx, doctorID); err != nil {
		u.log.Warnf("Failed to revoke sessions of deleted doctor %s: %+v", doctorID, err)
	}

	return nil
}
