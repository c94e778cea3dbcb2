package usecase

import (
	"context"
	"time"

	"go-hospital-booking/internal/converter"
	"go-hospital-booking/internal/delivery/dto"
	"go-hospital-booking/internal/domain/entity"
	"go-hospital-booking/internal/domain/repository"
	"go-hospital-booking/internal/service"
	"go-hospital-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Accepted appointmentTime layouts. The short forms are what an HTML
// datetime-local input submits.
var appointmentTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type BookingUsecase interface {
	Book(ctx context.Context, patientID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]dto.BookingResponse, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]dto.BookingResponse, error)
	ListAll(ctx context.Context) ([]dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, bookingID, doctorID uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
}

type bookingUsecase struct {
	log          *logrus.Logger
	validate     *validator.CustomValidator
	transactor   repository.Transactor
	userRepo     repository.UserRepository
	bookingRepo  repository.BookingRepository
	auditService service.AuditService
	now          func() time.Time
}

func NewBookingUsecase(
	log *logrus.Logger,
	validate *validator.CustomValidator,
	transactor repository.Transactor,
	userRepo repository.UserRepository,
	bookingRepo repository.BookingRepository,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		log:          log,
		validate:     validate,
		transactor:   transactor,
		userRepo:     userRepo,
		bookingRepo:  bookingRepo,
		auditService: auditService,
		now:          time.Now,
	}
}

// Book creates a pending booking for patientID with an existing doctor.
func (u *bookingUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if err := validate(u.validate, req); err != nil {
		return nil, err
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, ErrInvalidInput.WithFields(map[string]string{"doctorId": "doctorId must be a valid UUID"})
	}

	appointmentTime, err := parseAppointmentTime(req.AppointmentTime)
	if err != nil {
		return nil, err
	}

	doctor, err := u.userRepo.FindDoctorByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if !appointmentTime.After(u.now()) {
		return nil, ErrAppointmentInPast
	}

	booking := &entity.Booking{
		PatientID:       patientID,
		DoctorID:        doctorID,
		Category:        entity.Speciality(req.Category),
		AppointmentTime: appointmentTime.UTC(),
		Message:         req.Message,
		Status:          entity.BookingStatusPending,
	}

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.bookingRepo.Create(ctx, booking); err != nil {
			u.log.Warnf("Failed to create booking: %+v", err)
			return err
		}
		return u.auditService.LogCreate(ctx, &patientID, entity.AuditActionBookingCreate, "booking", booking.ID.String(),
			converter.BookingToResponse(booking))
	})
	if err != nil {
		return nil, err
	}

	return u.findJoined(ctx, booking.ID)
}

func (u *bookingUsecase) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]dto.BookingResponse, error) {
	bookings, err := u.bookingRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for patient %s: %+v", patientID, err)
		return nil, err
	}
	return converter.BookingsToResponses(bookings), nil
}

func (u *bookingUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]dto.BookingResponse, error) {
	bookings, err := u.bookingRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	return converter.BookingsToResponses(bookings), nil
}

func (u *bookingUsecase) ListAll(ctx context.Context) ([]dto.BookingResponse, error) {
	bookings, err := u.bookingRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find bookings: %+v", err)
		return nil, err
	}
	return converter.BookingsToResponses(bookings), nil
}

// UpdateStatus decides a pending booking on behalf of its doctor. Repeating
// the decision a booking already carries succeeds without a write; changing
// a decided booking is a conflict.
func (u *bookingUsecase) UpdateStatus(ctx context.Context, bookingID, doctorID uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	if err := validate(u.validate, req); err != nil {
		return nil, err
	}
	next := entity.BookingStatus(req.Status)

	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		booking, err := u.bookingRepo.FindByID(ctx, bookingID)
		if err != nil {
			u.log.Warnf("Failed to find booking: %+v", err)
			return err
		}
		if booking == nil {
			return ErrBookingNotFound
		}
		if !booking.IsOwnedByDoctor(doctorID) {
			return ErrBookingNotOwned
		}
		if booking.Status.IsTerminal() {
			if booking.Status == next {
				return nil
			}
			return ErrBookingAlreadyDecided
		}
		if !booking.Status.CanTransitionTo(next) {
			return ErrInvalidInput
		}

		affected, err := u.bookingRepo.UpdateStatus(ctx, bookingID, doctorID, entity.BookingStatusPending, next)
		if err != nil {
			u.log.Warnf("Failed to update booking status: %+v", err)
			return err
		}
		if affected == 0 {
			// Decided concurrently since it was read.
			return u.checkConcurrentDecision(ctx, bookingID, next)
		}

		return u.auditService.LogUpdate(ctx, &doctorID, entity.AuditActionBookingStatusUpdate, "booking", bookingID.String(),
			entity.JSON{"status": booking.Status}, entity.JSON{"status": next})
	})
	if err != nil {
		return nil, err
	}

	return u.findJoined(ctx, bookingID)
}

func (u *bookingUsecase) checkConcurrentDecision(ctx context.Context, bookingID uuid.UUID, next entity.BookingStatus) error {
	current, err := u.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrBookingNotFound
	}
	if current.Status == next {
		return nil
	}
	return ErrBookingAlreadyDecided
}

func (u *bookingUsecase) findJoined(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		u.log.Warnf("Failed to reload booking: %+v", err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return converter.BookingToResponse(booking), nil
}

func parseAppointmentTime(value string) (time.Time, error) {
	for _, layout := range appointmentTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidAppointmentTime.WithFields(map[string]string{
		"appointmentTime": "appointmentTime must be an RFC3339 timestamp",
	})
}
