package repository

import (
	"context"

	"go-hospital-booking/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingRepository reads return bookings with Patient and Doctor loaded,
// newest first.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Booking, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Booking, error)
	FindAll(ctx context.Context) ([]entity.Booking, error)
	UpdateStatus(ctx context.Context, id, doctorID uuid.UUID, from, to entity.BookingStatus) (int64, error)
	DeleteByDoctorID(ctx context.Context, doctorID uuid.UUID) (int64, error)
}
