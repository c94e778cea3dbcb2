package repository

import (
	"context"
	"errors"

	"go-hospital-booking/internal/domain/entity"
	domainRepo "go-hospital-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return conn(ctx, r.db).Omit("Patient", "Doctor").Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.joined(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Booking, error) {
	return r.list(r.joined(ctx).Where("patient_id = ?", patientID))
}

func (r *bookingRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Booking, error) {
	return r.list(r.joined(ctx).Where("doctor_id = ?", doctorID))
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]entity.Booking, error) {
	return r.list(r.joined(ctx))
}

// UpdateStatus moves a booking from one status to another only if it is still
// in the expected status and addressed to doctorID.
// Returns affected rows: 1 = transitioned, 0 = precondition no longer holds.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id, doctorID uuid.UUID, from, to entity.BookingStatus) (int64, error) {
	result := conn(ctx, r.db).Model(&entity.Booking{}).
		Where("id = ? AND doctor_id = ? AND status = ?", id, doctorID, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) DeleteByDoctorID(ctx context.Context, doctorID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Where("doctor_id = ?", doctorID).Delete(&entity.Booking{})
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) joined(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).Preload("Patient").Preload("Doctor")
}

func (r *bookingRepository) list(query *gorm.DB) ([]entity.Booking, error) {
	var bookings []entity.Booking
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
