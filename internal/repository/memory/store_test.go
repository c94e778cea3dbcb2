package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hospital-booking/internal/domain/entity"
	domainRepo "go-hospital-booking/internal/domain/repository"

	"github.com/google/uuid"
)

func TestUserUniqueness(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	if err := users.Create(ctx, &entity.User{Username: "alice", Email: "a@x.com"}); err != nil {
		t.Fatal(err)
	}

	err := users.Create(ctx, &entity.User{Username: "bob", Email: "a@x.com"})
	if !errors.Is(err, domainRepo.ErrDuplicateEmail) {
		t.Errorf("duplicate email err = %v", err)
	}
	err = users.Create(ctx, &entity.User{Username: "alice", Email: "b@x.com"})
	if !errors.Is(err, domainRepo.ErrDuplicateUsername) {
		t.Errorf("duplicate username err = %v", err)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	doctor := &entity.User{Username: "doc", Email: "d@x.com", Role: entity.RoleDoctor}
	if err := store.Users().Create(ctx, doctor); err != nil {
		t.Fatal(err)
	}
	booking := &entity.Booking{DoctorID: doctor.ID, PatientID: uuid.New(), AppointmentTime: time.Now()}
	if err := store.Bookings().Create(ctx, booking); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := store.Transactor().WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := store.Bookings().DeleteByDoctorID(ctx, doctor.ID); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	got, _ := store.Bookings().FindByID(ctx, booking.ID)
	if got == nil {
		t.Fatal("booking should survive a rolled back transaction")
	}
}

func TestBookingsNewestFirstAndJoined(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	patient := &entity.User{Username: "pat", Email: "p@x.com"}
	doctor := &entity.User{Username: "doc", Email: "d@x.com", Role: entity.RoleDoctor}
	_ = store.Users().Create(ctx, patient)
	_ = store.Users().Create(ctx, doctor)

	first := &entity.Booking{PatientID: patient.ID, DoctorID: doctor.ID}
	second := &entity.Booking{PatientID: patient.ID, DoctorID: doctor.ID}
	_ = store.Bookings().Create(ctx, first)
	_ = store.Bookings().Create(ctx, second)

	list, err := store.Bookings().FindByPatientID(ctx, patient.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if list[0].Doctor == nil || list[0].Doctor.Username != "doc" || list[0].Patient == nil {
		t.Error("expected patient and doctor to be joined")
	}
	if list[0].Status != entity.BookingStatusPending {
		t.Errorf("default status = %q", list[0].Status)
	}
}

func TestConditionalStatusUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	doctorID := uuid.New()
	b := &entity.Booking{DoctorID: doctorID, PatientID: uuid.New()}
	_ = store.Bookings().Create(ctx, b)

	n, _ := store.Bookings().UpdateStatus(ctx, b.ID, uuid.New(), entity.BookingStatusPending, entity.BookingStatusAccepted)
	if n != 0 {
		t.Error("other doctor must not update")
	}
	n, _ = store.Bookings().UpdateStatus(ctx, b.ID, doctorID, entity.BookingStatusPending, entity.BookingStatusAccepted)
	if n != 1 {
		t.Error("owning doctor should update pending booking")
	}
	n, _ = store.Bookings().UpdateStatus(ctx, b.ID, doctorID, entity.BookingStatusPending, entity.BookingStatusRejected)
	if n != 0 {
		t.Error("decided booking must not transition again")
	}
}
