package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusAccepted BookingStatus = "accepted"
	BookingStatusRejected BookingStatus = "rejected"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is defined out of s.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusAccepted || s == BookingStatusRejected
}

// IsDecision reports whether s is a status a doctor may move a booking to.
func (s BookingStatus) IsDecision() bool {
	return s == BookingStatusAccepted || s == BookingStatusRejected
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Only pending bookings can be decided; decided bookings are final.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingStatusPending && next.IsDecision()
}

// Booking is an appointment request linking a patient and a doctor.
type Booking struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"patientId"`
	DoctorID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"doctorId"`
	Category        Speciality    `gorm:"type:varchar(32);not null" json:"category"`
	AppointmentTime time.Time     `gorm:"not null" json:"appointmentTime"`
	Message         string        `gorm:"type:varchar(500)" json:"message,omitempty"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time     `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsOwnedByDoctor reports whether doctorID is the doctor the booking is addressed to.
func (b *Booking) IsOwnedByDoctor(doctorID uuid.UUID) bool {
	return b.DoctorID == doctorID
}
