package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	DoctorID        string `json:"doctorId" validate:"required,uuid"`
	Category        string `json:"category" validate:"required,speciality"`
	AppointmentTime string `json:"appointmentTime" validate:"required"`
	Message         string `json:"message" validate:"omitempty,max=500"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// Response DTOs

type BookingPatientSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type BookingDoctorSummary struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Speciality   string    `json:"speciality"`
	Experience   int       `json:"experience"`
	ProfileImage string    `json:"profileImage,omitempty"`
}

type BookingResponse struct {
	ID              uuid.UUID              `json:"id"`
	PatientID       uuid.UUID              `json:"patientId"`
	DoctorID        uuid.UUID              `json:"doctorId"`
	Category        string                 `json:"category"`
	AppointmentTime time.Time              `json:"appointmentTime"`
	Message         string                 `json:"message"`
	Status          string                 `json:"status"`
	Patient         *BookingPatientSummary `json:"patient,omitempty"`
	Doctor          *BookingDoctorSummary  `json:"doctor,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}
