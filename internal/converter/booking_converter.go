package converter

import (
	"go-hospital-booking/internal/delivery/dto"
	"go-hospital-booking/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:              booking.ID,
		PatientID:       booking.PatientID,
		DoctorID:        booking.DoctorID,
		Category:        string(booking.Category),
		AppointmentTime: booking.AppointmentTime,
		Message:         booking.Message,
		Status:          string(booking.Status),
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}

	// Include joined identities if loaded
	if p := booking.Patient; p != nil {
		response.Patient = &dto.BookingPatientSummary{
			ID:       p.ID,
			Username: p.Username,
			Email:    p.Email,
		}
	}
	if d := booking.Doctor; d != nil {
		response.Doctor = &dto.BookingDoctorSummary{
			ID:           d.ID,
			Username:     d.Username,
			Email:        d.Email,
			Speciality:   string(d.Speciality),
			Experience:   d.Experience,
			ProfileImage: d.ProfileImage,
		}
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookingToResponse(&bookings[i])
	}
	return responses
}
