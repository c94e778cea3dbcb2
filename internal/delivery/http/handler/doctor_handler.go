package handler

import (
	"net/http"

	"go-hospital-booking/internal/delivery/dto"
	"go-hospital-booking/internal/usecase"
	"go-hospital-booking/pkg/response"

	"github.com/sirupsen/logrus"
)

type DoctorHandler struct {
	doctorUsecase  usecase.DoctorUsecase
	bookingUsecase usecase.BookingUsecase
	log            *logrus.Logger
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, bookingUsecase usecase.BookingUsecase, log *logrus.Logger) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase:  doctorUsecase,
		bookingUsecase: bookingUsecase,
		log:            log,
	}
}

// ListBookings returns bookings addressed to the doctor
// @Router /doctor/bookings [get]
func (h *DoctorHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	bookings, err := h.bookingUsecase.ListForDoctor(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.SuccessWithCount(w, http.StatusOK, "", bookings, len(bookings))
}

// UpdateStatus accepts or rejects a pending booking
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingStatusRequest true "Status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/update-status/{id} [patch]
func (h *DoctorHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req dto.UpdateBookingStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	booking, err := h.bookingUsecase.UpdateStatus(r.Context(), bookingID, user.ID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking "+booking.Status+" successfully", booking)
}

// UpdateProfile updates the doctor's own profile
// @Param request body dto.UpdateDoctorProfileRequest true "Profile"
// @Router /doctor/update-profile [patch]
func (h *DoctorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.UpdateDoctorProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	doctor, err := h.doctorUsecase.UpdateProfile(r.Context(), user.ID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", doctor)
}
