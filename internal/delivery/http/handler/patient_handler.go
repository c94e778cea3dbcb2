package handler

import (
	"net/http"

	"go-hospital-booking/internal/delivery/dto"
	"go-hospital-booking/internal/usecase"
	"go-hospital-booking/pkg/response"

	"github.com/sirupsen/logrus"
)

type PatientHandler struct {
	authUsecase    usecase.AuthUsecase
	doctorUsecase  usecase.DoctorUsecase
	bookingUsecase usecase.BookingUsecase
	log            *logrus.Logger
}

func NewPatientHandler(
	authUsecase usecase.AuthUsecase,
	doctorUsecase usecase.DoctorUsecase,
	bookingUsecase usecase.BookingUsecase,
	log *logrus.Logger,
) *PatientHandler {
	return &PatientHandler{
		authUsecase:    authUsecase,
		doctorUsecase:  doctorUsecase,
		bookingUsecase: bookingUsecase,
		log:            log,
	}
}

// GetProfile returns the patient's own profile
// @Router /patient/profile [get]
func (h *PatientHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	resp, err := h.authUsecase.GetCurrentUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "", resp)
}

// ListDoctors returns the doctor directory, optionally narrowed by ?category=
// @Router /patient/doctors [get]
func (h *PatientHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.ListDoctors(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.SuccessWithCount(w, http.StatusOK, "", doctors, len(doctors))
}

// Book creates an appointment request
// @Param request body dto.CreateBookingRequest true "Booking Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patient/book [post]
func (h *PatientHandler) Book(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	booking, err := h.bookingUsecase.Book(r.Context(), user.ID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", booking)
}

// ListBookings returns the patient's bookings, newest first
// @Router /patient/bookings [get]
func (h *PatientHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	bookings, err := h.bookingUsecase.ListForPatient(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.SuccessWithCount(w, http.StatusOK, "", bookings, len(bookings))
}
