package handler

import (
	"net/http"

	"go-hospital-booking/internal/delivery/dto"
	"go-hospital-booking/internal/usecase"
	"go-hospital-booking/pkg/response"

	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	adminUsecase   usecase.AdminUsecase
	bookingUsecase usecase.BookingUsecase
	log            *logrus.Logger
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, bookingUsecase usecase.BookingUsecase, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		adminUsecase:   adminUsecase,
		bookingUsecase: bookingUsecase,
		log:            log,
	}
}

// AddAdmin provisions another administrator
// @Param request body dto.AddAdminRequest true "Admin"
// @Success 201 {object} response.Response
// @Router /admin/add-admin [post]
func (h *AdminHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.AddAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	admin, err := h.adminUsecase.AddAdmin(r.Context(), actor.ID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusCreated, "Admin added successfully", admin)
}

// AddDoctor provisions a doctor account
// @Param request body dto.AddDoctorRequest true "Doctor"
// @Success 201 {object} response.Response
// @Router /admin/add-doctor [post]
func (h *AdminHandler) AddDoctor(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.AddDoctorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	doctor, err := h.adminUsecase.AddDoctor(r.Context(), actor.ID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusCreated, "Doctor added successfully", doctor)
}

// @Router /admin/doctors [get]
func (h *AdminHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.adminUsecase.ListDoctors(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.SuccessWithCount(w, http.StatusOK, "", doctors, len(doctors))
}

// @Router /admin/bookings [get]
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingUsecase.ListAll(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.SuccessWithCount(w, http.StatusOK, "", bookings, len(bookings))
}

// UpdateDoctor applies a partial update to a doctor
// @Param id path string true "Doctor ID"
// @Param request body dto.UpdateDoctorRequest true "Fields to change"
// @Router /admin/update-doctor/{id} [patch]
func (h *AdminHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	doctorID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req dto.UpdateDoctorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	doctor, err := h.adminUsecase.UpdateDoctor(r.Context(), actor.ID, doctorID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

// DeleteDoctor removes a doctor together with their bookings
// @Param id path string true "Doctor ID"
// @Router /admin/delete-doctor/{id} [delete]
func (h *AdminHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	doctorID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.adminUsecase.DeleteDoctor(r.Context(), actor.ID, doctorID); err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}
