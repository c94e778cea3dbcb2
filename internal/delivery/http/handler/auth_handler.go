package handler

import (
	"net/http"

	"go-hospital-booking/internal/delivery/dto"
	"go-hospital-booking/internal/delivery/http/middleware"
	"go-hospital-booking/internal/usecase"
	"go-hospital-booking/pkg/response"

	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	log         *logrus.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		log:         log,
	}
}

// Register handles patient self-registration
// @Summary Register a new patient
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	resp, err := h.authUsecase.Register(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", resp)
}

// Login handles user login
// @Summary Login user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	resp, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Login successful", resp)
}

// Logout revokes the caller's session
// @Summary Logout user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Access denied. No token provided.")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), token); err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Logged out successfully", nil)
}

// GetCurrentUser returns the caller's identity
// @Summary Get current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
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
