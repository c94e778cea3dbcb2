package http

import (
	"net/http"

	"go-hospital-booking/internal/delivery/http/handler"
	"go-hospital-booking/internal/delivery/http/middleware"
	"go-hospital-booking/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router          *mux.Router
	log             *logrus.Logger
	authHandler     *handler.AuthHandler
	patientHandler  *handler.PatientHandler
	doctorHandler   *handler.DoctorHandler
	adminHandler    *handler.AdminHandler
	auditLogHandler *handler.AuditLogHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	log *logrus.Logger,
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	adminHandler *handler.AdminHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		log:             log,
		authHandler:     authHandler,
		patientHandler:  patientHandler,
		doctorHandler:   doctorHandler,
		adminHandler:    adminHandler,
		auditLogHandler: auditLogHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

// Setup registers every route and returns the root handler. CORS, request
// logging and panic recovery wrap the router itself so they also cover
// preflight requests and unmatched routes.
func (r *Router) Setup() http.Handler {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Patient routes
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/profile", r.patientHandler.GetProfile).Methods(http.MethodGet)
	patient.HandleFunc("/doctors", r.patientHandler.ListDoctors).Methods(http.MethodGet)
	patient.HandleFunc("/book", r.patientHandler.Book).Methods(http.MethodPost)
	patient.HandleFunc("/bookings", r.patientHandler.ListBookings).Methods(http.MethodGet)

	// Doctor routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/bookings", r.doctorHandler.ListBookings).Methods(http.MethodGet)
	doctor.HandleFunc("/update-status/{id}", r.doctorHandler.UpdateStatus).Methods(http.MethodPatch)
	doctor.HandleFunc("/update-profile", r.doctorHandler.UpdateProfile).Methods(http.MethodPatch)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/add-admin", r.adminHandler.AddAdmin).Methods(http.MethodPost)
	admin.HandleFunc("/add-doctor", r.adminHandler.AddDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.adminHandler.ListDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", r.adminHandler.ListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/update-doctor/{id}", r.adminHandler.UpdateDoctor).Methods(http.MethodPatch)
	admin.HandleFunc("/delete-doctor/{id}", r.adminHandler.DeleteDoctor).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found")
	})
	r.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, "Method not allowed")
	})

	var h http.Handler = r.router
	h = r.corsMiddleware.Handle(h)
	h = middleware.LogRequests(r.log)(h)
	h = middleware.Recover(r.log)(h)
	return h
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, "Server is running", nil)
}
