package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hospital-booking/config"
	"go-hospital-booking/internal/delivery/http/handler"
	"go-hospital-booking/internal/delivery/http/middleware"
	"go-hospital-booking/internal/domain/entity"
	"go-hospital-booking/internal/repository/memory"
	"go-hospital-booking/internal/service"
	"go-hospital-booking/internal/usecase"
	"go-hospital-booking/pkg/jwt"
	"go-hospital-booking/pkg/password"
	"go-hospital-booking/pkg/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Count   *int              `json:"count"`
	Error   map[string]string `json:"error"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	store   *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := memory.NewStore()
	v := validator.NewValidator()
	sessions := service.NewSessionStore(client, log)
	auditService := service.NewAuditService(log, store.AuditLogs())
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test", Issuer: "test", AccessExpiry: time.Hour})

	authUsecase := usecase.NewAuthUsecase(log, v, store.Transactor(), store.Users(), auditService, sessions, jwtService)
	doctorUsecase := usecase.NewDoctorUsecase(log, v, store.Transactor(), store.Users(), auditService)
	bookingUsecase := usecase.NewBookingUsecase(log, v, store.Transactor(), store.Users(), store.Bookings(), auditService)
	adminUsecase := usecase.NewAdminUsecase(log, v, store.Transactor(), store.Users(), store.Bookings(), auditService, sessions)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, store.AuditLogs())

	router := NewRouter(
		log,
		handler.NewAuthHandler(authUsecase, log),
		handler.NewPatientHandler(authUsecase, doctorUsecase, bookingUsecase, log),
		handler.NewDoctorHandler(doctorUsecase, bookingUsecase, log),
		handler.NewAdminHandler(adminUsecase, bookingUsecase, log),
		handler.NewAuditLogHandler(auditLogUsecase, log),
		middleware.NewAuthMiddleware(authUsecase, log),
		middleware.NewCORSMiddleware([]string{"*"}),
	)

	return &testServer{t: t, handler: router.Setup(), store: store}
}

func (s *testServer) seed(user *entity.User, plain string) *entity.User {
	s.t.Helper()
	hashed, err := password.Hash(plain)
	if err != nil {
		s.t.Fatal(err)
	}
	user.Password = hashed
	if err := s.store.Users().Create(context.Background(), user); err != nil {
		s.t.Fatal(err)
	}
	return user
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		s.t.Fatalf("%s %s: invalid envelope %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

func (s *testServer) login(email, plain string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": plain})
	if code != http.StatusOK {
		s.t.Fatalf("login %s: status %d (%s)", email, code, env.Message)
	}
	var data struct {
		Token string `json:"token"`
	}
	decode(s.t, env.Data, &data)
	return data.Token
}

func decode(t *testing.T, raw json.RawMessage, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
}

func TestBookingLifecycle(t *testing.T) {
	srv := newTestServer(t)
	cardio := srv.seed(&entity.User{Username: "drheart", Email: "heart@hospital.com", Role: entity.RoleDoctor,
		Speciality: entity.SpecialityCardiologist, Experience: 10}, "doctor123")
	srv.seed(&entity.User{Username: "drskin", Email: "skin@hospital.com", Role: entity.RoleDoctor,
		Speciality: entity.SpecialityDermatologist}, "doctor123")

	// Register and sign in as a patient.
	code, env := srv.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "patient1", "email": "p@x.com", "password": "secret",
	})
	if code != http.StatusCreated || !env.Success {
		t.Fatalf("register: status %d (%s)", code, env.Message)
	}
	patientToken := srv.login("p@x.com", "secret")

	// Directory filtered by speciality.
	code, env = srv.do(http.MethodGet, "/api/patient/doctors?category=Cardiologist", patientToken, nil)
	if code != http.StatusOK || env.Count == nil || *env.Count != 1 {
		t.Fatalf("list doctors: status %d count %v", code, env.Count)
	}
	var doctors []struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	decode(t, env.Data, &doctors)
	if doctors[0].Username != "drheart" || doctors[0].Password != "" {
		t.Fatalf("doctors = %+v", doctors)
	}

	code, env = srv.do(http.MethodGet, "/api/patient/doctors?category=Surgeon", patientToken, nil)
	if code != http.StatusOK || env.Count == nil || *env.Count != 0 {
		t.Fatalf("list doctors unknown category: status %d count %v", code, env.Count)
	}

	// Book an appointment.
	code, env = srv.do(http.MethodPost, "/api/patient/book", patientToken, map[string]string{
		"doctorId":        doctors[0].ID,
		"category":        "Cardiologist",
		"appointmentTime": time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"message":         "checkup",
	})
	if code != http.StatusCreated {
		t.Fatalf("book: status %d (%s)", code, env.Message)
	}
	var booking struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Doctor struct {
			Username string `json:"username"`
		} `json:"doctor"`
	}
	decode(t, env.Data, &booking)
	if booking.Status != "pending" || booking.Doctor.Username != "drheart" {
		t.Fatalf("booking = %+v", booking)
	}

	// The doctor sees the pending request and accepts it.
	doctorToken := srv.login(cardio.Email, "doctor123")
	code, env = srv.do(http.MethodGet, "/api/doctor/bookings", doctorToken, nil)
	if code != http.StatusOK || env.Count == nil || *env.Count != 1 {
		t.Fatalf("doctor bookings: status %d count %v", code, env.Count)
	}

	code, env = srv.do(http.MethodPatch, "/api/doctor/update-status/"+booking.ID, doctorToken, map[string]string{"status": "accepted"})
	if code != http.StatusOK {
		t.Fatalf("update status: status %d (%s)", code, env.Message)
	}

	// The patient sees the decision.
	code, env = srv.do(http.MethodGet, "/api/patient/bookings", patientToken, nil)
	if code != http.StatusOK {
		t.Fatalf("patient bookings: status %d", code)
	}
	var mine []struct {
		Status string `json:"status"`
	}
	decode(t, env.Data, &mine)
	if len(mine) != 1 || mine[0].Status != "accepted" {
		t.Fatalf("patient bookings = %+v", mine)
	}

	// A decided booking cannot be reversed.
	code, _ = srv.do(http.MethodPatch, "/api/doctor/update-status/"+booking.ID, doctorToken, map[string]string{"status": "rejected"})
	if code != http.StatusBadRequest {
		t.Fatalf("reverse decision: status %d, want 400", code)
	}
}

func TestBookingErrors(t *testing.T) {
	srv := newTestServer(t)
	doctor := srv.seed(&entity.User{Username: "doc", Email: "doc@hospital.com", Role: entity.RoleDoctor,
		Speciality: entity.SpecialityNeurologist}, "doctor123")
	srv.seed(&entity.User{Username: "pat", Email: "pat@x.com", Role: entity.RolePatient}, "patient123")
	token := srv.login("pat@x.com", "patient123")

	code, env := srv.do(http.MethodPost, "/api/patient/book", token, map[string]string{
		"doctorId":        doctor.ID.String(),
		"category":        "Neurologist",
		"appointmentTime": time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
	})
	if code != http.StatusBadRequest || env.Success {
		t.Fatalf("past appointment: status %d", code)
	}

	code, _ = srv.do(http.MethodPost, "/api/patient/book", token, map[string]string{
		"doctorId":        "00000000-0000-0000-0000-000000000001",
		"category":        "Neurologist",
		"appointmentTime": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	})
	if code != http.StatusNotFound {
		t.Fatalf("unknown doctor: status %d, want 404", code)
	}

	code, env = srv.do(http.MethodPost, "/api/patient/book", token, map[string]string{"category": "Nope"})
	if code != http.StatusBadRequest || env.Error["doctorId"] == "" || env.Error["category"] == "" {
		t.Fatalf("invalid body: status %d errors %v", code, env.Error)
	}
}

func TestAccessGuard(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(&entity.User{Username: "pat", Email: "pat@x.com", Role: entity.RolePatient}, "patient123")
	srv.seed(&entity.User{Username: "root", Email: "admin@hospital.com", Role: entity.RoleAdmin}, "admin123")
	patientToken := srv.login("pat@x.com", "patient123")
	adminToken := srv.login("admin@hospital.com", "admin123")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"health is public", http.MethodGet, "/api/health", "", http.StatusOK},
		{"no token", http.MethodGet, "/api/patient/bookings", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/patient/bookings", "garbage", http.StatusUnauthorized},
		{"patient on admin route", http.MethodGet, "/api/admin/doctors", patientToken, http.StatusForbidden},
		{"patient on doctor route", http.MethodGet, "/api/doctor/bookings", patientToken, http.StatusForbidden},
		{"admin on patient route", http.MethodGet, "/api/patient/doctors", adminToken, http.StatusForbidden},
		{"admin on admin route", http.MethodGet, "/api/admin/doctors", adminToken, http.StatusOK},
		{"admin audit logs", http.MethodGet, "/api/admin/audit-logs", adminToken, http.StatusOK},
		{"any role me", http.MethodGet, "/api/auth/me", patientToken, http.StatusOK},
		{"unknown route", http.MethodGet, "/api/nope", "", http.StatusNotFound},
		{"wrong method", http.MethodGet, "/api/auth/login", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := srv.do(tt.method, tt.path, tt.token, nil)
			if code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", code, tt.want, env.Message)
			}
			if (code < 300) != env.Success {
				t.Errorf("success = %v for status %d", env.Success, code)
			}
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(&entity.User{Username: "pat", Email: "pat@x.com", Role: entity.RolePatient}, "patient123")
	token := srv.login("pat@x.com", "patient123")

	if code, _ := srv.do(http.MethodPost, "/api/auth/logout", token, nil); code != http.StatusOK {
		t.Fatalf("logout: status %d", code)
	}
	if code, _ := srv.do(http.MethodGet, "/api/auth/me", token, nil); code != http.StatusUnauthorized {
		t.Fatalf("me after logout: status %d, want 401", code)
	}
}

func TestAdminManagesDoctors(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(&entity.User{Username: "root", Email: "admin@hospital.com", Role: entity.RoleAdmin}, "admin123")
	token := srv.login("admin@hospital.com", "admin123")

	code, env := srv.do(http.MethodPost, "/api/admin/add-doctor", token, map[string]interface{}{
		"username": "newdoc", "email": "newdoc@hospital.com", "password": "doctor123",
		"speciality": "Pathologist", "experience": 3,
	})
	if code != http.StatusCreated {
		t.Fatalf("add doctor: status %d (%s)", code, env.Message)
	}
	var doctor struct {
		ID string `json:"id"`
	}
	decode(t, env.Data, &doctor)

	code, env = srv.do(http.MethodPatch, "/api/admin/update-doctor/"+doctor.ID, token, map[string]interface{}{"experience": 4})
	if code != http.StatusOK {
		t.Fatalf("update doctor: status %d (%s)", code, env.Message)
	}
	var updated struct {
		Experience int    `json:"experience"`
		Speciality string `json:"speciality"`
	}
	decode(t, env.Data, &updated)
	if updated.Experience != 4 || updated.Speciality != "Pathologist" {
		t.Fatalf("updated doctor = %+v", updated)
	}

	if code, _ := srv.do(http.MethodDelete, "/api/admin/delete-doctor/"+doctor.ID, token, nil); code != http.StatusOK {
		t.Fatalf("delete doctor: status %d", code)
	}
	if code, _ := srv.do(http.MethodDelete, "/api/admin/delete-doctor/"+doctor.ID, token, nil); code != http.StatusNotFound {
		t.Fatalf("second delete: status %d, want 404", code)
	}

	code, env = srv.do(http.MethodGet, "/api/admin/audit-logs", token, nil)
	if code != http.StatusOK || env.Count == nil || *env.Count < 3 {
		t.Fatalf("audit logs: status %d count %v", code, env.Count)
	}
}
