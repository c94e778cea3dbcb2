package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"go-hospital-booking/config"
	"go-hospital-booking/internal/delivery/dto"
	"go-hospital-booking/internal/domain/entity"
	"go-hospital-booking/internal/repository/memory"
	"go-hospital-booking/internal/service"
	"go-hospital-booking/pkg/jwt"
	"go-hospital-booking/pkg/password"
	"go-hospital-booking/pkg/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type testEnv struct {
	store    *memory.Store
	redis    *miniredis.Miniredis
	sessions service.SessionStore
	jwt      *jwt.JWTService
	auth     AuthUsecase
	doctors  DoctorUsecase
	bookings BookingUsecase
	admin    AdminUsecase
	audit    AuditLogUsecase
}

func newTestEnv(t *testing.T) *testEnv {
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
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		Issuer:       "hospital-booking-test",
		AccessExpiry: time.Hour,
	})

	return &testEnv{
		store:    store,
		redis:    mr,
		sessions: sessions,
		jwt:      jwtService,
		auth:     NewAuthUsecase(log, v, store.Transactor(), store.Users(), auditService, sessions, jwtService),
		doctors:  NewDoctorUsecase(log, v, store.Transactor(), store.Users(), auditService),
		bookings: NewBookingUsecase(log, v, store.Transactor(), store.Users(), store.Bookings(), auditService),
		admin:    NewAdminUsecase(log, v, store.Transactor(), store.Users(), store.Bookings(), auditService, sessions),
		audit:    NewAuditLogUsecase(log, store.AuditLogs()),
	}
}

// seedUser stores a user directly, bypassing validation.
func (e *testEnv) seedUser(t *testing.T, user *entity.User, plain string) *entity.User {
	t.Helper()
	hashed, err := password.Hash(plain)
	if err != nil {
		t.Fatal(err)
	}
	user.Password = hashed
	if err := e.store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", user.Email, err)
	}
	return user
}

func (e *testEnv) seedDoctor(t *testing.T, username string, speciality entity.Speciality) *entity.User {
	t.Helper()
	return e.seedUser(t, &entity.User{
		Username:   username,
		Email:      username + "@hospital.com",
		Role:       entity.RoleDoctor,
		Speciality: speciality,
		Experience: 5,
	}, "doctor123")
}

func (e *testEnv) seedPatient(t *testing.T, username string) *entity.User {
	t.Helper()
	return e.seedUser(t, &entity.User{
		Username: username,
		Email:    username + "@x.com",
		Role:     entity.RolePatient,
	}, "patient123")
}

func (e *testEnv) book(t *testing.T, patient, doctor *entity.User) *dto.BookingResponse {
	t.Helper()
	resp, err := e.bookings.Book(context.Background(), patient.ID, &dto.CreateBookingRequest{
		DoctorID:        doctor.ID.String(),
		Category:        string(doctor.Speciality),
		AppointmentTime: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	return resp
}
