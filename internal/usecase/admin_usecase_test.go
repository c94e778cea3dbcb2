package usecase

import (
	"context"
	"errors"
	"testing"

	"go-hospital-booking/internal/delivery/dto"
	"go-hospital-booking/internal/domain/entity"
	"go-hospital-booking/pkg/apperror"

	"github.com/google/uuid"
)

func TestAddDoctorAndAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, &entity.User{Username: "root", Email: "root@x.com", Role: entity.RoleAdmin}, "admin123")

	doctor, err := env.admin.AddDoctor(ctx, admin.ID, &dto.AddDoctorRequest{
		Username:   "newdoc",
		Email:      "newdoc@x.com",
		Password:   "doctor123",
		Speciality: "Endocrinologist",
	})
	if err != nil {
		t.Fatalf("AddDoctor() error = %v", err)
	}
	if doctor.Role != "doctor" || doctor.Experience == nil || *doctor.Experience != 0 {
		t.Errorf("AddDoctor() = %+v", doctor)
	}

	_, err = env.admin.AddDoctor(ctx, admin.ID, &dto.AddDoctorRequest{
		Username: "doc2", Email: "doc2@x.com", Password: "doctor123", Speciality: "Surgeon",
	})
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Errorf("invalid speciality error = %v, want validation", err)
	}

	_, err = env.admin.AddAdmin(ctx, admin.ID, &dto.AddAdminRequest{Username: "other", Email: "newdoc@x.com", Password: "admin123"})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("duplicate email error = %v, want ErrUserAlreadyExists", err)
	}

	created, err := env.admin.AddAdmin(ctx, admin.ID, &dto.AddAdminRequest{Username: "admin2", Email: "admin2@x.com", Password: "admin123"})
	if err != nil {
		t.Fatalf("AddAdmin() error = %v", err)
	}
	if created.Role != "admin" {
		t.Errorf("AddAdmin() role = %s", created.Role)
	}

	// The admin can sign in with the provisioned password.
	if _, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "admin2@x.com", Password: "admin123"}); err != nil {
		t.Errorf("Login() as new admin error = %v", err)
	}

	doctors, _ := env.admin.ListDoctors(ctx)
	if len(doctors) != 1 || doctors[0].Username != "newdoc" {
		t.Errorf("ListDoctors() = %+v", doctors)
	}
}

func TestUpdateDoctor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, &entity.User{Username: "root", Email: "root@x.com", Role: entity.RoleAdmin}, "admin123")
	doctor := env.seedDoctor(t, "doc", entity.SpecialityCardiologist)
	env.seedDoctor(t, "taken", entity.SpecialityNeurologist)

	taken := "taken"
	if _, err := env.admin.UpdateDoctor(ctx, admin.ID, doctor.ID, &dto.UpdateDoctorRequest{Username: &taken}); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("duplicate username error = %v, want ErrUserAlreadyExists", err)
	}
	if _, err := env.admin.UpdateDoctor(ctx, admin.ID, admin.ID, &dto.UpdateDoctorRequest{}); !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("non-doctor error = %v, want ErrDoctorNotFound", err)
	}

	// Keeping its own username is not a conflict.
	same := "doc"
	speciality := "Pathologist"
	resp, err := env.admin.UpdateDoctor(ctx, admin.ID, doctor.ID, &dto.UpdateDoctorRequest{Username: &same, Speciality: &speciality})
	if err != nil {
		t.Fatalf("UpdateDoctor() error = %v", err)
	}
	if resp.Speciality != "Pathologist" || resp.Email != doctor.Email || *resp.Experience != doctor.Experience {
		t.Errorf("UpdateDoctor() = %+v", resp)
	}
}

func TestDeleteDoctorCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, &entity.User{Username: "root", Email: "root@x.com", Role: entity.RoleAdmin}, "admin123")
	patient := env.seedPatient(t, "pat")
	doomed := env.seedDoctor(t, "doomed", entity.SpecialityCardiologist)
	kept := env.seedDoctor(t, "kept", entity.SpecialityCardiologist)

	env.book(t, patient, doomed)
	env.book(t, patient, doomed)
	survivor := env.book(t, patient, kept)

	login, err := env.auth.Login(ctx, &dto.LoginRequest{Email: doomed.Email, Password: "doctor123"})
	if err != nil {
		t.Fatal(err)
	}

	if err := env.admin.DeleteDoctor(ctx, admin.ID, doomed.ID); err != nil {
		t.Fatalf("DeleteDoctor() error = %v", err)
	}

	all, _ := env.bookings.ListAll(ctx)
	if len(all) != 1 || all[0].ID != survivor.ID {
		t.Fatalf("remaining bookings = %+v, want only %s", all, survivor.ID)
	}
	if u, _ := env.store.Users().FindByID(ctx, doomed.ID); u != nil {
		t.Fatal("doctor still exists")
	}
	if _, err := env.auth.VerifyToken(ctx, login.Token); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("deleted doctor token error = %v, want ErrTokenRevoked", err)
	}

	if err := env.admin.DeleteDoctor(ctx, admin.ID, doomed.ID); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("second delete error = %v, want ErrDoctorNotFound", err)
	}
	if err := env.admin.DeleteDoctor(ctx, admin.ID, uuid.New()); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("unknown id error = %v, want ErrDoctorNotFound", err)
	}

	logs, err := env.audit.GetAllAuditLogs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) == 0 || logs[0].Action != entity.AuditActionDoctorDelete {
		t.Fatalf("latest audit entry = %+v, want doctor.delete", logs)
	}
	if logs[0].User == nil || logs[0].User.ID != admin.ID {
		t.Errorf("audit actor = %+v, want admin", logs[0].User)
	}

	entry, err := env.audit.GetAuditLog(ctx, logs[0].ID)
	if err != nil || entry.Action != entity.AuditActionDoctorDelete {
		t.Fatalf("GetAuditLog() = %+v, %v", entry, err)
	}
	if entry.Metadata["entity_id"] != doomed.ID.String() || entry.Metadata["new_value"] != nil {
		t.Errorf("delete metadata = %+v", entry.Metadata)
	}
	if old, ok := entry.Metadata["old_value"].(entity.JSON); !ok || old["bookings_deleted"] != int64(2) {
		t.Errorf("delete old value = %#v", entry.Metadata["old_value"])
	}
	if _, err := env.audit.GetAuditLog(ctx, 9999); !errors.Is(err, ErrAuditLogNotFound) {
		t.Errorf("missing audit log error = %v", err)
	}
}
