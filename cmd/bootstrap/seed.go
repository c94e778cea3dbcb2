package bootstrap

import (
	"context"

	"go-hospital-booking/config"
	"go-hospital-booking/internal/domain/entity"
	domainRepo "go-hospital-booking/internal/domain/repository"
	"go-hospital-booking/internal/repository"
	"go-hospital-booking/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type seedDoctor struct {
	username    string
	email       string
	speciality  entity.Speciality
	experience  int
	description string
}

var sampleDoctors = []seedDoctor{
	{"Dr. Sharma", "dr.sharma@hospital.com", entity.SpecialityCardiologist, 15,
		"Experienced cardiologist with expertise in heart diseases and cardiac care."},
	{"Dr. Patel", "dr.patel@hospital.com", entity.SpecialityDermatologist, 12,
		"Specialist in skin diseases and dermatological treatments."},
	{"Dr. Singh", "dr.singh@hospital.com", entity.SpecialityNeurologist, 18,
		"Expert in neurological disorders and brain health management."},
	{"Dr. Verma", "dr.verma@hospital.com", entity.SpecialityPathologist, 10,
		"Experienced pathologist for accurate lab diagnoses."},
	{"Dr. Gupta", "dr.gupta@hospital.com", entity.SpecialityEndocrinologist, 14,
		"Specialist in hormonal disorders and endocrine system diseases."},
	{"Dr. Kumar", "dr.kumar@hospital.com", entity.SpecialityCardiologist, 11,
		"Dedicated cardiologist with advanced cardiac care techniques."},
	{"Dr. Nair", "dr.nair@hospital.com", entity.SpecialityDermatologist, 9,
		"Compassionate dermatologist for skin and hair care."},
	{"Dr. Menon", "dr.menon@hospital.com", entity.SpecialityNeurologist, 16,
		"Renowned neurologist specializing in complex neurological cases."},
}

// SeedResult counts the accounts a seed run created and skipped.
type SeedResult struct {
	Created int
	Skipped int
}

// SeedDatabase seeds the PostgreSQL database behind db.
func SeedDatabase(ctx context.Context, db *gorm.DB, cfg config.SeedConfig, log *logrus.Logger) (SeedResult, error) {
	return Seed(ctx, repository.NewTransactor(db), repository.NewUserRepository(db), cfg, log)
}

// Seed creates the sample doctors, a sample patient and an admin. Accounts
// whose email already exists are left untouched, so the run is repeatable.
func Seed(ctx context.Context, transactor domainRepo.Transactor, userRepo domainRepo.UserRepository, cfg config.SeedConfig, log *logrus.Logger) (SeedResult, error) {
	type account struct {
		user  entity.User
		plain string
	}

	accounts := make([]account, 0, len(sampleDoctors)+2)
	for _, d := range sampleDoctors {
		accounts = append(accounts, account{
			user: entity.User{
				Username:    d.username,
				Email:       d.email,
				Role:        entity.RoleDoctor,
				Speciality:  d.speciality,
				Experience:  d.experience,
				Description: d.description,
			},
			plain: cfg.DoctorPassword,
		})
	}
	accounts = append(accounts,
		account{
			user:  entity.User{Username: "John Doe", Email: cfg.PatientEmail, Role: entity.RolePatient},
			plain: cfg.PatientPassword,
		},
		account{
			user:  entity.User{Username: cfg.AdminUsername, Email: cfg.AdminEmail, Role: entity.RoleAdmin},
			plain: cfg.AdminPassword,
		},
	)

	var result SeedResult
	err := transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for i := range accounts {
			a := &accounts[i]

			existing, err := userRepo.FindByEmail(ctx, a.user.Email)
			if err != nil {
				return err
			}
			if existing != nil {
				result.Skipped++
				continue
			}

			hashed, err := password.Hash(a.plain)
			if err != nil {
				return err
			}
			a.user.Password = hashed

			if err := userRepo.Create(ctx, &a.user); err != nil {
				return err
			}
			result.Created++
			log.WithFields(logrus.Fields{"email": a.user.Email, "role": a.user.Role}).Info("Seeded account")
		}
		return nil
	})
	if err != nil {
		log.Warnf("Failed to seed database: %+v", err)
		return SeedResult{}, err
	}

	return result, nil
}
