package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account record. Doctor-only fields are empty for other roles.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username     string     `gorm:"type:varchar(30);uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"type:text;not null" json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'patient';index" json:"role"`
	Speciality   Speciality `gorm:"type:varchar(32);index" json:"speciality,omitempty"`
	Experience   int        `gorm:"not null;default:0" json:"experience"`
	Description  string     `gorm:"type:varchar(500)" json:"description,omitempty"`
	ProfileImage string     `gorm:"type:text" json:"profileImage,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DoctorFilter narrows a doctor directory query.
type DoctorFilter struct {
	Speciality Speciality
}
