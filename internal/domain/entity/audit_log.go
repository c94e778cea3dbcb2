package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog represents a system audit trail entry. UserID is the actor and is
// cleared when the actor account is deleted.
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON is a free-form document stored in a jsonb column.
type JSON map[string]interface{}

// Value implements driver.Valuer.
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}

	out := JSON{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*j = out
	return nil
}

// Common audit actions
const (
	AuditActionUserRegister        = "user.register"
	AuditActionUserLogin           = "user.login"
	AuditActionUserLogout          = "user.logout"
	AuditActionAdminCreate         = "admin.create"
	AuditActionBookingCreate       = "booking.create"
	AuditActionBookingStatusUpdate = "booking.status_update"
	AuditActionProfileUpdate       = "profile.update"
	AuditActionDoctorCreate        = "doctor.create"
	AuditActionDoctorUpdate        = "doctor.update"
	AuditActionDoctorDelete        = "doctor.delete"
)
