package dto

import (
	"time"

	"go-hospital-booking/internal/domain/entity"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int64         `json:"id"`
	User      *UserResponse `json:"user,omitempty"`
	Action    string        `json:"action"`
	Metadata  entity.JSON   `json:"metadata,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}
