package service

import (
	"context"

	"go-hospital-booking/internal/domain/entity"
	"go-hospital-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditService records audit trail entries. Called with a transactional
// context, the entry commits or rolls back with the surrounding unit of work.
type AuditService interface {
	Log(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) error
	LogCreate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// Log writes a free-form entry
func (s *auditService) Log(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return s.Log(ctx, userID, action, changeMetadata(entityName, entityID, nil, newValue))
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.Log(ctx, userID, action, changeMetadata(entityName, entityID, oldValue, newValue))
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.Log(ctx, userID, action, changeMetadata(entityName, entityID, oldValue, nil))
}

func changeMetadata(entityName, entityID string, oldValue, newValue interface{}) entity.JSON {
	return entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	}
}
