package services

import (
	"budgetbook/internal/logger"

	"go.uber.org/zap"
)

// auditService records write operations to the structured log.
type auditService struct {
	log *zap.SugaredLogger
}

// NewAuditService creates a new AuditServicer.
func NewAuditService() AuditServicer {
	return &auditService{log: logger.Named("audit")}
}

// Log records an audit event. It never fails the calling operation.
func (s *auditService) Log(action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{}) {
	fields := []interface{}{
		"action", action,
		"resource_type", resourceType,
		"ip_address", ipAddress,
	}
	if resourceID != 0 {
		fields = append(fields, "resource_id", resourceID)
	}
	if len(changes) > 0 {
		fields = append(fields, "changes", changes)
	}
	s.log.Infow("audit", fields...)
}
