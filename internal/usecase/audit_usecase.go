package usecase

import (
	"context"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
)

// AuditUseCase exposes the audit trail to administrators.
type AuditUseCase struct {
	auditRepo AuditRepository
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(auditRepo AuditRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// List returns audit logs matching filter, newest first.
func (uc *AuditUseCase) List(ctx context.Context, actor domain.Actor, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrInsufficientRole
	}

	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.auditRepo.List(ctx, filter)
}
