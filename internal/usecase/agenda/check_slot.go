package agenda

import (
	"context"
	"time"

	domain "github.com/agendafacil/agenda-saas/internal/domain/agenda"
	"github.com/agendafacil/agenda-saas/internal/httperr"
)

// SlotCheck é o resultado das três portas consultadas de forma
// independente; quem chama decide o que fazer com cada uma
type SlotCheck struct {
	WithinTenantHours  bool `json:"within_tenant_hours"`
	WithinAvailability bool `json:"within_availability"`
	HasBlock           bool `json:"has_block"`
	HasConflict        bool `json:"has_conflict"`
}

type CheckSlot struct {
	repo domain.Repository
}

func NewCheckSlot(repo domain.Repository) *CheckSlot {
	return &CheckSlot{repo: repo}
}

func (uc *CheckSlot) Execute(
	ctx context.Context,
	tenantID uint,
	providerID uint,
	start time.Time,
	end time.Time,
) (*SlotCheck, error) {

	if !end.After(start) {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}

	if _, err := uc.repo.GetProvider(ctx, tenantID, providerID); err != nil {
		return nil, httperr.ErrBusiness("provider_not_found")
	}

	withinTenant, err := uc.repo.IsWithinTenantHours(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	withinAvailability, err := uc.repo.IsWithinAvailability(ctx, providerID, start, end)
	if err != nil {
		return nil, err
	}

	blocked, err := uc.repo.HasBlock(ctx, providerID, start, end)
	if err != nil {
		return nil, err
	}

	conflicts, err := uc.repo.CheckConflicts(ctx, tenantID, providerID, start, end, 0)
	if err != nil {
		return nil, err
	}

	return &SlotCheck{
		WithinTenantHours:  withinTenant,
		WithinAvailability: withinAvailability,
		HasBlock:           blocked,
		HasConflict:        len(conflicts) > 0,
	}, nil
}
