package agenda

import (
	"context"
	"time"

	domain "github.com/agendafacil/agenda-saas/internal/domain/agenda"
	"github.com/agendafacil/agenda-saas/internal/dto"
	"github.com/agendafacil/agenda-saas/internal/httperr"
)

type GetAgenda struct {
	repo domain.Repository
}

func NewGetAgenda(repo domain.Repository) *GetAgenda {
	return &GetAgenda{repo: repo}
}

// Execute monta a visão completa da agenda de um profissional no período:
// agendamentos, janelas semanais e bloqueios
func (uc *GetAgenda) Execute(
	ctx context.Context,
	tenantID uint,
	providerID uint,
	from *time.Time,
	to *time.Time,
) (*dto.AgendaDTO, error) {

	if _, err := uc.repo.GetProvider(ctx, tenantID, providerID); err != nil {
		return nil, httperr.ErrBusiness("provider_not_found")
	}

	appointments, err := uc.repo.ListAppointments(ctx, tenantID, domain.AppointmentFilter{
		ProviderID: &providerID,
		DateStart:  from,
		DateEnd:    to,
	})
	if err != nil {
		return nil, err
	}

	availabilities, err := uc.repo.ListAvailabilities(ctx, providerID)
	if err != nil {
		return nil, err
	}

	blocks, err := uc.repo.ListBlocks(ctx, providerID, from, to)
	if err != nil {
		return nil, err
	}

	out := &dto.AgendaDTO{
		ProviderID:     providerID,
		Availabilities: availabilities,
		Blocks:         blocks,
	}
	for _, ap := range appointments {
		out.Appointments = append(out.Appointments, dto.AppointmentFromModel(&ap))
	}

	return out, nil
}
