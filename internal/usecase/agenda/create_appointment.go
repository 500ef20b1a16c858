package agenda

import (
	"context"
	"time"

	"github.com/agendafacil/agenda-saas/internal/audit"
	domain "github.com/agendafacil/agenda-saas/internal/domain/agenda"
	"github.com/agendafacil/agenda-saas/internal/httperr"
	"github.com/agendafacil/agenda-saas/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	TenantID uint
	UserID   uint

	ServiceID  uint
	ProviderID uint
	ClientID   uint

	DateStart      time.Time
	StatusAgendaID *uint
	Notes          string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Serviço (escopado ao tenant) — define a duração
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.TenantID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// DateEnd é sempre derivado; o cliente nunca controla o fim
	dateEnd := domain.EndFromDuration(in.DateStart, service.DurationMinutes)

	ap := &models.Appointment{
		TenantID:       in.TenantID,
		ServiceID:      service.ID,
		ProviderID:     in.ProviderID,
		ClientID:       in.ClientID,
		DateStart:      in.DateStart,
		DateEnd:        dateEnd,
		StatusAgendaID: in.StatusAgendaID,
		Notes:          in.Notes,
	}

	// --------------------------------------------------
	// 2. Conflito + insert na mesma transação (FOR UPDATE
	//    nas linhas do profissional fecha a corrida)
	// --------------------------------------------------
	err = uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		conflicts, err := tx.CheckConflicts(
			ctx,
			in.TenantID,
			in.ProviderID,
			in.DateStart,
			dateEnd,
			0,
		)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return httperr.ErrBusiness("schedule_conflict")
		}

		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("schedule_conflict")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 3. Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointment(ctx, in.TenantID, ap.ID)
}
