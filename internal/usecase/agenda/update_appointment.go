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

// Campos nil ficam como estão no registro
type UpdateAppointmentInput struct {
	TenantID      uint
	UserID        uint
	AppointmentID uint

	ServiceID      *uint
	ProviderID     *uint
	ClientID       *uint
	DateStart      *time.Time
	StatusAgendaID *uint
	Notes          *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.TenantID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// --------------------------------------------------
	// 1. Só re-resolve serviço/duração se serviço ou
	//    início mudaram; senão reutiliza o fim gravado
	// --------------------------------------------------
	if in.ServiceID != nil || in.DateStart != nil {
		serviceID := ap.ServiceID
		if in.ServiceID != nil {
			serviceID = *in.ServiceID
		}

		service, err := uc.repo.GetService(ctx, in.TenantID, serviceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}

		if in.DateStart != nil {
			ap.DateStart = *in.DateStart
		}
		ap.ServiceID = service.ID
		ap.DateEnd = domain.EndFromDuration(ap.DateStart, service.DurationMinutes)
	}

	if in.ProviderID != nil {
		ap.ProviderID = *in.ProviderID
	}
	if in.ClientID != nil {
		ap.ClientID = *in.ClientID
	}
	if in.StatusAgendaID != nil {
		ap.StatusAgendaID = in.StatusAgendaID
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	// --------------------------------------------------
	// 2. Re-checa conflito excluindo o próprio registro
	// --------------------------------------------------
	err = uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		conflicts, err := tx.CheckConflicts(
			ctx,
			in.TenantID,
			ap.ProviderID,
			ap.DateStart,
			ap.DateEnd,
			ap.ID,
		)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return httperr.ErrBusiness("schedule_conflict")
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("schedule_conflict")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   &in.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointment(ctx, in.TenantID, ap.ID)
}
