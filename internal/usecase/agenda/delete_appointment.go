package agenda

import (
	"context"

	"github.com/agendafacil/agenda-saas/internal/audit"
	domain "github.com/agendafacil/agenda-saas/internal/domain/agenda"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute remove o agendamento escopado ao tenant; retorna false quando o
// registro não existe ou pertence a outro tenant (nunca vaza existência)
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	tenantID uint,
	userID uint,
	appointmentID uint,
) (bool, error) {

	found, err := uc.repo.DeleteAppointment(ctx, tenantID, appointmentID)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return true, nil
}
