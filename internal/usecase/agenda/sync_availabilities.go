package agenda

import (
	"context"

	domain "github.com/agendafacil/agenda-saas/internal/domain/agenda"
	"github.com/agendafacil/agenda-saas/internal/httperr"
	"github.com/agendafacil/agenda-saas/internal/models"
)

type SyncAvailabilities struct {
	repo domain.Repository
}

func NewSyncAvailabilities(repo domain.Repository) *SyncAvailabilities {
	return &SyncAvailabilities{repo: repo}
}

// Execute faz o upsert por weekday de todas as janelas do profissional.
// Idempotente: a mesma carga duas vezes mantém uma linha por weekday.
// O lote inteiro roda numa transação — ou tudo, ou nada.
func (uc *SyncAvailabilities) Execute(
	ctx context.Context,
	tenantID uint,
	providerID uint,
	rows []domain.WindowUpsert,
) ([]models.ProfessionalAvailability, error) {

	if _, err := uc.repo.GetProvider(ctx, tenantID, providerID); err != nil {
		return nil, httperr.ErrBusiness("provider_not_found")
	}

	for _, row := range rows {
		if err := domain.ValidateWindow(row.Weekday, row.StartTime, row.EndTime); err != nil {
			return nil, err
		}
	}

	result := make([]models.ProfessionalAvailability, 0, len(rows))

	err := uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		for _, row := range rows {
			saved, err := tx.UpsertAvailability(ctx, providerID, row)
			if err != nil {
				return err
			}
			result = append(result, *saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
