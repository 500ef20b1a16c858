package agenda

import (
	"context"

	domain "github.com/agendafacil/agenda-saas/internal/domain/agenda"
	"github.com/agendafacil/agenda-saas/internal/models"
)

type SyncBusinessHours struct {
	repo domain.Repository
}

func NewSyncBusinessHours(repo domain.Repository) *SyncBusinessHours {
	return &SyncBusinessHours{repo: repo}
}

// Execute — mesmo contrato do sync de disponibilidades, escopado ao tenant
func (uc *SyncBusinessHours) Execute(
	ctx context.Context,
	tenantID uint,
	rows []domain.WindowUpsert,
) ([]models.TenantBusinessHour, error) {

	for _, row := range rows {
		if err := domain.ValidateWindow(row.Weekday, row.StartTime, row.EndTime); err != nil {
			return nil, err
		}
	}

	result := make([]models.TenantBusinessHour, 0, len(rows))

	err := uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		for _, row := range rows {
			saved, err := tx.UpsertBusinessHour(ctx, tenantID, row)
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
