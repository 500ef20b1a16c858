package agenda

import (
	"context"
	"testing"

	domain "github.com/agendafacil/agenda-saas/internal/domain/agenda"
	"github.com/agendafacil/agenda-saas/internal/httperr"
)

func TestSyncAvailabilities_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	provider := repo.seedProvider(1)

	uc := NewSyncAvailabilities(repo)

	rows := []domain.WindowUpsert{
		{Weekday: 1, StartTime: "08:00:00", EndTime: "12:00:00", Active: true},
		{Weekday: 3, StartTime: "13:00:00", EndTime: "18:00:00", Active: true},
	}

	first, err := uc.Execute(context.Background(), 1, provider.ID, rows)
	if err != nil {
		t.Fatalf("primeiro sync: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("primeiro sync retornou %d janelas, want 2", len(first))
	}

	// mesma carga de novo: atualiza no lugar, não duplica
	rows[0].EndTime = "11:00:00"
	second, err := uc.Execute(context.Background(), 1, provider.ID, rows)
	if err != nil {
		t.Fatalf("segundo sync: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("segundo sync retornou %d janelas, want 2", len(second))
	}

	all, _ := repo.ListAvailabilities(context.Background(), provider.ID)
	if len(all) != 2 {
		t.Fatalf("repositório tem %d janelas, want 2", len(all))
	}
	for _, av := range all {
		if av.Weekday == 1 && av.EndTime != "11:00:00" {
			t.Errorf("weekday 1 EndTime = %q, want 11:00:00", av.EndTime)
		}
	}
}

func TestSyncAvailabilities_ValidatesBeforeWriting(t *testing.T) {
	repo := newFakeRepo()
	provider := repo.seedProvider(1)

	uc := NewSyncAvailabilities(repo)

	rows := []domain.WindowUpsert{
		{Weekday: 1, StartTime: "08:00:00", EndTime: "12:00:00", Active: true},
		{Weekday: 9, StartTime: "08:00:00", EndTime: "12:00:00", Active: true},
	}

	_, err := uc.Execute(context.Background(), 1, provider.ID, rows)
	if !httperr.IsBusiness(err, "invalid_weekday") {
		t.Fatalf("err = %v, want invalid_weekday", err)
	}

	// nada pode ter sido gravado
	all, _ := repo.ListAvailabilities(context.Background(), provider.ID)
	if len(all) != 0 {
		t.Fatalf("lote inválido gravou %d janelas, want 0", len(all))
	}
}

func TestSyncAvailabilities_UnknownProvider(t *testing.T) {
	repo := newFakeRepo()

	uc := NewSyncAvailabilities(repo)

	_, err := uc.Execute(context.Background(), 1, 99, []domain.WindowUpsert{
		{Weekday: 1, StartTime: "08:00:00", EndTime: "12:00:00", Active: true},
	})
	if !httperr.IsBusiness(err, "provider_not_found") {
		t.Fatalf("err = %v, want provider_not_found", err)
	}
}

func TestSyncBusinessHours_UpsertsPerWeekday(t *testing.T) {
	repo := newFakeRepo()

	uc := NewSyncBusinessHours(repo)

	rows := []domain.WindowUpsert{
		{Weekday: 1, StartTime: "08:00:00", EndTime: "18:00:00", Active: true},
	}
	if _, err := uc.Execute(context.Background(), 1, rows); err != nil {
		t.Fatalf("primeiro sync: %v", err)
	}

	rows[0].StartTime = "09:00:00"
	if _, err := uc.Execute(context.Background(), 1, rows); err != nil {
		t.Fatalf("segundo sync: %v", err)
	}

	all, _ := repo.ListBusinessHours(context.Background(), 1)
	if len(all) != 1 {
		t.Fatalf("repositório tem %d janelas, want 1", len(all))
	}
	if all[0].StartTime != "09:00:00" {
		t.Errorf("StartTime = %q, want 09:00:00", all[0].StartTime)
	}
}
