package agenda

import (
	"context"
	"testing"
	"time"

	"github.com/agendafacil/agenda-saas/internal/httperr"
	"github.com/agendafacil/agenda-saas/internal/models"
)

func TestCheckSlot_AllGates(t *testing.T) {
	repo := newFakeRepo()
	service := repo.seedService(1, 30)
	provider := repo.seedProvider(1)

	// segunda-feira 08:00-18:00 para o tenant e 09:00-12:00 para o profissional
	repo.businessHours = append(repo.businessHours, models.TenantBusinessHour{
		TenantID: 1, Weekday: 1, StartTime: "08:00:00", EndTime: "18:00:00", Active: true,
	})
	repo.availabilities = append(repo.availabilities, models.ProfessionalAvailability{
		ProviderID: provider.ID, Weekday: 1, StartTime: "09:00:00", EndTime: "12:00:00", Active: true,
	})
	repo.blocks = append(repo.blocks, models.ProfessionalBlock{
		ProviderID: provider.ID, StartAt: mondayAt(11, 0), EndAt: mondayAt(12, 0),
	})
	seedAppointment(t, repo, service.ID, provider.ID, mondayAt(9, 0))

	uc := NewCheckSlot(repo)

	tests := []struct {
		name string
		hour int
		min  int
		want SlotCheck
	}{
		{
			name: "horário livre dentro das janelas",
			hour: 10, min: 0,
			want: SlotCheck{WithinTenantHours: true, WithinAvailability: true},
		},
		{
			name: "antes da disponibilidade do profissional",
			hour: 8, min: 0,
			want: SlotCheck{WithinTenantHours: true},
		},
		{
			name: "dentro de um bloqueio",
			hour: 11, min: 15,
			want: SlotCheck{WithinTenantHours: true, WithinAvailability: true, HasBlock: true},
		},
		{
			name: "em cima de outro agendamento",
			hour: 9, min: 15,
			want: SlotCheck{WithinTenantHours: true, WithinAvailability: true, HasConflict: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := mondayAt(tt.hour, tt.min)
			end := start.Add(30 * time.Minute)

			got, err := uc.Execute(context.Background(), 1, provider.ID, start, end)
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if *got != tt.want {
				t.Errorf("SlotCheck = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestCheckSlot_InvalidRange(t *testing.T) {
	repo := newFakeRepo()
	provider := repo.seedProvider(1)

	uc := NewCheckSlot(repo)

	_, err := uc.Execute(context.Background(), 1, provider.ID, mondayAt(10, 0), mondayAt(9, 0))
	if !httperr.IsBusiness(err, "invalid_time_range") {
		t.Fatalf("err = %v, want invalid_time_range", err)
	}
}

func TestCheckSlot_UnknownProvider(t *testing.T) {
	repo := newFakeRepo()

	uc := NewCheckSlot(repo)

	_, err := uc.Execute(context.Background(), 1, 42, mondayAt(9, 0), mondayAt(9, 30))
	if !httperr.IsBusiness(err, "provider_not_found") {
		t.Fatalf("err = %v, want provider_not_found", err)
	}
}

func TestGetAgenda_FiltersByProviderAndPeriod(t *testing.T) {
	repo := newFakeRepo()
	service := repo.seedService(1, 30)
	providerA := repo.seedProvider(1)
	providerB := repo.seedProvider(1)

	seedAppointment(t, repo, service.ID, providerA.ID, mondayAt(9, 0))
	seedAppointment(t, repo, service.ID, providerB.ID, mondayAt(9, 0))

	repo.availabilities = append(repo.availabilities, models.ProfessionalAvailability{
		ProviderID: providerA.ID, Weekday: 1, StartTime: "08:00:00", EndTime: "18:00:00", Active: true,
	})

	uc := NewGetAgenda(repo)

	from := mondayAt(0, 0)
	to := mondayAt(23, 59)

	out, err := uc.Execute(context.Background(), 1, providerA.ID, &from, &to)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(out.Appointments) != 1 {
		t.Errorf("Appointments = %d, want 1", len(out.Appointments))
	}
	if len(out.Availabilities) != 1 {
		t.Errorf("Availabilities = %d, want 1", len(out.Availabilities))
	}
	if out.ProviderID != providerA.ID {
		t.Errorf("ProviderID = %d, want %d", out.ProviderID, providerA.ID)
	}
}
