package agenda

import (
	"context"
	"testing"
	"time"

	"github.com/agendafacil/agenda-saas/internal/httperr"
)

func seedAppointment(t *testing.T, repo *fakeRepo, serviceID, providerID uint, start time.Time) uint {
	t.Helper()

	uc := NewCreateAppointment(repo, newTestDispatcher())
	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		TenantID:   1,
		UserID:     10,
		ServiceID:  serviceID,
		ProviderID: providerID,
		ClientID:   20,
		DateStart:  start,
	})
	if err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return ap.ID
}

func TestUpdateAppointment_ExcludesSelfFromConflict(t *testing.T) {
	repo := newFakeRepo()
	service := repo.seedService(1, 30)
	provider := repo.seedProvider(1)
	id := seedAppointment(t, repo, service.ID, provider.ID, mondayAt(9, 0))

	uc := NewUpdateAppointment(repo, newTestDispatcher())

	// só muda as notas; o próprio registro não pode contar como conflito
	notes := "remarcado pelo aluno"
	ap, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		TenantID:      1,
		UserID:        10,
		AppointmentID: id,
		Notes:         &notes,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ap.Notes != notes {
		t.Errorf("Notes = %q, want %q", ap.Notes, notes)
	}
}

func TestUpdateAppointment_NewStartRederivesEnd(t *testing.T) {
	repo := newFakeRepo()
	service := repo.seedService(1, 30)
	provider := repo.seedProvider(1)
	id := seedAppointment(t, repo, service.ID, provider.ID, mondayAt(9, 0))

	uc := NewUpdateAppointment(repo, newTestDispatcher())

	newStart := mondayAt(14, 0)
	ap, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		TenantID:      1,
		UserID:        10,
		AppointmentID: id,
		DateStart:     &newStart,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := mondayAt(14, 30)
	if !ap.DateEnd.Equal(want) {
		t.Errorf("DateEnd = %v, want %v", ap.DateEnd, want)
	}
}

func TestUpdateAppointment_NewServiceChangesDuration(t *testing.T) {
	repo := newFakeRepo()
	short := repo.seedService(1, 30)
	long := repo.seedService(1, 60)
	provider := repo.seedProvider(1)
	id := seedAppointment(t, repo, short.ID, provider.ID, mondayAt(9, 0))

	uc := NewUpdateAppointment(repo, newTestDispatcher())

	ap, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		TenantID:      1,
		UserID:        10,
		AppointmentID: id,
		ServiceID:     &long.ID,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := mondayAt(10, 0)
	if !ap.DateEnd.Equal(want) {
		t.Errorf("DateEnd = %v, want %v", ap.DateEnd, want)
	}
}

func TestUpdateAppointment_ConflictWithOtherAppointment(t *testing.T) {
	repo := newFakeRepo()
	service := repo.seedService(1, 30)
	provider := repo.seedProvider(1)
	seedAppointment(t, repo, service.ID, provider.ID, mondayAt(9, 0))
	id := seedAppointment(t, repo, service.ID, provider.ID, mondayAt(11, 0))

	uc := NewUpdateAppointment(repo, newTestDispatcher())

	newStart := mondayAt(9, 15)
	_, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		TenantID:      1,
		UserID:        10,
		AppointmentID: id,
		DateStart:     &newStart,
	})
	if !httperr.IsBusiness(err, "schedule_conflict") {
		t.Fatalf("err = %v, want schedule_conflict", err)
	}
}

func TestUpdateAppointment_NotFoundForOtherTenant(t *testing.T) {
	repo := newFakeRepo()
	service := repo.seedService(1, 30)
	provider := repo.seedProvider(1)
	id := seedAppointment(t, repo, service.ID, provider.ID, mondayAt(9, 0))

	uc := NewUpdateAppointment(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		TenantID:      2,
		UserID:        10,
		AppointmentID: id,
	})
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("err = %v, want appointment_not_found", err)
	}
}

func TestDeleteAppointment_ScopedToTenant(t *testing.T) {
	repo := newFakeRepo()
	service := repo.seedService(1, 30)
	provider := repo.seedProvider(1)
	id := seedAppointment(t, repo, service.ID, provider.ID, mondayAt(9, 0))

	uc := NewDeleteAppointment(repo, newTestDispatcher())

	// outro tenant não enxerga o registro
	found, err := uc.Execute(context.Background(), 2, 10, id)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if found {
		t.Fatal("delete de outro tenant não deveria encontrar o registro")
	}

	found, err = uc.Execute(context.Background(), 1, 10, id)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !found {
		t.Fatal("delete no tenant dono deveria encontrar o registro")
	}

	// segunda remoção do mesmo id
	found, _ = uc.Execute(context.Background(), 1, 10, id)
	if found {
		t.Fatal("segunda remoção deveria retornar não encontrado")
	}
}
