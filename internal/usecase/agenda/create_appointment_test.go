package agenda

import (
	"context"
	"testing"
	"time"

	"github.com/agendafacil/agenda-saas/internal/httperr"
)

func mondayAt(hour, min int) time.Time {
	return time.Date(2024, 1, 8, hour, min, 0, 0, time.UTC)
}

func TestCreateAppointment_DerivesDateEnd(t *testing.T) {
	repo := newFakeRepo()
	service := repo.seedService(1, 30)
	provider := repo.seedProvider(1)

	uc := NewCreateAppointment(repo, newTestDispatcher())

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		TenantID:   1,
		UserID:     10,
		ServiceID:  service.ID,
		ProviderID: provider.ID,
		ClientID:   20,
		DateStart:  mondayAt(9, 0),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := mondayAt(9, 30)
	if !ap.DateEnd.Equal(want) {
		t.Errorf("DateEnd = %v, want %v", ap.DateEnd, want)
	}
}

func TestCreateAppointment_RejectsOverlap(t *testing.T) {
	repo := newFakeRepo()
	service := repo.seedService(1, 30)
	provider := repo.seedProvider(1)

	uc := NewCreateAppointment(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		TenantID:   1,
		UserID:     10,
		ServiceID:  service.ID,
		ProviderID: provider.ID,
		ClientID:   20,
		DateStart:  mondayAt(9, 0),
	})
	if err != nil {
		t.Fatalf("primeiro agendamento: %v", err)
	}

	// 09:15 cai dentro de 09:00-09:30
	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		TenantID:   1,
		UserID:     10,
		ServiceID:  service.ID,
		ProviderID: provider.ID,
		ClientID:   21,
		DateStart:  mondayAt(9, 15),
	})
	if !httperr.IsBusiness(err, "schedule_conflict") {
		t.Fatalf("err = %v, want schedule_conflict", err)
	}
}

func TestCreateAppointment_BackToBackConflicts(t *testing.T) {
	repo := newFakeRepo()
	service := repo.seedService(1, 30)
	provider := repo.seedProvider(1)

	uc := NewCreateAppointment(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		TenantID:   1,
		UserID:     10,
		ServiceID:  service.ID,
		ProviderID: provider.ID,
		ClientID:   20,
		DateStart:  mondayAt(9, 0),
	})
	if err != nil {
		t.Fatalf("primeiro agendamento: %v", err)
	}

	// bordas inclusivas: começar exatamente às 09:30 ainda conflita
	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		TenantID:   1,
		UserID:     10,
		ServiceID:  service.ID,
		ProviderID: provider.ID,
		ClientID:   21,
		DateStart:  mondayAt(9, 30),
	})
	if !httperr.IsBusiness(err, "schedule_conflict") {
		t.Fatalf("err = %v, want schedule_conflict", err)
	}
}

func TestCreateAppointment_OtherProviderDoesNotConflict(t *testing.T) {
	repo := newFakeRepo()
	service := repo.seedService(1, 30)
	providerA := repo.seedProvider(1)
	providerB := repo.seedProvider(1)

	uc := NewCreateAppointment(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		TenantID:   1,
		UserID:     10,
		ServiceID:  service.ID,
		ProviderID: providerA.ID,
		ClientID:   20,
		DateStart:  mondayAt(9, 0),
	})
	if err != nil {
		t.Fatalf("primeiro agendamento: %v", err)
	}

	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		TenantID:   1,
		UserID:     10,
		ServiceID:  service.ID,
		ProviderID: providerB.ID,
		ClientID:   21,
		DateStart:  mondayAt(9, 0),
	})
	if err != nil {
		t.Fatalf("mesmo horário com outro profissional: %v", err)
	}
}

func TestCreateAppointment_ServiceFromOtherTenant(t *testing.T) {
	repo := newFakeRepo()
	service := repo.seedService(2, 30)
	provider := repo.seedProvider(1)

	uc := NewCreateAppointment(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		TenantID:   1,
		UserID:     10,
		ServiceID:  service.ID,
		ProviderID: provider.ID,
		ClientID:   20,
		DateStart:  mondayAt(9, 0),
	})
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("err = %v, want service_not_found", err)
	}
}
