package agenda

import (
	"context"
	"time"

	"github.com/agendafacil/agenda-saas/internal/models"
)

// AppointmentFilter restringe a listagem de agendamentos
type AppointmentFilter struct {
	ProviderID *uint
	DateStart  *time.Time
	DateEnd    *time.Time
}

// WindowUpsert é uma linha de sync de janela semanal já validada
type WindowUpsert struct {
	Weekday   int
	StartTime string
	EndTime   string
	Active    bool
}

type Repository interface {
	// -------- Tenant --------
	GetTenantByID(
		ctx context.Context,
		id uint,
	) (*models.Tenant, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		tenantID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Provider --------
	GetProvider(
		ctx context.Context,
		tenantID uint,
		providerID uint,
	) (*models.Provider, error)

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		tenantID uint,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		tenantID uint,
		filter AppointmentFilter,
	) ([]models.Appointment, error)

	// CheckConflicts retorna os agendamentos do profissional cujo intervalo
	// intersecta [start, end] com bordas inclusivas. excludeID omite o
	// próprio registro em updates (0 = nenhum).
	CheckConflicts(
		ctx context.Context,
		tenantID uint,
		providerID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		tenantID uint,
		id uint,
	) (bool, error)

	// -------- Gates --------
	IsWithinTenantHours(
		ctx context.Context,
		tenantID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	IsWithinAvailability(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	HasBlock(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	// -------- Janelas semanais --------
	ListAvailabilities(
		ctx context.Context,
		providerID uint,
	) ([]models.ProfessionalAvailability, error)

	UpsertAvailability(
		ctx context.Context,
		providerID uint,
		row WindowUpsert,
	) (*models.ProfessionalAvailability, error)

	ListBusinessHours(
		ctx context.Context,
		tenantID uint,
	) ([]models.TenantBusinessHour, error)

	UpsertBusinessHour(
		ctx context.Context,
		tenantID uint,
		row WindowUpsert,
	) (*models.TenantBusinessHour, error)

	// -------- Bloqueios --------
	ListBlocks(
		ctx context.Context,
		providerID uint,
		from *time.Time,
		to *time.Time,
	) ([]models.ProfessionalBlock, error)

	// InTransaction executa fn com um repositório preso a uma transação;
	// usado para fechar o check-then-act de conflito e para os syncs em lote
	InTransaction(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
