package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/agendafacil/agenda-saas/internal/domain/agenda"
	"github.com/agendafacil/agenda-saas/internal/models"
)

type AgendaGormRepository struct {
	db *gorm.DB
}

func NewAgendaGormRepository(db *gorm.DB) *AgendaGormRepository {
	return &AgendaGormRepository{db: db}
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *AgendaGormRepository) GetTenantByID(
	ctx context.Context,
	id uint,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// --------------------------------------------------
// Service / Provider
// --------------------------------------------------

func (r *AgendaGormRepository) GetService(
	ctx context.Context,
	tenantID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", serviceID, tenantID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *AgendaGormRepository) GetProvider(
	ctx context.Context,
	tenantID uint,
	providerID uint,
) (*models.Provider, error) {

	var provider models.Provider
	if err := r.db.WithContext(ctx).
		Preload("Person.User").
		Where("id = ? AND tenant_id = ?", providerID, tenantID).
		First(&provider).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AgendaGormRepository) GetAppointment(
	ctx context.Context,
	tenantID uint,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Provider.Person.User").
		Preload("Client").
		Preload("StatusAgenda").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AgendaGormRepository) ListAppointments(
	ctx context.Context,
	tenantID uint,
	filter domain.AppointmentFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Provider.Person.User").
		Preload("Client").
		Preload("StatusAgenda").
		Where("tenant_id = ?", tenantID)

	if filter.ProviderID != nil {
		q = q.Where("provider_id = ?", *filter.ProviderID)
	}
	if filter.DateStart != nil {
		q = q.Where("date_start >= ?", *filter.DateStart)
	}
	if filter.DateEnd != nil {
		q = q.Where("date_end <= ?", *filter.DateEnd)
	}

	var aps []models.Appointment
	if err := q.Order("date_start ASC").Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// CheckConflicts implementa o teste de interseção com bordas inclusivas:
// início OU fim do existente dentro da janela pedida, OU o existente
// cobrindo a janela inteira. FOR UPDATE segura as linhas do profissional
// até o commit da transação envolvente.
func (r *AgendaGormRepository) CheckConflicts(
	ctx context.Context,
	tenantID uint,
	providerID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND provider_id = ?", tenantID, providerID).
		Where(
			"(date_start BETWEEN ? AND ?) OR (date_end BETWEEN ? AND ?) OR (date_start <= ? AND date_end >= ?)",
			start, end,
			start, end,
			start, end,
		)

	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}

	var conflicts []models.Appointment
	if err := q.Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

func (r *AgendaGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

func (r *AgendaGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *AgendaGormRepository) DeleteAppointment(
	ctx context.Context,
	tenantID uint,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.Appointment{})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Gates
// --------------------------------------------------

func (r *AgendaGormRepository) IsWithinTenantHours(
	ctx context.Context,
	tenantID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	weekday := int(start.Weekday())

	var bh models.TenantBusinessHour
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND weekday = ? AND active = ?", tenantID, weekday, true).
		First(&bh).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}

	return domain.WithinDayWindow(start, end, bh.StartTime, bh.EndTime), nil
}

func (r *AgendaGormRepository) IsWithinAvailability(
	ctx context.Context,
	providerID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	weekday := int(start.Weekday())

	var av models.ProfessionalAvailability
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND weekday = ? AND active = ?", providerID, weekday, true).
		First(&av).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}

	return domain.WithinDayWindow(start, end, av.StartTime, av.EndTime), nil
}

func (r *AgendaGormRepository) HasBlock(
	ctx context.Context,
	providerID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProfessionalBlock{}).
		Where("provider_id = ?", providerID).
		Where(
			"(start_at BETWEEN ? AND ?) OR (end_at BETWEEN ? AND ?) OR (start_at <= ? AND end_at >= ?)",
			start, end,
			start, end,
			start, end,
		).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Janelas semanais (sync upsert)
// --------------------------------------------------

func (r *AgendaGormRepository) ListAvailabilities(
	ctx context.Context,
	providerID uint,
) ([]models.ProfessionalAvailability, error) {

	var rows []models.ProfessionalAvailability
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AgendaGormRepository) UpsertAvailability(
	ctx context.Context,
	providerID uint,
	row domain.WindowUpsert,
) (*models.ProfessionalAvailability, error) {

	var existing models.ProfessionalAvailability
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND weekday = ?", providerID, row.Weekday).
		First(&existing).Error

	if err == nil {
		existing.StartTime = row.StartTime
		existing.EndTime = row.EndTime
		existing.Active = row.Active
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	created := models.ProfessionalAvailability{
		ProviderID: providerID,
		Weekday:    row.Weekday,
		StartTime:  row.StartTime,
		EndTime:    row.EndTime,
		Active:     row.Active,
	}
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *AgendaGormRepository) ListBusinessHours(
	ctx context.Context,
	tenantID uint,
) ([]models.TenantBusinessHour, error) {

	var rows []models.TenantBusinessHour
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AgendaGormRepository) UpsertBusinessHour(
	ctx context.Context,
	tenantID uint,
	row domain.WindowUpsert,
) (*models.TenantBusinessHour, error) {

	var existing models.TenantBusinessHour
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND weekday = ?", tenantID, row.Weekday).
		First(&existing).Error

	if err == nil {
		existing.StartTime = row.StartTime
		existing.EndTime = row.EndTime
		existing.Active = row.Active
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	created := models.TenantBusinessHour{
		TenantID:  tenantID,
		Weekday:   row.Weekday,
		StartTime: row.StartTime,
		EndTime:   row.EndTime,
		Active:    row.Active,
	}
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// --------------------------------------------------
// Bloqueios
// --------------------------------------------------

func (r *AgendaGormRepository) ListBlocks(
	ctx context.Context,
	providerID uint,
	from *time.Time,
	to *time.Time,
) ([]models.ProfessionalBlock, error) {

	q := r.db.WithContext(ctx).Where("provider_id = ?", providerID)

	if from != nil {
		q = q.Where("end_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("start_at <= ?", *to)
	}

	var blocks []models.ProfessionalBlock
	if err := q.Order("start_at ASC").Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// --------------------------------------------------
// Transação
// --------------------------------------------------

func (r *AgendaGormRepository) InTransaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewAgendaGormRepository(tx))
	})
}

// Compile-time check
var _ domain.Repository = (*AgendaGormRepository)(nil)
