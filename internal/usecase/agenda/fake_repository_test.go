package agenda

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/audit"
	domain "github.com/agendafacil/agenda-saas/internal/domain/agenda"
	"github.com/agendafacil/agenda-saas/internal/models"
)

// fakeRepo guarda tudo em memória e reimplementa os contratos do
// repositório com as mesmas semânticas de escopo por tenant
type fakeRepo struct {
	tenants        map[uint]*models.Tenant
	services       map[uint]*models.Service
	providers      map[uint]*models.Provider
	appointments   map[uint]*models.Appointment
	availabilities []models.ProfessionalAvailability
	businessHours  []models.TenantBusinessHour
	blocks         []models.ProfessionalBlock

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tenants:      map[uint]*models.Tenant{},
		services:     map[uint]*models.Service{},
		providers:    map[uint]*models.Provider{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (f *fakeRepo) newID() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) GetTenantByID(_ context.Context, id uint) (*models.Tenant, error) {
	if t, ok := f.tenants[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetService(_ context.Context, tenantID, serviceID uint) (*models.Service, error) {
	s, ok := f.services[serviceID]
	if !ok || s.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeRepo) GetProvider(_ context.Context, tenantID, providerID uint) (*models.Provider, error) {
	p, ok := f.providers[providerID]
	if !ok || p.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, tenantID, id uint) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok || ap.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *ap
	return &clone, nil
}

func (f *fakeRepo) ListAppointments(_ context.Context, tenantID uint, filter domain.AppointmentFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.TenantID != tenantID {
			continue
		}
		if filter.ProviderID != nil && ap.ProviderID != *filter.ProviderID {
			continue
		}
		if filter.DateStart != nil && ap.DateStart.Before(*filter.DateStart) {
			continue
		}
		if filter.DateEnd != nil && ap.DateEnd.After(*filter.DateEnd) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (f *fakeRepo) CheckConflicts(_ context.Context, tenantID, providerID uint, start, end time.Time, excludeID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.TenantID != tenantID || ap.ProviderID != providerID {
			continue
		}
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if domain.Overlaps(ap.DateStart, ap.DateEnd, start, end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = f.newID()
	clone := *ap
	f.appointments[ap.ID] = &clone
	return nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	clone := *ap
	f.appointments[ap.ID] = &clone
	return nil
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, tenantID, id uint) (bool, error) {
	ap, ok := f.appointments[id]
	if !ok || ap.TenantID != tenantID {
		return false, nil
	}
	delete(f.appointments, id)
	return true, nil
}

func (f *fakeRepo) IsWithinTenantHours(_ context.Context, tenantID uint, start, end time.Time) (bool, error) {
	weekday := int(start.Weekday())
	for _, bh := range f.businessHours {
		if bh.TenantID == tenantID && bh.Weekday == weekday && bh.Active {
			return domain.WithinDayWindow(start, end, bh.StartTime, bh.EndTime), nil
		}
	}
	return false, nil
}

func (f *fakeRepo) IsWithinAvailability(_ context.Context, providerID uint, start, end time.Time) (bool, error) {
	weekday := int(start.Weekday())
	for _, av := range f.availabilities {
		if av.ProviderID == providerID && av.Weekday == weekday && av.Active {
			return domain.WithinDayWindow(start, end, av.StartTime, av.EndTime), nil
		}
	}
	return false, nil
}

func (f *fakeRepo) HasBlock(_ context.Context, providerID uint, start, end time.Time) (bool, error) {
	for _, b := range f.blocks {
		if b.ProviderID == providerID && domain.Overlaps(b.StartAt, b.EndAt, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ListAvailabilities(_ context.Context, providerID uint) ([]models.ProfessionalAvailability, error) {
	var out []models.ProfessionalAvailability
	for _, av := range f.availabilities {
		if av.ProviderID == providerID {
			out = append(out, av)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpsertAvailability(_ context.Context, providerID uint, row domain.WindowUpsert) (*models.ProfessionalAvailability, error) {
	for i := range f.availabilities {
		av := &f.availabilities[i]
		if av.ProviderID == providerID && av.Weekday == row.Weekday {
			av.StartTime = row.StartTime
			av.EndTime = row.EndTime
			av.Active = row.Active
			clone := *av
			return &clone, nil
		}
	}
	created := models.ProfessionalAvailability{
		ID:         f.newID(),
		ProviderID: providerID,
		Weekday:    row.Weekday,
		StartTime:  row.StartTime,
		EndTime:    row.EndTime,
		Active:     row.Active,
	}
	f.availabilities = append(f.availabilities, created)
	return &created, nil
}

func (f *fakeRepo) ListBusinessHours(_ context.Context, tenantID uint) ([]models.TenantBusinessHour, error) {
	var out []models.TenantBusinessHour
	for _, bh := range f.businessHours {
		if bh.TenantID == tenantID {
			out = append(out, bh)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpsertBusinessHour(_ context.Context, tenantID uint, row domain.WindowUpsert) (*models.TenantBusinessHour, error) {
	for i := range f.businessHours {
		bh := &f.businessHours[i]
		if bh.TenantID == tenantID && bh.Weekday == row.Weekday {
			bh.StartTime = row.StartTime
			bh.EndTime = row.EndTime
			bh.Active = row.Active
			clone := *bh
			return &clone, nil
		}
	}
	created := models.TenantBusinessHour{
		ID:        f.newID(),
		TenantID:  tenantID,
		Weekday:   row.Weekday,
		StartTime: row.StartTime,
		EndTime:   row.EndTime,
		Active:    row.Active,
	}
	f.businessHours = append(f.businessHours, created)
	return &created, nil
}

func (f *fakeRepo) ListBlocks(_ context.Context, providerID uint, from, to *time.Time) ([]models.ProfessionalBlock, error) {
	var out []models.ProfessionalBlock
	for _, b := range f.blocks {
		if b.ProviderID != providerID {
			continue
		}
		if from != nil && b.EndAt.Before(*from) {
			continue
		}
		if to != nil && b.StartAt.After(*to) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) InTransaction(_ context.Context, fn func(domain.Repository) error) error {
	return fn(f)
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------- fixtures ---------

func (f *fakeRepo) seedService(tenantID uint, durationMinutes int) *models.Service {
	s := &models.Service{
		ID:              f.newID(),
		TenantID:        tenantID,
		Name:            "Aula experimental",
		DurationMinutes: durationMinutes,
		Active:          true,
	}
	f.services[s.ID] = s
	return s
}

func (f *fakeRepo) seedProvider(tenantID uint) *models.Provider {
	p := &models.Provider{
		ID:       f.newID(),
		TenantID: tenantID,
	}
	f.providers[p.ID] = p
	return p
}

// newTestDispatcher monta um dispatcher com a auditoria desligada
func newTestDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil))
}
