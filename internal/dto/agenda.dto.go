package dto

import (
	"time"

	"github.com/agendafacil/agenda-saas/internal/models"
)

// Read models da agenda: resumos desnormalizados de serviço, profissional,
// cliente e status, no lugar das associações lazy do ORM

type ServiceSummaryDTO struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	DurationMinutes int    `json:"duration_minutes"`
}

type ProviderSummaryDTO struct {
	ID       uint   `json:"id"`
	PersonID uint   `json:"person_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type ClientSummaryDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type StatusSummaryDTO struct {
	ID   uint   `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

type AppointmentDTO struct {
	ID        uint      `json:"id"`
	TenantID  uint      `json:"tenant_id"`
	DateStart time.Time `json:"date_start"`
	DateEnd   time.Time `json:"date_end"`
	Notes     string    `json:"notes"`

	Service      *ServiceSummaryDTO  `json:"service"`
	Provider     *ProviderSummaryDTO `json:"provider"`
	Client       *ClientSummaryDTO   `json:"client"`
	StatusAgenda *StatusSummaryDTO   `json:"status_agenda"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AgendaDTO struct {
	ProviderID     uint                              `json:"provider_id"`
	Appointments   []AppointmentDTO                  `json:"appointments"`
	Availabilities []models.ProfessionalAvailability `json:"availabilities"`
	Blocks         []models.ProfessionalBlock        `json:"blocks"`
}

func AppointmentFromModel(ap *models.Appointment) AppointmentDTO {
	out := AppointmentDTO{
		ID:        ap.ID,
		TenantID:  ap.TenantID,
		DateStart: ap.DateStart,
		DateEnd:   ap.DateEnd,
		Notes:     ap.Notes,
		CreatedAt: ap.CreatedAt,
		UpdatedAt: ap.UpdatedAt,
	}

	if ap.Service.ID != 0 {
		out.Service = &ServiceSummaryDTO{
			ID:              ap.Service.ID,
			Name:            ap.Service.Name,
			Slug:            ap.Service.Slug,
			DurationMinutes: ap.Service.DurationMinutes,
		}
	}

	if ap.Provider.ID != 0 {
		out.Provider = &ProviderSummaryDTO{
			ID:       ap.Provider.ID,
			PersonID: ap.Provider.PersonID,
			Name:     ap.Provider.Person.User.Name,
			Email:    ap.Provider.Person.User.Email,
		}
	}

	if ap.Client.ID != 0 {
		out.Client = &ClientSummaryDTO{
			ID:    ap.Client.ID,
			Name:  ap.Client.Name,
			Email: ap.Client.Email,
		}
	}

	if ap.StatusAgenda != nil {
		out.StatusAgenda = &StatusSummaryDTO{
			ID:   ap.StatusAgenda.ID,
			Key:  ap.StatusAgenda.Key,
			Name: ap.StatusAgenda.Name,
		}
	}

	return out
}
