package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

// CreateAppointmentRequest traz data e hora locais, no fuso configurado.
type CreateAppointmentRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceType    string `json:"service_type" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required,hhmm"`
	Notes          string `json:"notes" binding:"max=255"`
}

type AppointmentDTO struct {
	ID             uuid.UUID  `json:"id"`
	ProfessionalID uint       `json:"professional_id"`
	ClientID       uint       `json:"client_id"`
	ServiceType    string     `json:"service_type"`
	ServiceLabel   string     `json:"service_label"`
	StartAt        time.Time  `json:"start_at"`
	EndAt          time.Time  `json:"end_at"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes,omitempty"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy    *uint      `json:"cancelled_by,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// FromAppointment converte o modelo, exibindo os horários em loc.
func FromAppointment(ap models.Appointment, loc *time.Location) AppointmentDTO {
	out := AppointmentDTO{
		ID:             ap.ID,
		ProfessionalID: ap.ProfessionalID,
		ClientID:       ap.ClientID,
		ServiceType:    ap.ServiceType,
		ServiceLabel:   catalog.ServiceType(ap.ServiceType).Label(),
		StartAt:        ap.StartAt.In(loc),
		EndAt:          ap.EndAt.In(loc),
		Status:         ap.Status,
		Notes:          ap.Notes,
		CancelledAt:    ap.CancelledAt,
		CancelledBy:    ap.CancelledBy,
		CompletedAt:    ap.CompletedAt,
	}
	return out
}

func FromAppointments(aps []models.Appointment, loc *time.Location) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, FromAppointment(ap, loc))
	}
	return out
}
