package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ProfessionalID uint `gorm:"not null;index:idx_appointments_professional_start,priority:1" json:"professional_id"`
	ClientID       uint `gorm:"not null;index" json:"client_id"`

	ServiceType string `gorm:"size:32;not null" json:"service_type"`

	StartAt time.Time `gorm:"not null;index:idx_appointments_professional_start,priority:2" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`

	Status string `gorm:"size:20;not null;default:'scheduled';index" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CancelledBy *uint      `json:"cancelled_by"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
