package models

import "time"

// Availability guarda a agenda semanal serializada de um profissional.
type Availability struct {
	ProfessionalID uint   `gorm:"primaryKey;autoIncrement:false" json:"professional_id"`
	Schedule       string `gorm:"size:5000;not null;default:''" json:"schedule"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
