package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServicePrice é o preço publicado por um profissional para um tipo de serviço.
type ServicePrice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID uint   `gorm:"not null;uniqueIndex:idx_service_prices_professional_type,priority:1" json:"professional_id"`
	ServiceType    string `gorm:"size:32;not null;uniqueIndex:idx_service_prices_professional_type,priority:2" json:"service_type"`

	Price  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Active bool            `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
