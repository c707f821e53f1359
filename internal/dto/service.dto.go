package dto

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type ServiceTypeDTO struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	DurationHours int    `json:"duration_hours"`
}

func FromCatalog() []ServiceTypeDTO {
	all := catalog.All()
	out := make([]ServiceTypeDTO, 0, len(all))
	for _, st := range all {
		h, _ := catalog.DurationOf(st)
		out = append(out, ServiceTypeDTO{ID: st.String(), Label: st.Label(), DurationHours: h})
	}
	return out
}

type UpsertServicePriceRequest struct {
	Price  decimal.Decimal `json:"price"`
	Active *bool           `json:"active"`
}

type ServicePriceDTO struct {
	ServiceType   string          `json:"service_type"`
	Label         string          `json:"label"`
	DurationHours int             `json:"duration_hours"`
	Price         decimal.Decimal `json:"price"`
	Active        bool            `json:"active"`
}

func FromServicePrices(prices []models.ServicePrice) []ServicePriceDTO {
	out := make([]ServicePriceDTO, 0, len(prices))
	for _, p := range prices {
		st := catalog.ServiceType(p.ServiceType)
		h, _ := catalog.DurationOf(st)
		out = append(out, ServicePriceDTO{
			ServiceType:   p.ServiceType,
			Label:         st.Label(),
			DurationHours: h,
			Price:         p.Price,
			Active:        p.Active,
		})
	}
	return out
}
