package dto

import (
	"time"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
)

type IntervalDTO struct {
	Start string `json:"start" binding:"required,hhmm"`
	End   string `json:"end" binding:"required,hhmm"`
}

// SetAvailabilityRequest usa o nome do dia (inglês ou português) como chave.
type SetAvailabilityRequest struct {
	Days map[string][]IntervalDTO `json:"days" binding:"required,dive,dive"`
}

// ToDays valida e normaliza o pedido.
func (r SetAvailabilityRequest) ToDays() (availability.Days, error) {
	named := make(map[string][]availability.Interval, len(r.Days))
	for day, ivs := range r.Days {
		out := make([]availability.Interval, 0, len(ivs))
		for _, iv := range ivs {
			start, err := availability.ParseTimeOfDay(iv.Start)
			if err != nil {
				return nil, httperr.ErrBusinessf(httperr.CodeInvalidAvailability, "%v", err)
			}
			end, err := availability.ParseTimeOfDay(iv.End)
			if err != nil {
				return nil, httperr.ErrBusinessf(httperr.CodeInvalidAvailability, "%v", err)
			}
			out = append(out, availability.Interval{Start: start, End: end})
		}
		named[day] = out
	}
	return availability.DaysFromNames(named)
}

type AvailabilityDTO struct {
	ProfessionalID uint                               `json:"professional_id"`
	Days           map[string][]availability.Interval `json:"days"`
}

func FromWeekly(w *availability.Weekly) AvailabilityDTO {
	return AvailabilityDTO{
		ProfessionalID: w.ProfessionalID,
		Days:           w.Days.Names(),
	}
}

type SlotsDTO struct {
	ProfessionalID uint      `json:"professional_id"`
	Date           string    `json:"date"`
	ServiceType    string    `json:"service_type"`
	DurationHours  int       `json:"duration_hours"`
	Slots          []SlotDTO `json:"slots"`
}

type SlotDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}
