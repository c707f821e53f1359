package appointment

import (
	"time"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

// TimeRange é um intervalo semiaberto [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps usa a regra semiaberta: encostar nas pontas não conflita.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func OverlapsAny(r TimeRange, busy []TimeRange) bool {
	for _, b := range busy {
		if r.Overlaps(b) {
			return true
		}
	}
	return false
}

// RangeOf devolve o intervalo ocupado pelo agendamento.
func RangeOf(ap models.Appointment) TimeRange {
	return TimeRange{Start: ap.StartAt, End: ap.EndAt}
}

// BusyRanges ignora agendamentos cancelados.
func BusyRanges(aps []models.Appointment) []TimeRange {
	out := make([]TimeRange, 0, len(aps))
	for _, ap := range aps {
		if !Status(ap.Status).BlocksTime() {
			continue
		}
		out = append(out, RangeOf(ap))
	}
	return out
}
