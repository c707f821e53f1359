package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

// ConflictDetector responde se um intervalo colide com agendamentos não
// cancelados do profissional. No commit ele roda sobre o Ledger da
// transação, que é a checagem que vale.
type ConflictDetector struct {
	ledger domain.Ledger
}

func NewConflictDetector(ledger domain.Ledger) *ConflictDetector {
	return &ConflictDetector{ledger: ledger}
}

// Conflicts devolve os agendamentos que se sobrepõem a [start, end).
func (d *ConflictDetector) Conflicts(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	candidates, err := d.ledger.ListActiveOverlapping(ctx, professionalID, start, end)
	if err != nil {
		return nil, err
	}

	want := domain.TimeRange{Start: start, End: end}
	out := candidates[:0]
	for _, ap := range candidates {
		if domain.Status(ap.Status).BlocksTime() && domain.RangeOf(ap).Overlaps(want) {
			out = append(out, ap)
		}
	}
	return out, nil
}
