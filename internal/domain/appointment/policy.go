package appointment

import (
	"time"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

const DefaultCancellationCutoff = 24 * time.Hour

// CancellationPolicy decide quem pode cancelar e até quando.
type CancellationPolicy struct {
	Cutoff time.Duration
}

// Check verifica, nesta ordem: quem pede, o status atual e a janela de
// cancelamento.
func (p CancellationPolicy) Check(ap *models.Appointment, requesterID uint, now time.Time) error {
	if requesterID == 0 || (requesterID != ap.ClientID && requesterID != ap.ProfessionalID) {
		return httperr.ErrBusinessf(httperr.CodeCancellationNotAllowed, "user %d is not a party to this appointment", requesterID)
	}

	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	if now.Add(p.Cutoff).After(ap.StartAt) {
		return httperr.ErrBusinessf(httperr.CodeCancellationNotAllowed,
			"cancellation closes %s before the start", p.Cutoff)
	}
	return nil
}
