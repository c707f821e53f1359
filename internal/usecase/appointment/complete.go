package appointment

import (
	"context"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/timezone"
)

// CompleteAppointment é usado pela varredura; nenhum usuário conclui
// agendamentos diretamente.
type CompleteAppointment struct {
	ledger domain.Ledger
	audit  audit.Recorder
	clock  timezone.Clock
}

func NewCompleteAppointment(
	ledger domain.Ledger,
	audit audit.Recorder,
	clock timezone.Clock,
) *CompleteAppointment {
	return &CompleteAppointment{
		ledger: ledger,
		audit:  audit,
		clock:  clock,
	}
}

// Execute devolve false quando outra escrita mudou o status antes.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	ap *models.Appointment,
) (bool, error) {

	if err := domain.Complete(ap, uc.clock()); err != nil {
		return false, err
	}

	ok, err := uc.ledger.TransitionStatus(ctx, ap, domain.StatusScheduled)
	if err != nil || !ok {
		return false, err
	}

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: ap.ProfessionalID,
		Action:         audit.ActionAppointmentCompleted,
		Entity:         "appointment",
		EntityID:       ap.ID.String(),
	})

	return true, nil
}
