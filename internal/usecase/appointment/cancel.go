package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/metrics"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/timezone"
)

type CancelAppointment struct {
	ledger  domain.Ledger
	policy  domain.CancellationPolicy
	audit   audit.Recorder
	metrics *metrics.SchedulingMetrics
	clock   timezone.Clock
}

func NewCancelAppointment(
	ledger domain.Ledger,
	policy domain.CancellationPolicy,
	audit audit.Recorder,
	m *metrics.SchedulingMetrics,
	clock timezone.Clock,
) *CancelAppointment {
	return &CancelAppointment{
		ledger:  ledger,
		policy:  policy,
		audit:   audit,
		metrics: m,
		clock:   clock,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uuid.UUID,
	requesterID uint,
) (*models.Appointment, error) {

	ap, err := uc.ledger.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := uc.clock()
	if err := uc.policy.Check(ap, requesterID, now); err != nil {
		uc.metrics.ObserveCancellation("rejected")
		return nil, err
	}

	if err := domain.Cancel(ap, requesterID, now); err != nil {
		uc.metrics.ObserveCancellation("rejected")
		return nil, err
	}

	// a varredura pode ter concluído o agendamento entre a leitura e aqui
	ok, err := uc.ledger.TransitionStatus(ctx, ap, domain.StatusScheduled)
	if err != nil {
		return nil, err
	}
	if !ok {
		uc.metrics.ObserveCancellation("rejected")
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidTransition, "appointment %s is no longer scheduled", ap.ID)
	}

	uc.metrics.ObserveCancellation("cancelled")
	uc.audit.Dispatch(audit.Event{
		ProfessionalID: ap.ProfessionalID,
		UserID:         &requesterID,
		Action:         audit.ActionAppointmentCancelled,
		Entity:         "appointment",
		EntityID:       ap.ID.String(),
	})

	return ap, nil
}
