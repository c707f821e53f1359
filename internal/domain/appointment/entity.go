package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

const MaxNotesLength = 255

// NewInput reúne os dados de um pedido de agendamento.
type NewInput struct {
	ProfessionalID uint
	ClientID       uint
	ServiceType    catalog.ServiceType
	StartAt        time.Time
	Notes          string
}

// ===============================
// Domain Actions
// ===============================

// New valida as regras que não dependem de armazenamento e monta o
// agendamento com EndAt derivado da duração do serviço.
func New(in NewInput, now time.Time) (*models.Appointment, error) {
	if in.ProfessionalID == 0 || in.ClientID == 0 {
		return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "professional and client are required")
	}
	if in.ProfessionalID == in.ClientID {
		return nil, httperr.ErrBusiness(httperr.CodeSelfBookingNotAllowed)
	}

	duration := in.ServiceType.Duration()
	if duration <= 0 {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidServiceType, "unknown service type %q", string(in.ServiceType))
	}

	if !in.StartAt.After(now) {
		return nil, httperr.ErrBusinessf(httperr.CodeStartNotInFuture, "start %s is not after %s",
			in.StartAt.Format(time.RFC3339), now.Format(time.RFC3339))
	}

	notes := strings.TrimSpace(in.Notes)
	if len([]rune(notes)) > MaxNotesLength {
		notes = string([]rune(notes)[:MaxNotesLength])
	}

	return &models.Appointment{
		ProfessionalID: in.ProfessionalID,
		ClientID:       in.ClientID,
		ServiceType:    string(in.ServiceType),
		StartAt:        in.StartAt,
		EndAt:          in.StartAt.Add(duration),
		Status:         string(InitialStatus()),
		Notes:          notes,
	}, nil
}

func Cancel(ap *models.Appointment, by uint, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.CancelledBy = &by
	return nil
}

// Complete só é aceito depois que o horário do agendamento terminou.
func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}
	if ap.EndAt.After(now) {
		return httperr.ErrBusinessf(httperr.CodeInvalidTransition, "appointment ends at %s", ap.EndAt.Format(time.RFC3339))
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}
