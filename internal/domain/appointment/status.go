package appointment

import "github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// IsTerminal indica que nenhuma transição sai deste status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// BlocksTime indica se o agendamento ocupa a agenda do profissional.
func (s Status) BlocksTime() bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusinessf(httperr.CodeInvalidTransition, "cannot cancel a %s appointment", current)
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusinessf(httperr.CodeInvalidTransition, "cannot complete a %s appointment", current)
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
