package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/dto"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	ledger domain.Ledger
	loc    *time.Location
}

func NewListAppointmentsByDate(
	ledger domain.Ledger,
	loc *time.Location,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		ledger: ledger,
		loc:    loc,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	professionalID uint,
	date time.Time,
) ([]dto.AppointmentDTO, error) {

	start := timezone.StartOfDay(date, uc.loc)
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.ledger.ListForPeriod(
		ctx,
		professionalID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(appointments, uc.loc), nil
}
