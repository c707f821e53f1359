package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/dto"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
)

type ListAppointmentsByMonth struct {
	ledger domain.Ledger
	loc    *time.Location
}

func NewListAppointmentsByMonth(
	ledger domain.Ledger,
	loc *time.Location,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		ledger: ledger,
		loc:    loc,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	professionalID uint,
	year int,
	month int,
) ([]dto.AppointmentDTO, error) {

	if month < 1 || month > 12 || year < 1970 || year > 9999 {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidDate, "invalid month %04d-%02d", year, month)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.loc)
	end := start.AddDate(0, 1, 0)

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
