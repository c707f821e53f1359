package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/metrics"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/timezone"
)

type SlotsInput struct {
	ProfessionalID uint
	Date           time.Time
	ServiceType    string
}

type SlotsResult struct {
	ServiceType catalog.ServiceType
	Duration    time.Duration
	Starts      []time.Time
}

type GetAvailableSlots struct {
	store   availability.Store
	ledger  domain.Ledger
	pricing domain.ServicePricing
	step    time.Duration
	loc     *time.Location
	clock   timezone.Clock
	metrics *metrics.SchedulingMetrics
}

func NewGetAvailableSlots(
	store availability.Store,
	ledger domain.Ledger,
	pricing domain.ServicePricing,
	step time.Duration,
	loc *time.Location,
	clock timezone.Clock,
	m *metrics.SchedulingMetrics,
) *GetAvailableSlots {
	return &GetAvailableSlots{
		store:   store,
		ledger:  ledger,
		pricing: pricing,
		step:    step,
		loc:     loc,
		clock:   clock,
		metrics: m,
	}
}

// Execute lista os inícios livres no dia. Lista vazia é resposta válida:
// serviço sem preço ativo, profissional sem agenda publicada, dia fechado
// ou dia lotado.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in SlotsInput,
) (*SlotsResult, error) {

	started := time.Now()

	st, err := catalog.Parse(in.ServiceType)
	if err != nil {
		return nil, err
	}
	defer func() {
		uc.metrics.ObserveSlotQuery(st.String(), time.Since(started).Seconds())
	}()

	res := &SlotsResult{ServiceType: st, Duration: st.Duration(), Starts: []time.Time{}}

	// --------------------------------------------------
	// Serviço oferecido (mesma regra do agendamento)
	// --------------------------------------------------
	if err := assertOffered(ctx, uc.pricing, in.ProfessionalID, st); err != nil {
		if httperr.IsBusiness(err, httperr.CodeServiceNotOffered) {
			return res, nil
		}
		return nil, err
	}

	// --------------------------------------------------
	// Agenda semanal
	// --------------------------------------------------
	av, err := uc.store.Get(ctx, in.ProfessionalID)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeNotFound) {
			return res, nil
		}
		return nil, fmt.Errorf("load availability: %w", err)
	}

	days, err := availability.Parse(av.Schedule)
	if err != nil {
		return nil, err
	}

	day := timezone.StartOfDay(in.Date, uc.loc)
	windows := days[day.Weekday()]
	if len(windows) == 0 {
		return res, nil
	}

	// --------------------------------------------------
	// Agendamentos do dia
	// --------------------------------------------------
	booked, err := uc.ledger.ListActiveOverlapping(ctx, in.ProfessionalID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	starts := domain.AvailableSlots(domain.SlotQuery{
		Date:     day,
		Windows:  windows,
		Busy:     domain.BusyRanges(booked),
		Duration: res.Duration,
		Step:     uc.step,
		Now:      uc.clock(),
	})
	if starts != nil {
		res.Starts = starts
	}

	return res, nil
}
