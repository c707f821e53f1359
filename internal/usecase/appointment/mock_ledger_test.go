package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

// ==================== memLedger ====================

type memLedger struct {
	mu    sync.Mutex
	items map[uuid.UUID]models.Appointment

	locksMu sync.Mutex
	locks   map[uint]*sync.Mutex

	// createFailures faz as próximas N chamadas a Create falharem.
	createFailures int
	createErr      error
	creates        int
}

func newMemLedger() *memLedger {
	return &memLedger{
		items: map[uuid.UUID]models.Appointment{},
		locks: map[uint]*sync.Mutex{},
	}
}

func (l *memLedger) lockFor(professionalID uint) *sync.Mutex {
	l.locksMu.Lock()
	defer l.locksMu.Unlock()
	m, ok := l.locks[professionalID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[professionalID] = m
	}
	return m
}

func (l *memLedger) InProfessionalTx(_ context.Context, professionalID uint, fn func(tx domain.Ledger) error) error {
	m := l.lockFor(professionalID)
	m.Lock()
	defer m.Unlock()
	return fn(l)
}

func (l *memLedger) Create(_ context.Context, ap *models.Appointment) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.creates++
	if l.createFailures > 0 {
		l.createFailures--
		return l.createErr
	}

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	l.items[ap.ID] = *ap
	return nil
}

func (l *memLedger) GetByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ap, ok := l.items[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return &ap, nil
}

func (l *memLedger) filter(keep func(models.Appointment) bool) []models.Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []models.Appointment
	for _, ap := range l.items {
		if keep(ap) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out
}

func (l *memLedger) ListActiveOverlapping(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	return l.filter(func(ap models.Appointment) bool {
		return ap.ProfessionalID == professionalID &&
			ap.Status != string(domain.StatusCancelled) &&
			ap.StartAt.Before(end) && ap.EndAt.After(start)
	}), nil
}

func (l *memLedger) ListForPeriod(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	return l.filter(func(ap models.Appointment) bool {
		return ap.ProfessionalID == professionalID && ap.StartAt.Before(end) && ap.EndAt.After(start)
	}), nil
}

func (l *memLedger) ListExpiredScheduled(_ context.Context, now time.Time, limit int) ([]models.Appointment, error) {
	out := l.filter(func(ap models.Appointment) bool {
		return ap.Status == string(domain.StatusScheduled) && !ap.EndAt.After(now)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (l *memLedger) TransitionStatus(_ context.Context, ap *models.Appointment, from domain.Status) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cur, ok := l.items[ap.ID]
	if !ok || cur.Status != string(from) {
		return false, nil
	}
	l.items[ap.ID] = *ap
	return true, nil
}

func (l *memLedger) put(ap models.Appointment) models.Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	l.items[ap.ID] = ap
	return ap
}

func (l *memLedger) get(id uuid.UUID) models.Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items[id]
}

// ==================== memPricing ====================

type memPricing struct {
	prices map[uint]map[catalog.ServiceType]models.ServicePrice
	err    error
}

func newMemPricing() *memPricing {
	return &memPricing{prices: map[uint]map[catalog.ServiceType]models.ServicePrice{}}
}

func (p *memPricing) offer(professionalID uint, st catalog.ServiceType, price string, active bool) {
	if p.prices[professionalID] == nil {
		p.prices[professionalID] = map[catalog.ServiceType]models.ServicePrice{}
	}
	p.prices[professionalID][st] = models.ServicePrice{
		ProfessionalID: professionalID,
		ServiceType:    string(st),
		Price:          decimal.RequireFromString(price),
		Active:         active,
	}
}

func (p *memPricing) GetServicePrice(_ context.Context, professionalID uint, st catalog.ServiceType) (*models.ServicePrice, error) {
	if p.err != nil {
		return nil, p.err
	}
	sp, ok := p.prices[professionalID][st]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return &sp, nil
}

// ==================== recorder ====================

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

var (
	// serialization_failure: transitório, vale uma nova tentativa
	errStorage error = &pgconn.PgError{Code: "40001"}
	// not_null_violation: definitivo
	errPermanent error = &pgconn.PgError{Code: "23502"}
)
