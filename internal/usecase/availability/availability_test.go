package availability

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type memStore struct {
	mu      sync.Mutex
	records map[uint]models.Availability
}

func newMemStore() *memStore {
	return &memStore{records: map[uint]models.Availability{}}
}

func (s *memStore) Get(_ context.Context, id uint) (*models.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	av, ok := s.records[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return &av, nil
}

func (s *memStore) Save(_ context.Context, av *models.Availability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[av.ProfessionalID] = *av
	return nil
}

func (s *memStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	delete(s.records, id)
	return nil
}

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func iv(start, end string) domain.Interval {
	return domain.Interval{Start: domain.MustTimeOfDay(start), End: domain.MustTimeOfDay(end)}
}

func TestGetNeverPublished(t *testing.T) {
	uc := NewGetWeeklyAvailability(newMemStore())

	_, err := uc.Execute(context.Background(), 1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestGetPublishedButEmpty(t *testing.T) {
	store := newMemStore()
	store.records[1] = models.Availability{ProfessionalID: 1, Schedule: "  "}

	w, err := NewGetWeeklyAvailability(store).Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, w.IsEmpty())
}

func TestSetReplacesWholesale(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	set := NewSetWeeklyAvailability(store, rec)
	get := NewGetWeeklyAvailability(store)
	ctx := context.Background()

	_, err := set.Execute(ctx, 1, domain.Days{
		time.Monday:  {iv("09:00", "12:00")},
		time.Tuesday: {iv("10:00", "18:00")},
	})
	require.NoError(t, err)

	_, err = set.Execute(ctx, 1, domain.Days{
		time.Friday: {iv("14:00", "20:00"), iv("09:00", "12:00")},
	})
	require.NoError(t, err)

	w, err := get.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, w.On(time.Monday))
	assert.Empty(t, w.On(time.Tuesday))
	assert.Equal(t, []domain.Interval{iv("09:00", "12:00"), iv("14:00", "20:00")}, w.On(time.Friday))

	require.Len(t, rec.events, 2)
	assert.Equal(t, audit.ActionAvailabilityUpdated, rec.events[0].Action)
}

func TestSetRejectsBeforeWriting(t *testing.T) {
	store := newMemStore()
	set := NewSetWeeklyAvailability(store, audit.Nop{})
	ctx := context.Background()

	_, err := set.Execute(ctx, 1, domain.Days{
		time.Monday: {iv("09:00", "12:00"), iv("11:00", "13:00")},
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidAvailability))
	assert.True(t, strings.Contains(err.Error(), "09:00-12:00") && strings.Contains(err.Error(), "11:00-13:00"))
	assert.Empty(t, store.records)

	_, err = set.Execute(ctx, 0, domain.Days{})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidAvailability))
}

func TestSetRejectsOversizedSchedule(t *testing.T) {
	days := domain.Days{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		var ivs []domain.Interval
		for m := 0; m+5 <= 24*60; m += 10 {
			ivs = append(ivs, domain.Interval{Start: domain.TimeOfDay(m), End: domain.TimeOfDay(m + 5)})
		}
		days[d] = ivs
	}

	store := newMemStore()
	_, err := NewSetWeeklyAvailability(store, audit.Nop{}).Execute(context.Background(), 1, days)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAvailabilityTooLarge))
	assert.Empty(t, store.records)
}

func TestDelete(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	ctx := context.Background()

	_, err := NewSetWeeklyAvailability(store, audit.Nop{}).Execute(ctx, 2, domain.Days{time.Sunday: {iv("10:00", "14:00")}})
	require.NoError(t, err)

	del := NewDeleteWeeklyAvailability(store, rec)
	require.NoError(t, del.Execute(ctx, 2))
	assert.True(t, httperr.IsBusiness(del.Execute(ctx, 2), httperr.CodeNotFound))

	_, err = NewGetWeeklyAvailability(store).Execute(ctx, 2)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
	require.Len(t, rec.events, 1)
	assert.Equal(t, audit.ActionAvailabilityDeleted, rec.events[0].Action)
}
