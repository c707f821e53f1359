package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/metrics"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/timezone"
)

var brt = time.FixedZone("BRT", -3*60*60)

// domingo, véspera da segunda usada nos cenários
var now = time.Date(2026, 3, 1, 12, 0, 0, 0, brt)

func monday(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, brt)
}

const (
	professionalID uint = 10
	clientID       uint = 20
	otherClientID  uint = 21
)

type createFixture struct {
	ledger  *memLedger
	pricing *memPricing
	rec     *recorder
	uc      *CreateAppointment
}

func newCreateFixture() *createFixture {
	f := &createFixture{
		ledger:  newMemLedger(),
		pricing: newMemPricing(),
		rec:     &recorder{},
	}
	for _, st := range catalog.All() {
		f.pricing.offer(professionalID, st, "300.00", true)
	}
	var m *metrics.SchedulingMetrics
	f.uc = NewCreateAppointment(f.ledger, f.pricing, f.rec, m, timezone.Fixed(now), 5*time.Second, zap.NewNop())
	return f
}

func TestCreateAppointment(t *testing.T) {
	f := newCreateFixture()

	ap, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		ProfessionalID: professionalID,
		ClientID:       clientID,
		ServiceType:    "TATUAGEM_MEDIA",
		StartAt:        monday(9, 0),
		Notes:          "fechamento de braço",
	})
	require.NoError(t, err)

	assert.Equal(t, monday(13, 0), ap.EndAt)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, []string{audit.ActionAppointmentCreated}, f.rec.actions())

	stored := f.ledger.get(ap.ID)
	assert.Equal(t, clientID, stored.ClientID)
}

func TestCreateAppointmentValidation(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *createFixture)
		in    CreateAppointmentInput
		code  string
	}{
		{
			name: "unknown service type",
			in:   CreateAppointmentInput{ProfessionalID: professionalID, ClientID: clientID, ServiceType: "tatuagem_media", StartAt: monday(9, 0)},
			code: httperr.CodeInvalidServiceType,
		},
		{
			name: "self booking",
			in:   CreateAppointmentInput{ProfessionalID: professionalID, ClientID: professionalID, ServiceType: "SESSAO", StartAt: monday(9, 0)},
			code: httperr.CodeSelfBookingNotAllowed,
		},
		{
			name: "start in the past",
			in:   CreateAppointmentInput{ProfessionalID: professionalID, ClientID: clientID, ServiceType: "SESSAO", StartAt: now.Add(-time.Minute)},
			code: httperr.CodeStartNotInFuture,
		},
		{
			name: "service without price",
			in:   CreateAppointmentInput{ProfessionalID: 99, ClientID: clientID, ServiceType: "SESSAO", StartAt: monday(9, 0)},
			code: httperr.CodeServiceNotOffered,
		},
		{
			name:  "inactive price",
			setup: func(f *createFixture) { f.pricing.offer(professionalID, catalog.Session, "900.00", false) },
			in:    CreateAppointmentInput{ProfessionalID: professionalID, ClientID: clientID, ServiceType: "SESSAO", StartAt: monday(9, 0)},
			code:  httperr.CodeServiceNotOffered,
		},
		{
			name:  "zero price",
			setup: func(f *createFixture) { f.pricing.offer(professionalID, catalog.Session, "0", true) },
			in:    CreateAppointmentInput{ProfessionalID: professionalID, ClientID: clientID, ServiceType: "SESSAO", StartAt: monday(9, 0)},
			code:  httperr.CodeServiceNotOffered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCreateFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.uc.Execute(context.Background(), tt.in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tt.code), err.Error())
			assert.Zero(t, f.ledger.creates, "nothing is written on validation failure")
		})
	}
}

func TestCreateAppointmentConflicts(t *testing.T) {
	f := newCreateFixture()
	f.ledger.put(scheduledAt(monday(10, 0), 2*time.Hour))

	_, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		ProfessionalID: professionalID, ClientID: clientID, ServiceType: "TATUAGEM_PEQUENA", StartAt: monday(9, 0),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTimeConflict))
	assert.Equal(t, []string{audit.ActionAppointmentConflict}, f.rec.actions())

	// encostado no fim não conflita
	_, err = f.uc.Execute(context.Background(), CreateAppointmentInput{
		ProfessionalID: professionalID, ClientID: clientID, ServiceType: "TATUAGEM_PEQUENA", StartAt: monday(12, 0),
	})
	assert.NoError(t, err)

	// encostado no início também não
	_, err = f.uc.Execute(context.Background(), CreateAppointmentInput{
		ProfessionalID: professionalID, ClientID: clientID, ServiceType: "TATUAGEM_PEQUENA", StartAt: monday(8, 0),
	})
	assert.NoError(t, err)
}

func TestCreateAppointmentIgnoresCancelled(t *testing.T) {
	f := newCreateFixture()
	cancelled := scheduledAt(monday(9, 0), 4*time.Hour)
	cancelled.Status = string(domain.StatusCancelled)
	f.ledger.put(cancelled)

	_, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		ProfessionalID: professionalID, ClientID: clientID, ServiceType: "TATUAGEM_MEDIA", StartAt: monday(9, 0),
	})
	assert.NoError(t, err)
}

func TestCreateAppointmentRetriesOnce(t *testing.T) {
	f := newCreateFixture()
	f.ledger.createFailures = 1
	f.ledger.createErr = errStorage

	ap, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		ProfessionalID: professionalID, ClientID: clientID, ServiceType: "SESSAO", StartAt: monday(9, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.ledger.creates)
	assert.Equal(t, ap.ID, f.ledger.get(ap.ID).ID)
}

func TestCreateAppointmentSurfacesTryAgain(t *testing.T) {
	f := newCreateFixture()
	f.ledger.createFailures = 2
	f.ledger.createErr = errStorage

	_, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		ProfessionalID: professionalID, ClientID: clientID, ServiceType: "SESSAO", StartAt: monday(9, 0),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTryAgain))
	assert.Equal(t, 2, f.ledger.creates)
}

func TestCreateAppointmentDoesNotRetryPermanentFailure(t *testing.T) {
	f := newCreateFixture()
	f.ledger.createFailures = 1
	f.ledger.createErr = errPermanent

	_, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		ProfessionalID: professionalID, ClientID: clientID, ServiceType: "SESSAO", StartAt: monday(9, 0),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTryAgain))
	assert.Equal(t, 1, f.ledger.creates)
}

func TestCreateAppointmentConcurrentOverlap(t *testing.T) {
	f := newCreateFixture()

	starts := []time.Time{monday(9, 0), monday(10, 0), monday(11, 0), monday(9, 30), monday(12, 0)}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i, start := range starts {
		wg.Add(1)
		go func(i int, start time.Time) {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
				ProfessionalID: professionalID,
				ClientID:       clientID + uint(i),
				ServiceType:    "TATUAGEM_GRANDE",
				StartAt:        start,
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case httperr.IsBusiness(err, httperr.CodeTimeConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i, start)
	}
	wg.Wait()

	// todos os pedidos de 6h se sobrepõem entre si
	assert.Equal(t, 1, created)
	assert.Equal(t, len(starts)-1, conflicts)

	active, err := f.ledger.ListActiveOverlapping(context.Background(), professionalID, monday(0, 0), monday(23, 59))
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestCreateAppointmentTwoClientsSameSlot(t *testing.T) {
	f := newCreateFixture()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, client := range []uint{clientID, otherClientID} {
		wg.Add(1)
		go func(i int, client uint) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), CreateAppointmentInput{
				ProfessionalID: professionalID, ClientID: client, ServiceType: "TATUAGEM_PEQUENA", StartAt: monday(10, 0),
			})
		}(i, client)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, httperr.IsBusiness(err, httperr.CodeTimeConflict), err.Error())
	}
	assert.Equal(t, 1, ok)
}
