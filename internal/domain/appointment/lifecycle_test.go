package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

func TestNewDerivesEndFromService(t *testing.T) {
	ap, err := New(NewInput{
		ProfessionalID: 1,
		ClientID:       2,
		ServiceType:    catalog.LargeTattoo,
		StartAt:        at(9, 0),
		Notes:          "  braço direito ",
	}, at(8, 0))
	require.NoError(t, err)

	assert.Equal(t, at(15, 0), ap.EndAt)
	assert.Equal(t, string(StatusScheduled), ap.Status)
	assert.Equal(t, "braço direito", ap.Notes)
}

func TestNewRejections(t *testing.T) {
	tests := []struct {
		name string
		in   NewInput
		code string
	}{
		{"self booking", NewInput{ProfessionalID: 5, ClientID: 5, ServiceType: catalog.Session, StartAt: at(10, 0)}, httperr.CodeSelfBookingNotAllowed},
		{"start equals now", NewInput{ProfessionalID: 1, ClientID: 2, ServiceType: catalog.Session, StartAt: at(8, 0)}, httperr.CodeStartNotInFuture},
		{"start in the past", NewInput{ProfessionalID: 1, ClientID: 2, ServiceType: catalog.Session, StartAt: at(7, 0)}, httperr.CodeStartNotInFuture},
		{"unknown service", NewInput{ProfessionalID: 1, ClientID: 2, ServiceType: "PIERCING", StartAt: at(10, 0)}, httperr.CodeInvalidServiceType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.in, at(8, 0))
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tt.code), err.Error())
		})
	}
}

func TestTerminalStatusesRejectTransitions(t *testing.T) {
	now := at(20, 0)
	for _, st := range []Status{StatusCancelled, StatusCompleted} {
		assert.True(t, st.IsTerminal())

		ap := &models.Appointment{Status: string(st), StartAt: at(9, 0), EndAt: at(11, 0)}
		assert.True(t, httperr.IsBusiness(Cancel(ap, 1, now), httperr.CodeInvalidTransition))
		assert.True(t, httperr.IsBusiness(Complete(ap, now), httperr.CodeInvalidTransition))
		assert.Equal(t, string(st), ap.Status)
	}
	assert.False(t, StatusScheduled.IsTerminal())
}

func TestCompleteWaitsForEnd(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled), StartAt: at(9, 0), EndAt: at(11, 0)}

	err := Complete(ap, at(10, 59))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))

	require.NoError(t, Complete(ap, at(11, 0)))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
}

func TestCancelRecordsWhoAndWhen(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}
	now := at(8, 0)

	require.NoError(t, Cancel(ap, 7, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, uint(7), *ap.CancelledBy)
	assert.Equal(t, now, *ap.CancelledAt)
}

func TestCancellationPolicy(t *testing.T) {
	policy := CancellationPolicy{Cutoff: 24 * time.Hour}
	ap := &models.Appointment{
		ProfessionalID: 1,
		ClientID:       2,
		Status:         string(StatusScheduled),
		StartAt:        at(10, 0),
		EndAt:          at(12, 0),
	}
	dayBefore := at(10, 0).Add(-24 * time.Hour)

	assert.NoError(t, policy.Check(ap, 2, dayBefore), "client on the cutoff boundary")
	assert.NoError(t, policy.Check(ap, 1, dayBefore.Add(-time.Hour)), "professional")

	err := policy.Check(ap, 3, dayBefore)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeCancellationNotAllowed), "stranger")

	err = policy.Check(ap, 2, dayBefore.Add(time.Minute))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeCancellationNotAllowed), "inside cutoff")

	done := *ap
	done.Status = string(StatusCompleted)
	err = policy.Check(&done, 2, dayBefore)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}
