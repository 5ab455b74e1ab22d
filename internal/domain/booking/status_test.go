package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesalibre/reserva-api/internal/httperr"
	"github.com/mesalibre/reserva-api/internal/models"
)

func TestIsActive(t *testing.T) {
	assert.True(t, IsActive(StatusPending))
	assert.True(t, IsActive(StatusConfirmed))

	assert.False(t, IsActive(StatusCancelled))
	assert.False(t, IsActive(StatusCompleted))
	assert.False(t, IsActive(StatusNoShow))
}

func TestConfirmOnlyFromPending(t *testing.T) {
	b := &models.Booking{Status: string(StatusPending)}

	require.NoError(t, Confirm(b))
	assert.Equal(t, string(StatusConfirmed), b.Status)

	// Confirming twice is rejected.
	err := Confirm(b)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelSetsTimestamp(t *testing.T) {
	now := time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC)

	b := &models.Booking{Status: string(StatusConfirmed)}
	require.NoError(t, Cancel(b, now))

	assert.Equal(t, string(StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, now, *b.CancelledAt)
}

func TestCancelRejectedForFinalStatuses(t *testing.T) {
	now := time.Now()

	for _, s := range []Status{StatusCancelled, StatusCompleted, StatusNoShow} {
		b := &models.Booking{Status: string(s)}
		err := Cancel(b, now)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "status %s", s)
	}
}

func TestCompleteFromPendingAndConfirmed(t *testing.T) {
	now := time.Now()

	for _, s := range []Status{StatusPending, StatusConfirmed} {
		b := &models.Booking{Status: string(s)}
		require.NoError(t, Complete(b, now))
		assert.Equal(t, string(StatusCompleted), b.Status)
		require.NotNil(t, b.CompletedAt)
	}
}
