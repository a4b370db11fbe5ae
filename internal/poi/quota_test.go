package poi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuotaLedger_ReserveAndRefuse(t *testing.T) {
	l := NewQuotaLedger(10)

	assert.True(t, l.TryReserve(8))
	assert.Equal(t, 2, l.Remaining())

	// A partial reservation is never made.
	assert.False(t, l.TryReserve(3))
	assert.Equal(t, 2, l.Remaining())

	assert.True(t, l.TryReserve(2))
	assert.False(t, l.TryReserve(1))
}

func TestQuotaLedger_ResetsAtUTCMidnight(t *testing.T) {
	now := time.Date(2025, 6, 1, 23, 50, 0, 0, time.UTC)
	l := NewQuotaLedger(5).WithNow(func() time.Time { return now })

	assert.True(t, l.TryReserve(5))
	assert.False(t, l.TryReserve(1))

	now = now.Add(20 * time.Minute) // past midnight UTC
	assert.Equal(t, 5, l.Remaining())
	assert.True(t, l.TryReserve(5))
}

func TestQuotaLedger_ZeroBudget(t *testing.T) {
	l := NewQuotaLedger(0)
	assert.False(t, l.TryReserve(1))
	assert.Equal(t, 0, l.Remaining())
}
