package poi

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// QuotaLedger tracks the metered provider's daily call budget. The counter
// is process-wide and resets at UTC midnight; it is not safe across
// multiple processes, which at worst overruns the quota after a restart.
type QuotaLedger struct {
	mu     sync.Mutex
	budget int
	used   int
	day    string
	now    func() time.Time
}

// NewQuotaLedger creates a ledger with the given daily call budget.
func NewQuotaLedger(budget int) *QuotaLedger {
	return &QuotaLedger{budget: budget, now: time.Now}
}

// WithNow sets a fixed clock for testing.
func (l *QuotaLedger) WithNow(now func() time.Time) *QuotaLedger {
	l.now = now
	return l
}

// TryReserve atomically reserves n calls if the remaining budget allows a
// full reservation; partial reservations are never made.
func (l *QuotaLedger) TryReserve(n int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.resetIfNewDay()
	if l.used+n > l.budget {
		zap.L().Debug("poi: quota reservation refused",
			zap.Int("requested", n),
			zap.Int("remaining", l.budget-l.used),
		)
		return false
	}
	l.used += n
	return true
}

// Remaining returns the calls left in today's budget.
func (l *QuotaLedger) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.resetIfNewDay()
	return l.budget - l.used
}

// resetIfNewDay zeroes the counter when the UTC day rolls over.
// Callers must hold mu.
func (l *QuotaLedger) resetIfNewDay() {
	day := l.now().UTC().Format("2006-01-02")
	if day != l.day {
		l.day = day
		l.used = 0
	}
}
