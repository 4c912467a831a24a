package membership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTermEnd(t *testing.T) {
	assert.Equal(t, date(2025, time.April, 15), TermEnd(date(2025, time.January, 15)))
	// AddDate normalization: Nov 30 + 3 months is Feb 30, which rolls over.
	assert.Equal(t, date(2026, time.March, 2), TermEnd(date(2025, time.November, 30)))
}

func TestIsActive(t *testing.T) {
	now := date(2025, time.June, 15)
	assert.True(t, IsActive(now.Add(time.Hour), now))
	assert.False(t, IsActive(now, now), "a term is over the moment its end date arrives")
	assert.False(t, IsActive(now.Add(-time.Hour), now))
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysRemaining(now.AddDate(0, 0, -1), now))
	assert.Equal(t, 1, DaysRemaining(now.Add(2*time.Hour), now), "partial day rounds up")
	assert.Equal(t, 2, DaysRemaining(now.Add(36*time.Hour), now))
	assert.Equal(t, 10, DaysRemaining(now.Add(10*24*time.Hour), now))
}

func TestRenewalStart(t *testing.T) {
	now := date(2025, time.June, 15)
	running := date(2025, time.July, 1)
	expired := date(2025, time.May, 1)

	assert.Equal(t, running, RenewalStart(running, true, now), "extension starts where the old term ends")
	assert.Equal(t, now, RenewalStart(expired, true, now), "lapsed term means a fresh start")
	assert.Equal(t, now, RenewalStart(time.Time{}, false, now))
}
