package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock_SleepAdvancesAndRecords(t *testing.T) {
	start := time.Unix(1000, 0)
	clock := NewManualClock(start)

	clock.Sleep(3 * time.Second)
	clock.Sleep(2 * time.Second)

	assert.Equal(t, start.Add(5*time.Second), clock.Now())
	assert.Equal(t, []time.Duration{3 * time.Second, 2 * time.Second}, clock.Sleeps())
}

func TestManualClock_AdvanceDoesNotRecord(t *testing.T) {
	clock := NewManualClock(time.Unix(1000, 0))

	clock.Advance(time.Minute)

	assert.Equal(t, time.Unix(1060, 0), clock.Now())
	assert.Empty(t, clock.Sleeps())
}
