package api

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/accruemind/accrual-engine/logging"
)

type countingCleaner struct {
	calls atomic.Int32
}

func (c *countingCleaner) CleanExpired() int {
	c.calls.Add(1)
	return 3
}

func TestCacheJanitor_SweepsOnStart(t *testing.T) {
	cleaner := &countingCleaner{}
	j := NewCacheJanitor(cleaner, logging.Discard())
	j.Interval = time.Hour

	j.Start()
	j.Start()
	assert.Eventually(t, func() bool { return cleaner.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	j.Stop()

	assert.Equal(t, int64(3), j.Removed())
	assert.Equal(t, int32(1), cleaner.calls.Load())
}

func TestCacheJanitor_SweepsOnTick(t *testing.T) {
	cleaner := &countingCleaner{}
	j := NewCacheJanitor(cleaner, logging.Discard())
	j.Interval = 10 * time.Millisecond

	j.Start()
	assert.Eventually(t, func() bool { return cleaner.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	j.Stop()
	j.Stop()

	assert.GreaterOrEqual(t, j.Removed(), int64(9))
}

func TestCacheJanitor_Disabled(t *testing.T) {
	cleaner := &countingCleaner{}
	j := NewCacheJanitor(cleaner, logging.Discard())
	j.Enabled = false

	j.Start()
	j.Stop()

	assert.Equal(t, int32(0), cleaner.calls.Load())
}
