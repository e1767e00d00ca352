/*
janitor.go - Periodic cache cleanup

PURPOSE:
  Evicts expired projections so an idle server gives memory back. The LRU
  already drops expired entries lazily on Get; the janitor covers keys that
  are never asked for again.

DESIGN:
  - Runs a background goroutine with configurable interval
  - Sweeps once immediately on start
  - Stop waits for the goroutine to exit

USAGE:
  janitor := NewCacheJanitor(handler.Memo(), logger)
  janitor.Interval = time.Minute
  janitor.Start()
  // ... later
  janitor.Stop()
*/
package api

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/accruemind/accrual-engine/logging"
)

// Cleaner is anything with expiring entries.
type Cleaner interface {
	CleanExpired() int
}

// CacheJanitor sweeps expired cache entries on a ticker.
type CacheJanitor struct {
	Cache    Cleaner
	Interval time.Duration
	Enabled  bool
	Logger   *slog.Logger

	ticker  *time.Ticker
	stop    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	removed atomic.Int64
}

// NewCacheJanitor creates a janitor with a one minute interval.
func NewCacheJanitor(c Cleaner, logger *slog.Logger) *CacheJanitor {
	return &CacheJanitor{
		Cache:    c,
		Interval: time.Minute,
		Enabled:  true,
		Logger:   logging.WithComponent(logger, logging.ComponentCache),
	}
}

// Start begins the janitor. Calling Start on a running janitor is a no-op.
func (j *CacheJanitor) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.Enabled {
		j.Logger.Info("janitor disabled, not starting")
		return
	}
	if j.ticker != nil {
		return
	}

	j.ticker = time.NewTicker(j.Interval)
	j.stop = make(chan struct{})
	j.wg.Add(1)

	go j.run(j.ticker, j.stop)

	j.Logger.Info("janitor started", "interval", j.Interval)
}

// Stop stops the janitor and waits for it to exit.
func (j *CacheJanitor) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.ticker == nil {
		return
	}
	j.ticker.Stop()
	close(j.stop)
	j.wg.Wait()
	j.ticker = nil
	j.Logger.Info("janitor stopped", "removed_total", j.Removed())
}

// Removed returns how many entries the janitor has evicted so far.
func (j *CacheJanitor) Removed() int64 {
	return j.removed.Load()
}

func (j *CacheJanitor) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer j.wg.Done()

	j.sweep()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-stop:
			return
		}
	}
}

func (j *CacheJanitor) sweep() {
	n := j.Cache.CleanExpired()
	j.removed.Add(int64(n))
	if n > 0 {
		j.Logger.Debug("expired projections removed", logging.FieldRemoved, n)
	}
}
