package coord

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jpreyes/paperradar/internal/logging"
)

// minPollInterval keeps a misconfigured interval from hammering the API.
const minPollInterval = 10 * time.Second

// LiveTick asks the UI to re-fetch the live snapshot.
type LiveTick struct {
	At time.Time
}

// sender is the part of *tea.Program the poller needs.
type sender interface {
	Send(msg tea.Msg)
}

// Poller sends a LiveTick on a fixed interval. It never fetches itself:
// the tick goes through the program so every request stays owned by the
// Session. Uses context cancellation as the ONLY stop mechanism.
type Poller struct {
	interval time.Duration
	wg       sync.WaitGroup
}

// NewPoller creates a Poller. Intervals below ten seconds are raised to it.
func NewPoller(interval time.Duration) *Poller {
	return &Poller{interval: max(interval, minPollInterval)}
}

// Interval returns the effective tick interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start begins ticking. Call with a cancellable context.
func (p *Poller) Start(ctx context.Context, program sender) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		logging.Debug("live poller started", "interval", p.interval)

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				program.Send(LiveTick{At: now})
			}
		}
	}()
}

// Wait blocks until the background goroutine exits.
// Call after canceling the context passed to Start.
func (p *Poller) Wait() {
	p.wg.Wait()
}
