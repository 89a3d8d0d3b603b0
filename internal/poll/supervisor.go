package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/heram/storefront/internal/log"
)

const DefaultInterval = 20 * time.Second

// Condition is an external boolean signal gating the supervisor, the
// navigator-online / page-visible analogs. Changes delivers a best-effort
// notification whenever the state transitions.
type Condition interface {
	Active() bool
	Changes() <-chan struct{}
}

// Flag is a manually driven Condition.
type Flag struct {
	mu      sync.Mutex
	active  bool
	changes chan struct{}
}

func NewFlag(active bool) *Flag {
	return &Flag{active: active, changes: make(chan struct{}, 1)}
}

func (f *Flag) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *Flag) Changes() <-chan struct{} {
	return f.changes
}

func (f *Flag) Set(active bool) {
	f.mu.Lock()
	if f.active == active {
		f.mu.Unlock()
		return
	}
	f.active = active
	f.mu.Unlock()

	select {
	case f.changes <- struct{}{}:
	default:
	}
}

// Supervisor runs fn on a fixed interval while every condition holds. Any
// transition away from the all-active conjunction tears the ticker down;
// any transition back recreates it. At most one ticker exists at a time.
type Supervisor struct {
	interval   time.Duration
	fn         func(context.Context)
	conditions []Condition

	mu         sync.Mutex
	started    bool
	stopTicker context.CancelFunc
	tickerDone chan struct{}
	stopCh     chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	tickers    atomic.Int32
}

func NewSupervisor(
	interval time.Duration,
	fn func(context.Context),
	conditions ...Condition,
) *Supervisor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Supervisor{
		interval:   interval,
		fn:         fn,
		conditions: conditions,
		stopCh:     make(chan struct{}),
	}
}

func (s *Supervisor) allActive() bool {
	for _, condition := range s.conditions {
		if !condition.Active() {
			return false
		}
	}
	return true
}

// Start begins supervising. It returns immediately; call Stop (or cancel
// the context) to tear down the ticker and all listeners.
func (s *Supervisor) Start(c context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Supervisor Start").
		Dur(log.KEY_POLL_INTERVAL, s.interval).
		Logger()
	logger.Info().Msg("starting poll supervisor")

	events := make(chan struct{}, 1)
	for _, condition := range s.conditions {
		s.wg.Add(1)
		go func(condition Condition) {
			defer s.wg.Done()
			for {
				select {
				case <-c.Done():
					return
				case <-s.stopCh:
					return
				case <-condition.Changes():
					select {
					case events <- struct{}{}:
					default:
					}
				}
			}
		}(condition)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.reevaluate(c)
		for {
			select {
			case <-c.Done():
				s.teardownTicker()
				return
			case <-s.stopCh:
				s.teardownTicker()
				return
			case <-events:
				s.reevaluate(c)
			}
		}
	}()
}

// Stop tears down the ticker and all condition listeners.
func (s *Supervisor) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	s.wg.Wait()
}

// ActiveTickers reports the number of live ticker goroutines. The invariant
// is that this never exceeds one.
func (s *Supervisor) ActiveTickers() int {
	return int(s.tickers.Load())
}

func (s *Supervisor) reevaluate(c context.Context) {
	if s.allActive() {
		s.setupTicker(c)
		return
	}
	s.teardownTicker()
}

func (s *Supervisor) setupTicker(c context.Context) {
	s.mu.Lock()
	// a new ticker is only created when none is currently tracked
	if s.stopTicker != nil {
		s.mu.Unlock()
		return
	}
	prevDone := s.tickerDone
	s.mu.Unlock()

	// wait for a torn-down ticker to fully exit before replacing it
	if prevDone != nil {
		<-prevDone
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopTicker != nil {
		return
	}

	done := make(chan struct{})
	s.tickerDone = done
	tickCtx, cancel := context.WithCancel(c)
	s.stopTicker = cancel
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)
		s.tickers.Add(1)
		defer s.tickers.Add(-1)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-tickCtx.Done():
				return
			case <-ticker.C:
				s.fn(tickCtx)
			}
		}
	}()
}

func (s *Supervisor) teardownTicker() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopTicker == nil {
		return
	}
	s.stopTicker()
	s.stopTicker = nil
}
