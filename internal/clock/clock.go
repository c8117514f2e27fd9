package clock

import (
	"sync"
	"time"

	"auction-engine/utils"
)

// Scheduler tracks one close timer per auction and an optional periodic
// sweep. Rescheduling is an explicit re-arm: the old timer handle is
// cancelled before a new one is registered, so an extension can never
// cause a duplicate fire. The schedule table has its own lock,
// independent of any auction lock.
type Scheduler struct {
	mu     sync.Mutex
	fire   func(auctionID string)
	timers map[string]*time.Timer
	gen    map[string]uint64 // invalidates callbacks from replaced timers

	sweepStop chan struct{}
	sweepOnce sync.Once
}

// NewScheduler creates a scheduler that invokes fire with the auction id
// whenever a close timer expires.
func NewScheduler(fire func(auctionID string)) *Scheduler {
	return &Scheduler{
		fire:      fire,
		timers:    make(map[string]*time.Timer),
		gen:       make(map[string]uint64),
		sweepStop: make(chan struct{}),
	}
}

// ScheduleClose arms (or re-arms) the close timer for an auction
func (s *Scheduler) ScheduleClose(auctionID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[auctionID]; ok {
		t.Stop()
	}
	s.gen[auctionID]++
	gen := s.gen[auctionID]

	d := time.Until(at)
	if d < 0 {
		d = 0
	}
	s.timers[auctionID] = time.AfterFunc(d, func() {
		s.mu.Lock()
		stale := s.gen[auctionID] != gen
		if !stale {
			delete(s.timers, auctionID)
		}
		s.mu.Unlock()
		if stale {
			return
		}
		s.fire(auctionID)
	})
}

// CancelSchedule drops the close timer for an auction, if any
func (s *Scheduler) CancelSchedule(auctionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[auctionID]; ok {
		t.Stop()
		delete(s.timers, auctionID)
	}
	s.gen[auctionID]++
}

// StartSweep runs sweep at the given interval until Stop is called.
// The sweep catches auctions whose timers were lost (e.g. scheduled
// before a restart) and opens auctions whose start time passed.
func (s *Scheduler) StartSweep(interval time.Duration, sweep func()) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sweep()
			case <-s.sweepStop:
				return
			}
		}
	}()
	utils.Info("clock: sweep started", map[string]any{"interval": interval.String()})
}

// Stop terminates the sweep loop and cancels all pending timers
func (s *Scheduler) Stop() {
	s.sweepOnce.Do(func() { close(s.sweepStop) })

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
		s.gen[id]++
	}
}
