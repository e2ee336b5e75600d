package reconcile

import (
	"context"
	"log"
	"sync"
	"time"
)

// Sweep is one scheduled reconciliation job.
type Sweep interface {
	Run(ctx context.Context) error
}

// Scheduler owns the two reconciliation loops: the moderation sweep and the
// tier sweep, each on its own ticker. The sweeps never block each other and a
// failing run only logs; the next tick retries from current state.
type Scheduler struct {
	moderation         Sweep
	tier               Sweep
	moderationInterval time.Duration
	tierInterval       time.Duration

	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

func NewScheduler(moderation, tierSweep Sweep, moderationInterval, tierInterval time.Duration) *Scheduler {
	return &Scheduler{
		moderation:         moderation,
		tier:               tierSweep,
		moderationInterval: moderationInterval,
		tierInterval:       tierInterval,
		stopCh:             make(chan struct{}),
	}
}

// Start launches both loops. They run until Stop is called or ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(2)
	go s.loop(ctx, "moderation", s.moderation, s.moderationInterval)
	go s.loop(ctx, "tier", s.tier, s.tierInterval)
	log.Printf("reconciliation scheduler started: moderation_interval=%v tier_interval=%v",
		s.moderationInterval, s.tierInterval)
}

// Stop signals both loops and waits for any in-flight sweep to finish.
func (s *Scheduler) Stop() {
	s.once.Do(func() {
		close(s.stopCh)
	})
	s.wg.Wait()
	log.Println("reconciliation scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, name string, sweep Sweep, interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := sweep.Run(ctx); err != nil {
				log.Printf("%s sweep failed: %v", name, err)
			}
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}
