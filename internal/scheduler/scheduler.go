package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/kankrittapon/calendar/internal/domain/contract"
	"github.com/kankrittapon/calendar/internal/logger"
	"github.com/robfig/cron/v3"
)

// tickTimeout bounds one tick so a stuck send cannot pile up behind the next minute
const tickTimeout = 50 * time.Second

// Scheduler fires the digest service on a cron cadence. The digest service decides
// what is due, so the cadence only has to hit every relevant minute.
type Scheduler struct {
	cron          *cron.Cron
	digestService contract.DigestService
	spec          string
	now           func() time.Time
}

func New(digestService contract.DigestService, spec string, location *time.Location) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		digestService: digestService,
		spec:          spec,
		now:           time.Now,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.tick); err != nil {
		return fmt.Errorf("failed to schedule digest tick %q: %w", s.spec, err)
	}

	s.cron.Start()
	logger.Info("scheduler started", "spec", s.spec)
	return nil
}

// Stop waits for a running tick to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("scheduler stopped")
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in scheduler tick", "panic", r)
		}
	}()

	s.digestService.Tick(ctx, s.now())
}
