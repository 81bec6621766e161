package jobs

import (
	"context"
	"log/slog"
	"time"
)

const JobBranchRefresh = "branch_refresh"

type job struct {
	Type string
	Run  func(context.Context) error
}

// Service runs small background tasks off the request path. Today
// that is only the periodic branch-cache warm-up, which keeps the
// resilient branch list fresh without a front-end request paying for
// the read.
type Service struct {
	queue chan job
}

func New() *Service {
	return &Service{queue: make(chan job, 32)}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
}

func (s *Service) Enqueue(jobType string, run func(context.Context) error) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

// Schedule enqueues the job immediately and then on every tick.
func (s *Service) Schedule(ctx context.Context, jobType string, interval time.Duration, run func(context.Context) error) {
	if interval <= 0 {
		return
	}
	s.Enqueue(jobType, run)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Enqueue(jobType, run)
			}
		}
	}()
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			started := time.Now()
			if err := j.Run(ctx); err != nil {
				slog.Warn("job failed", "jobType", j.Type, "err", err)
				continue
			}
			slog.Debug("job done", "jobType", j.Type, "durationMs", time.Since(started).Milliseconds())
		}
	}
}
