package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ddoongjamba/autosns-api/internal/repository"
	"github.com/go-co-op/gocron/v2"
)

// Executor runs one post through the publish protocol. Implemented by
// executor.Executor.
type Executor interface {
	Execute(ctx context.Context, postID int64) error
}

// Scheduler polls the post store for due pending posts on a fixed interval
// and drives them through the executor one at a time. Ticks never overlap: a
// firing that lands while the previous tick is still running is skipped, not
// queued.
type Scheduler struct {
	pr       repository.PostRepository
	exec     Executor
	interval time.Duration

	sched   gocron.Scheduler
	ticking atomic.Bool
}

func New(pr repository.PostRepository, exec Executor, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		pr:       pr,
		exec:     exec,
		interval: interval,
	}
}

func (s *Scheduler) Start() error {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.Tick),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule due-post polling: %w", err)
	}

	s.sched = sched
	sched.Start()
	slog.Info("scheduler started", "interval", s.interval.String())
	return nil
}

// Stop prevents new firings. In-flight executions are not awaited.
func (s *Scheduler) Stop() error {
	if s.sched == nil {
		return nil
	}
	return s.sched.Shutdown()
}

// Tick scans for due posts and executes them sequentially. One bad post only
// logs; it never halts the rest of the batch.
func (s *Scheduler) Tick() {
	if !s.ticking.CompareAndSwap(false, true) {
		slog.Info("previous tick still running, skipping")
		return
	}
	defer s.ticking.Store(false)

	ctx := context.Background()
	now := time.Now().UTC()

	posts, err := s.pr.ListDue(ctx, now)
	if err != nil {
		slog.Error("unable to scan for due posts", "error", err)
		return
	}

	if len(posts) > 0 {
		slog.Info("executing due posts", "count", len(posts))
	}

	for _, post := range posts {
		if err := s.exec.Execute(ctx, post.ID); err != nil {
			slog.Error("unable to execute scheduled post", "post_id", post.ID, "error", err)
		}
	}
}
