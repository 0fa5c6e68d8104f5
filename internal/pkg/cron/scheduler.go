package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Job is one periodic maintenance task.
type Job struct {
	Name     string
	Interval time.Duration
	// Timeout bounds a single run. Zero means Interval.
	Timeout time.Duration
	// Delay postpones the first run. Zero runs it on Start.
	Delay time.Duration
	Fn    func(ctx context.Context) error
}

func (j Job) timeout() time.Duration {
	if j.Timeout > 0 {
		return j.Timeout
	}
	return j.Interval
}

// Scheduler runs each registered job on its own ticker until stopped.
type Scheduler struct {
	mu      sync.Mutex
	jobs    []Job
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	logger  *slog.Logger
	started bool
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{logger: logger.With(slog.String("component", "cron"))}
}

// Add registers job. Jobs added after Start are ignored until the next Start.
func (s *Scheduler) Add(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job)
	s.logger.Info("Cron job registered", "name", job.Name, "interval", job.Interval)
}

// Every registers fn to run immediately and then once per interval.
func (s *Scheduler) Every(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.Add(Job{Name: name, Interval: interval, Fn: fn})
}

// Start launches all jobs. They stop when ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, job)
	}
	s.logger.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels every job and waits for running ones to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Cron scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer s.wg.Done()

	if job.Delay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(job.Delay):
		}
	}
	s.execute(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.execute(ctx, job)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, job Job) error {
	start := time.Now()
	err := s.call(ctx, job)
	if err != nil {
		s.logger.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
		return err
	}
	s.logger.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	return nil
}

// call runs one attempt under the job timeout; a panic becomes an error.
func (s *Scheduler) call(ctx context.Context, job Job) (err error) {
	if t := job.timeout(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("job panicked: %v", p)
		}
	}()
	return job.Fn(ctx)
}

// RunOnce runs every job a single time in registration order and joins their errors.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	var errs []error
	for _, job := range jobs {
		if err := s.execute(ctx, job); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", job.Name, err))
		}
	}
	return errors.Join(errs...)
}
