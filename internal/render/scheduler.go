// Package render schedules asynchronous screen renders on a worker pool.
//
// A Scheduler resolves each request from the tile cache when it can and
// otherwise queues a Task for its workers. Requests for an equal screen
// share one in-flight Task; cancelled tasks resolve with ErrCancelled and
// leave the in-flight set immediately.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackzampolin/leaf/internal/cache"
	"github.com/jackzampolin/leaf/internal/document"
	"github.com/jackzampolin/leaf/internal/layout"
	"github.com/jackzampolin/leaf/internal/metrics"
)

// Defaults for SchedulerConfig.
const (
	DefaultQueueSize  = 256
	DefaultMaxRetries = 3
	DefaultRetryDelay = 50 * time.Millisecond
)

// SchedulerConfig configures a new Scheduler.
type SchedulerConfig struct {
	Source  document.Source
	Cache   *cache.Cache
	Metrics *metrics.Recorder // optional
	Logger  *slog.Logger

	Workers    int           // Worker goroutines (default: runtime.NumCPU())
	QueueSize  int           // Max queued tasks (default: 256)
	MaxRetries int           // Retries after a transient source failure (default: 3)
	RetryDelay time.Duration // Delay between retries (default: 50ms)

	// Background fills the frame outside page content (default: white).
	Background color.Color
}

// Status reports scheduler state.
type Status struct {
	Running   bool               `json:"running"`
	Workers   int                `json:"workers"`
	Active    int                `json:"active"`
	InFlight  int                `json:"in_flight"`
	Queue     PriorityQueueStats `json:"queue"`
	Completed int64              `json:"completed"`
	Failed    int64              `json:"failed"`
	Cancelled int64              `json:"cancelled"`
	Deduped   int64              `json:"deduped"`
	CacheHits int64              `json:"cache_hits"`
	Retries   int64              `json:"retries"`
}

// Scheduler renders screens on a pool of workers that share a single
// priority queue.
type Scheduler struct {
	src        document.Source
	cache      *cache.Cache
	metrics    *metrics.Recorder
	logger     *slog.Logger
	workers    int
	queueSize  int
	maxRetries int
	retryDelay time.Duration
	background *image.Uniform

	queue *PriorityQueue

	mu       sync.Mutex
	inflight map[layout.Screen]*Task
	running  bool
	ctx      context.Context
	stop     context.CancelFunc
	wg       sync.WaitGroup

	active    atomic.Int32
	completed atomic.Int64
	failed    atomic.Int64
	cancelled atomic.Int64
	deduped   atomic.Int64
	cacheHits atomic.Int64
	retries   atomic.Int64
}

// NewScheduler creates a scheduler. Call Start before Request.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("document source is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := cfg.Cache
	if c == nil {
		c = cache.New(cache.Config{Logger: logger})
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	background := cfg.Background
	if background == nil {
		background = color.White
	}

	return &Scheduler{
		src:        cfg.Source,
		cache:      c,
		metrics:    cfg.Metrics,
		logger:     logger.With("component", "render", "workers", workers),
		workers:    workers,
		queueSize:  queueSize,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		background: image.NewUniform(background),
		queue:      NewPriorityQueue(),
		inflight:   make(map[layout.Screen]*Task),
	}, nil
}

// Cache returns the tile cache the scheduler reads and fills.
func (s *Scheduler) Cache() *cache.Cache {
	return s.cache
}

// Start launches the workers. They run until Stop or until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	s.ctx, s.stop = context.WithCancel(ctx)
	s.running = true
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
	go func(done <-chan struct{}) {
		<-done
		s.shutdown(done)
	}(s.ctx.Done())
	s.logger.Info("render scheduler started", "queue_size", s.queueSize)
	return nil
}

// Stop cancels every pending task and waits for the workers to exit.
func (s *Scheduler) Stop() {
	s.shutdown(nil)
}

// shutdown stops the running pool. A non-nil done only stops the pool
// started with that context.
func (s *Scheduler) shutdown(done <-chan struct{}) {
	s.mu.Lock()
	if !s.running || (done != nil && s.ctx.Done() != done) {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.stop()
	pending := s.drainLocked()
	s.mu.Unlock()

	for _, t := range pending {
		t.Cancel()
	}
	s.wg.Wait()
	s.queue.Prune()
	s.logger.Info("render scheduler stopped", "cancelled", len(pending))
}

// Request returns a task resolving to the rendered screen. It never blocks
// on rendering: cache hits come back already resolved, and an in-flight
// render of an equal screen is shared. A higher priority than the shared
// task was queued at promotes it.
func (s *Scheduler) Request(screen layout.Screen, priority int) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil, ErrSchedulerStopped
	}

	if t, ok := s.inflight[screen]; ok {
		s.deduped.Add(1)
		if !t.claimed.Load() {
			// Promotes only; an equal or lower priority leaves the queue alone.
			if err := s.queue.Push(t, priority); err != nil {
				return nil, err
			}
		}
		return t, nil
	}

	if img, stamp, ok := s.cache.Get(screen); ok {
		s.cacheHits.Add(1)
		t := Resolved(&Frame{Screen: screen, Image: img, Stamp: stamp, Cached: true})
		s.metrics.Record(metrics.Metric{
			TaskID:   t.id,
			Page:     screen.Page,
			Screen:   screen.String(),
			Priority: priority,
			Outcome:  metrics.OutcomeCached,
		})
		s.logger.Debug("cache hit", "page", screen.Page, "task_id", t.id)
		return t, nil
	}

	if s.queue.Len() >= s.queueSize {
		s.queue.Prune()
		if s.queue.Len() >= s.queueSize {
			s.logger.Warn("render queue full", "page", screen.Page)
			return nil, fmt.Errorf("%w: %d queued", ErrQueueFull, s.queueSize)
		}
	}

	t := newTask(s.ctx, screen)
	t.epoch = s.cache.Epoch()
	t.onCancel = s.forget
	if err := s.queue.Push(t, priority); err != nil {
		return nil, err
	}
	s.inflight[screen] = t
	s.logger.Debug("render queued", "page", screen.Page, "task_id", t.id, "priority", priority)
	return t, nil
}

// forget drops a cancelled task from the in-flight set.
func (s *Scheduler) forget(t *Task) {
	s.mu.Lock()
	if s.inflight[t.screen] == t {
		delete(s.inflight, t.screen)
	}
	s.mu.Unlock()

	s.cancelled.Add(1)
	s.metrics.Record(metrics.Metric{
		TaskID:       t.id,
		Page:         t.screen.Page,
		Screen:       t.screen.String(),
		Outcome:      metrics.OutcomeCancelled,
		TotalSeconds: time.Since(t.submitted).Seconds(),
	})
	s.logger.Debug("render cancelled", "page", t.screen.Page, "task_id", t.id)
}

// CancelOutside cancels every in-flight task whose screen keep rejects and
// returns how many were cancelled.
func (s *Scheduler) CancelOutside(keep func(layout.Screen) bool) int {
	s.mu.Lock()
	var victims []*Task
	for screen, t := range s.inflight {
		if !keep(screen) {
			victims = append(victims, t)
		}
	}
	s.mu.Unlock()

	n := 0
	for _, t := range victims {
		if t.Cancel() {
			n++
		}
	}
	if n > 0 {
		s.queue.Prune()
	}
	return n
}

// CancelAll cancels every in-flight task.
func (s *Scheduler) CancelAll() int {
	return s.CancelOutside(func(layout.Screen) bool { return false })
}

// drainLocked snapshots the in-flight set. Caller holds mu.
func (s *Scheduler) drainLocked() []*Task {
	pending := make([]*Task, 0, len(s.inflight))
	for _, t := range s.inflight {
		pending = append(pending, t)
	}
	return pending
}

// Status returns current scheduler status.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	running := s.running
	inflight := len(s.inflight)
	s.mu.Unlock()

	return Status{
		Running:   running,
		Workers:   s.workers,
		Active:    int(s.active.Load()),
		InFlight:  inflight,
		Queue:     s.queue.Stats(),
		Completed: s.completed.Load(),
		Failed:    s.failed.Load(),
		Cancelled: s.cancelled.Load(),
		Deduped:   s.deduped.Load(),
		CacheHits: s.cacheHits.Load(),
		Retries:   s.retries.Load(),
	}
}

// worker processes tasks from the shared queue.
func (s *Scheduler) worker(id int) {
	defer s.wg.Done()
	s.logger.Debug("render worker started", "worker_id", id)
	for {
		t := s.queue.Pop(s.ctx.Done())
		if t == nil {
			return
		}
		if t.Resolved() || !t.claimed.CompareAndSwap(false, true) {
			continue
		}

		s.active.Add(1)
		s.process(t)
		s.active.Add(-1)
	}
}

// process renders one claimed task and resolves it.
func (s *Scheduler) process(t *Task) {
	t.started = time.Now()
	defer t.cancel()

	img, err := s.renderFrame(t)
	finished := time.Now()

	s.mu.Lock()
	if s.inflight[t.screen] == t {
		delete(s.inflight, t.screen)
	}
	s.mu.Unlock()

	m := metrics.Metric{
		TaskID:           t.id,
		Page:             t.screen.Page,
		Screen:           t.screen.String(),
		QueueSeconds:     t.started.Sub(t.submitted).Seconds(),
		ExecutionSeconds: finished.Sub(t.started).Seconds(),
		TotalSeconds:     finished.Sub(t.submitted).Seconds(),
		Attempts:         t.attempts,
	}

	if err != nil {
		if t.ctx.Err() != nil || errors.Is(err, context.Canceled) {
			// Cancel already resolved the task and recorded it.
			t.Cancel()
			return
		}
		rerr := &Error{Screen: t.screen, Err: err}
		if t.resolve(nil, rerr) {
			s.failed.Add(1)
			m.Outcome = metrics.OutcomeFailed
			m.ErrorType = errorType(err)
			s.metrics.Record(m)
			s.logger.Warn("render failed", "page", t.screen.Page, "task_id", t.id, "attempts", t.attempts, "error", err)
		}
		return
	}

	frame := &Frame{Screen: t.screen, Image: img}
	if stamp, ok := s.cache.Put(t.screen, img, t.epoch); ok {
		frame.Stamp = stamp
	}
	if t.resolve(frame, nil) {
		s.completed.Add(1)
		m.Outcome = metrics.OutcomeRendered
		s.metrics.Record(m)
		s.logger.Debug("render completed", "page", t.screen.Page, "task_id", t.id, "duration", finished.Sub(t.started))
	}
}

func errorType(err error) string {
	var pe *PanicError
	switch {
	case errors.As(err, &pe):
		return "panic"
	case errors.Is(err, document.ErrCorruptPage):
		return "corrupt_page"
	case errors.Is(err, document.ErrPageOutOfRange):
		return "page_out_of_range"
	case errors.Is(err, document.ErrEmptyRegion):
		return "empty_region"
	case errors.Is(err, document.ErrInvalidScale):
		return "invalid_scale"
	default:
		return "source_error"
	}
}
