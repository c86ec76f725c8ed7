package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/leaf/internal/cache"
	"github.com/jackzampolin/leaf/internal/layout"
)

var (
	// ErrCancelled resolves tasks cancelled before they produced a frame.
	// It is never wrapped in *Error.
	ErrCancelled = errors.New("render cancelled")

	// ErrRenderFailed matches every *Error via errors.Is.
	ErrRenderFailed = errors.New("render failed")

	// ErrQueueFull is returned by Request when the queue is at capacity.
	ErrQueueFull = errors.New("render queue full")

	// ErrSchedulerStopped is returned by Request before Start or after Stop.
	ErrSchedulerStopped = errors.New("scheduler stopped")
)

// Error is a render failure for one screen.
type Error struct {
	Screen layout.Screen
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render %s: %v", e.Screen, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrRenderFailed) true for any *Error.
func (e *Error) Is(target error) bool {
	return target == ErrRenderFailed
}

// Frame is a rendered screen: a viewport-sized buffer owned by the caller.
type Frame struct {
	Screen layout.Screen
	Image  *image.RGBA
	// Stamp is the cache generation the buffer was stored under; zero when
	// the frame was not cached.
	Stamp  uint64
	Cached bool
}

func (f *Frame) clone() *Frame {
	out := *f
	out.Image = cache.Clone(f.Image)
	return &out
}

// Task is a pending render of one screen. All requests for an equal screen
// made while it is in flight share the same Task.
type Task struct {
	id     string
	screen layout.Screen

	done  chan struct{}
	once  sync.Once
	frame *Frame
	err   error

	ctx     context.Context
	cancel  context.CancelFunc
	claimed atomic.Bool
	epoch   uint64

	submitted time.Time
	started   time.Time
	attempts  int

	// onCancel lets the scheduler drop its in-flight entry.
	onCancel func(*Task)
}

func newTask(parent context.Context, screen layout.Screen) *Task {
	ctx, cancel := context.WithCancel(parent)
	return &Task{
		id:        uuid.New().String(),
		screen:    screen,
		done:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
		submitted: time.Now(),
	}
}

// Resolved returns a task that is already complete with frame.
func Resolved(frame *Frame) *Task {
	t := &Task{
		id:        uuid.New().String(),
		screen:    frame.Screen,
		done:      make(chan struct{}),
		submitted: time.Now(),
	}
	t.resolve(frame, nil)
	return t
}

// Failed returns a task that is already complete with err.
func Failed(screen layout.Screen, err error) *Task {
	t := &Task{
		id:        uuid.New().String(),
		screen:    screen,
		done:      make(chan struct{}),
		submitted: time.Now(),
	}
	t.resolve(nil, err)
	return t
}

// ID returns the task's unique identifier.
func (t *Task) ID() string {
	return t.id
}

// Screen returns the screen being rendered.
func (t *Task) Screen() layout.Screen {
	return t.screen
}

// Done is closed once the task resolves.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Resolved reports whether the task has completed.
func (t *Task) Resolved() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the task resolves or ctx is done. Each caller receives
// its own copy of the frame buffer.
func (t *Task) Wait(ctx context.Context) (*Frame, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.done:
	}
	if t.err != nil {
		return nil, t.err
	}
	return t.frame.clone(), nil
}

// Result returns the outcome without blocking; ok is false while pending.
func (t *Task) Result() (frame *Frame, err error, ok bool) {
	if !t.Resolved() {
		return nil, nil, false
	}
	if t.err != nil {
		return nil, t.err, true
	}
	return t.frame.clone(), nil, true
}

// Cancel stops the render and resolves the task with ErrCancelled. It is a
// no-op on a resolved task.
func (t *Task) Cancel() bool {
	if !t.resolve(nil, ErrCancelled) {
		return false
	}
	if t.cancel != nil {
		t.cancel()
	}
	if t.onCancel != nil {
		t.onCancel(t)
	}
	return true
}

// Cancelled reports whether the task resolved by cancellation.
func (t *Task) Cancelled() bool {
	return t.Resolved() && errors.Is(t.err, ErrCancelled)
}

// resolve completes the task once; later calls return false.
func (t *Task) resolve(frame *Frame, err error) bool {
	resolved := false
	t.once.Do(func() {
		t.frame = frame
		t.err = err
		close(t.done)
		resolved = true
	})
	return resolved
}
