package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime/debug"

	"github.com/avast/retry-go/v4"
	xdraw "golang.org/x/image/draw"

	"github.com/jackzampolin/leaf/internal/document"
	"github.com/jackzampolin/leaf/internal/layout"
)

// PanicError is a panic recovered from a document source.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("source panicked: %v", e.Value)
}

// renderFrame renders t's screen into a viewport-sized buffer, retrying
// transient source failures.
func (s *Scheduler) renderFrame(t *Task) (*image.RGBA, error) {
	screen := t.screen
	if screen.Blank {
		return Compose(screen, nil, s.background), nil
	}

	var content *image.RGBA
	err := retry.Do(
		func() error {
			t.attempts++
			img, err := renderSafely(t.ctx, s.src, screen)
			if err != nil {
				return err
			}
			content = img
			return nil
		},
		retry.Context(t.ctx),
		retry.Attempts(uint(s.maxRetries+1)),
		retry.Delay(s.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			s.retries.Add(1)
			s.logger.Debug("retrying render", "page", screen.Page, "task_id", t.id, "attempt", n+1, "error", err)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if ctxErr := t.ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return Compose(screen, content, s.background), nil
}

// renderSafely calls the source, converting a panic into *PanicError.
func renderSafely(ctx context.Context, src document.Source, screen layout.Screen) (img *image.RGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return src.Render(ctx, screen.Page, screen.Region, screen.Scale)
}

// retryable reports whether a source error may succeed on another attempt.
func retryable(err error) bool {
	var pe *PanicError
	switch {
	case errors.As(err, &pe),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, document.ErrCorruptPage),
		errors.Is(err, document.ErrPageOutOfRange),
		errors.Is(err, document.ErrEmptyRegion),
		errors.Is(err, document.ErrInvalidScale):
		return false
	}
	return true
}

// Compose places content at screen.Dest on a viewport-sized buffer filled
// with background. A nil content yields a background-only frame.
func Compose(screen layout.Screen, content *image.RGBA, background image.Image) *image.RGBA {
	vp := screen.Viewport
	frame := image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))
	xdraw.Draw(frame, frame.Bounds(), background, image.Point{}, xdraw.Src)
	if content == nil {
		return frame
	}

	dst := screen.ContentRect().Intersect(frame.Bounds())
	xdraw.Draw(frame, dst, content, content.Bounds().Min, xdraw.Src)
	return frame
}
