package render

import (
	"context"
	"errors"
	"image"
	"sync/atomic"

	"github.com/jackzampolin/leaf/internal/document"
)

// countingSource counts Render calls.
type countingSource struct {
	document.Source
	calls atomic.Int32
}

func (s *countingSource) Render(ctx context.Context, page int, region document.Region, scale float64) (*image.RGBA, error) {
	s.calls.Add(1)
	return s.Source.Render(ctx, page, region, scale)
}

// blockingSource blocks every render until release is closed or ctx ends.
type blockingSource struct {
	document.Source
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func newBlockingSource(src document.Source) *blockingSource {
	return &blockingSource{
		Source:  src,
		started: make(chan struct{}, 64),
		release: make(chan struct{}),
	}
}

func (s *blockingSource) Render(ctx context.Context, page int, region document.Region, scale float64) (*image.RGBA, error) {
	s.calls.Add(1)
	s.started <- struct{}{}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.release:
	}
	return s.Source.Render(ctx, page, region, scale)
}

// flakySource fails the first failures renders with a transient error.
type flakySource struct {
	document.Source
	failures int32
	calls    atomic.Int32
}

var errTransient = errors.New("rasterizer busy")

func (s *flakySource) Render(ctx context.Context, page int, region document.Region, scale float64) (*image.RGBA, error) {
	if s.calls.Add(1) <= s.failures {
		return nil, errTransient
	}
	return s.Source.Render(ctx, page, region, scale)
}

// brokenSource fails every render with err, or panics when err is nil.
type brokenSource struct {
	document.Source
	err   error
	calls atomic.Int32
}

func (s *brokenSource) Render(context.Context, int, document.Region, float64) (*image.RGBA, error) {
	s.calls.Add(1)
	if s.err == nil {
		panic("decoder exploded")
	}
	return nil, s.err
}
