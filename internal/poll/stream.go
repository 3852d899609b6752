// Package poll turns a snapshot fetch into a lazily pulled stream. Each
// pull cycle performs one fetch, applies an emission policy, yields zero or
// more items, and sleeps before the next fetch. The first fetch error is
// yielded once and ends the stream.
package poll

import (
	"context"
	"iter"
	"time"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/internal/metrics"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

type state int

const (
	stateAwaitingFetch state = iota
	stateSleeping
	stateTerminated
)

// Option configures a Stream.
type Option func(*options)

type options struct {
	metrics *metrics.Metrics
}

// WithMetrics counts yielded items.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// Stream is a pull-driven poll loop. It is not safe for concurrent use.
type Stream[T any] struct {
	ctx      context.Context
	interval time.Duration
	policy   string
	step     func(ctx context.Context) ([]T, error)
	metrics  *metrics.Metrics

	state   state
	pending []T
}

func newStream[T any](ctx context.Context, interval time.Duration, policy string,
	step func(ctx context.Context) ([]T, error), opts []Option,
) *Stream[T] {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Stream[T]{
		ctx:      ctx,
		interval: interval,
		policy:   policy,
		step:     step,
		metrics:  cfg.metrics,
	}
}

// Next pulls the next item. ok is false once the stream has terminated,
// either after yielding a fetch error or because ctx was canceled.
func (s *Stream[T]) Next() (T, error, bool) {
	var zero T

	for {
		if len(s.pending) > 0 {
			item := s.pending[0]
			s.pending = s.pending[1:]
			s.metrics.ObserveStreamItem(s.policy, metrics.OutcomeOK)

			return item, nil, true
		}

		switch s.state {
		case stateTerminated:
			return zero, nil, false

		case stateSleeping:
			if sleep(s.ctx, s.interval) != nil {
				s.state = stateTerminated

				return zero, nil, false
			}

			s.state = stateAwaitingFetch

		case stateAwaitingFetch:
			if s.ctx.Err() != nil {
				s.state = stateTerminated

				return zero, nil, false
			}

			items, err := s.step(s.ctx)
			if err != nil {
				s.state = stateTerminated
				s.metrics.ObserveStreamItem(s.policy, string(reapi.KindOf(err)))

				return zero, err, true
			}

			s.pending = items
			s.state = stateSleeping
		}
	}
}

// All ranges over the remaining items.
func (s *Stream[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, err, ok := s.Next()
			if !ok || !yield(item, err) {
				return
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Republish yields every fetched snapshot unchanged.
func Republish[T any](ctx context.Context, interval time.Duration,
	fetch func(ctx context.Context) (T, error), opts ...Option,
) *Stream[T] {
	return newStream(ctx, interval, constants.PolicyRepublish, func(ctx context.Context) ([]T, error) {
		snapshot, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		return []T{snapshot}, nil
	}, opts)
}

// Cursor yields the entries of each fetch in order and advances the cursor
// to the last entry. fetch receives "" until the first non-empty batch.
// The server is expected to return entries strictly after the cursor,
// oldest first.
func Cursor[T any](ctx context.Context, interval time.Duration,
	fetch func(ctx context.Context, cursor string) ([]T, error), cursorOf func(T) string, opts ...Option,
) *Stream[T] {
	var cursor string

	return newStream(ctx, interval, constants.PolicyCursor, func(ctx context.Context) ([]T, error) {
		entries, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}

		if len(entries) > 0 {
			cursor = cursorOf(entries[len(entries)-1])
		}

		return entries, nil
	}, opts)
}

// Watch yields every snapshot. Previous carries the prior discriminant when
// it was present and differs from the current one, or when it disappeared.
func Watch[T any, D comparable](ctx context.Context, interval time.Duration,
	fetch func(ctx context.Context) (T, error), discriminant func(T) (D, bool), opts ...Option,
) *Stream[reapi.WatchEvent[T, D]] {
	var (
		last    D
		hasLast bool
	)

	return newStream(ctx, interval, constants.PolicyWatch, func(ctx context.Context) ([]reapi.WatchEvent[T, D], error) {
		snapshot, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		event := reapi.WatchEvent[T, D]{Current: snapshot}

		current, ok := discriminant(snapshot)
		if hasLast && (!ok || current != last) {
			previous := last
			event.Previous = &previous
		}

		last, hasLast = current, ok

		return []reapi.WatchEvent[T, D]{event}, nil
	}, opts)
}
