package episode

import (
	"context"
	"errors"
	"fmt"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// Renumberable is a scene that can produce a copy of itself at a new position.
type Renumberable[T any] interface {
	Sequenced
	WithSequence(n int) T
}

// Move removes the item at from and reinserts it at to, then rewrites every
// sequence number to its new 1-based position. The input slice is untouched.
func Move[T Renumberable[T]](items []T, from, to int) ([]T, error) {
	n := len(items)
	if from < 0 || from >= n {
		return nil, fmt.Errorf("source %d of %d: %w", from, n, ErrIndexOutOfRange)
	}
	if to < 0 || to >= n {
		return nil, fmt.Errorf("destination %d of %d: %w", to, n, ErrIndexOutOfRange)
	}

	moved := items[from]
	rest := make([]T, 0, n)
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)

	out := make([]T, 0, n)
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)

	return Renumber(out), nil
}

// Renumber returns a copy with sequence numbers set to position+1.
func Renumber[T Renumberable[T]](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.WithSequence(i + 1)
	}
	return out
}

// Changed returns the items of next whose sequence number differs from the
// same item (matched by id) in prev. Items absent from prev count as changed.
func Changed[T Sequenced, K comparable](prev, next []T, id func(T) K) []T {
	before := make(map[K]int, len(prev))
	for _, item := range prev {
		before[id(item)] = item.Sequence()
	}
	out := make([]T, 0, len(next))
	for _, item := range next {
		if seq, ok := before[id(item)]; !ok || seq != item.Sequence() {
			out = append(out, item)
		}
	}
	return out
}

// Failure is one update that did not land.
type Failure[T any] struct {
	Item T
	Err  error
}

// PersistResult records which sequential updates landed and which did not.
type PersistResult[T any] struct {
	Succeeded []T
	Failures  []Failure[T]
}

// Failed returns the items whose update did not land, in list order,
// so a caller can retry only those.
func (r *PersistResult[T]) Failed() []T {
	out := make([]T, 0, len(r.Failures))
	for _, f := range r.Failures {
		out = append(out, f.Item)
	}
	return out
}

// OK reports whether every update landed.
func (r *PersistResult[T]) OK() bool {
	return len(r.Failures) == 0
}

// Err joins every failure into one error, nil when all updates landed.
func (r *PersistResult[T]) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f.Err)
	}
	return fmt.Errorf("%d of %d order updates failed: %w",
		len(r.Failures), len(r.Failures)+len(r.Succeeded), errors.Join(errs...))
}

// PersistOrder pushes each item's new position one call at a time, in order.
// A failed call does not stop the loop; a cancelled context does, and the
// remaining items are recorded as failed with the context error.
func PersistOrder[T any](ctx context.Context, items []T, update func(ctx context.Context, item T) error) (*PersistResult[T], error) {
	result := &PersistResult[T]{}
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			for _, rest := range items[i:] {
				result.Failures = append(result.Failures, Failure[T]{Item: rest, Err: err})
			}
			break
		}
		if err := update(ctx, item); err != nil {
			result.Failures = append(result.Failures, Failure[T]{Item: item, Err: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, item)
	}
	return result, result.Err()
}
