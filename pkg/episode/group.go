// Package episode groups flat scene lists into episodes and reorders scenes
// inside one episode. Nothing here talks to the network except PersistOrder,
// which only calls the update func it is given.
package episode

import (
	"errors"
	"fmt"
	"sort"
)

const (
	// ViewerBucketSize is how many scenes the reader shows per pseudo-episode.
	ViewerBucketSize = 10
	// EditorEpisodeCount is the number of episode tabs the editor offers.
	EditorEpisodeCount = 4
)

var (
	ErrInvalidSequence   = errors.New("scene has no valid sequence number")
	ErrInvalidBucketSize = errors.New("bucket size must be at least 1")
	ErrInvalidGroupKey   = errors.New("scene has no valid episode number")
)

// Sequenced is anything with a 1-based position inside its webtoon
// (scene_number for the reader, scene_order for the editor).
type Sequenced interface {
	Sequence() int
}

// Groups maps a positive group id to its scenes in ascending sequence order.
type Groups[T Sequenced] map[int][]T

// Keys returns the group ids in ascending order.
func (g Groups[T]) Keys() []int {
	keys := make([]int, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Flatten concatenates all groups in key order.
func (g Groups[T]) Flatten() []T {
	out := make([]T, 0)
	for _, k := range g.Keys() {
		out = append(out, g[k]...)
	}
	return out
}

// First returns the smallest group id, or false when there are no groups.
func (g Groups[T]) First() (int, bool) {
	keys := g.Keys()
	if len(keys) == 0 {
		return 0, false
	}
	return keys[0], true
}

// BucketOf returns the group id for sequence number n.
func BucketOf(n, bucketSize int) int {
	return (n-1)/bucketSize + 1
}

// GroupByBucket splits scenes into fixed-size buckets by sequence number.
// The whole batch is rejected if any scene carries a non-positive number.
func GroupByBucket[T Sequenced](items []T, bucketSize int) (Groups[T], error) {
	if bucketSize < 1 {
		return nil, ErrInvalidBucketSize
	}
	for i, item := range items {
		if item.Sequence() < 1 {
			return nil, fmt.Errorf("item %d: %w (got %d)", i, ErrInvalidSequence, item.Sequence())
		}
	}
	return GroupByKey(items, func(item T) int {
		return BucketOf(item.Sequence(), bucketSize)
	})
}

// GroupByKey groups scenes under an explicit key such as episode_number.
// Scenes with equal sequence numbers keep their input order.
func GroupByKey[T Sequenced](items []T, key func(T) int) (Groups[T], error) {
	groups := make(Groups[T])
	for i, item := range items {
		if item.Sequence() < 1 {
			return nil, fmt.Errorf("item %d: %w (got %d)", i, ErrInvalidSequence, item.Sequence())
		}
		k := key(item)
		if k < 1 {
			return nil, fmt.Errorf("item %d: %w (got %d)", i, ErrInvalidGroupKey, k)
		}
		groups[k] = append(groups[k], item)
	}

	for _, list := range groups {
		sort.SliceStable(list, func(a, b int) bool {
			return list[a].Sequence() < list[b].Sequence()
		})
	}
	return groups, nil
}
