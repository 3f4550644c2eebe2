package state

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"webtoonhub/cmd/cli/dto"
	"webtoonhub/pkg/episode"
)

var ErrNoSuchEpisode = errors.New("no such episode")

type ViewerAPI interface {
	GetWebtoon(ctx context.Context, id int64) (*dto.Webtoon, error)
	ListScenes(ctx context.Context, webtoonID int64) ([]dto.Scene, error)
}

// Reader is a webtoon with its scenes split into episodes of
// episode.ViewerBucketSize scenes each.
type Reader struct {
	Webtoon  *dto.Webtoon
	Episodes episode.Groups[dto.Scene]
}

// LoadReader fetches the webtoon and its scenes in parallel; either failure
// fails the whole load.
func LoadReader(ctx context.Context, api ViewerAPI, webtoonID int64) (*Reader, error) {
	var (
		webtoon *dto.Webtoon
		scenes  []dto.Scene
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w, err := api.GetWebtoon(gctx, webtoonID)
		if err != nil {
			return fmt.Errorf("load webtoon %d: %w", webtoonID, err)
		}
		webtoon = w
		return nil
	})
	g.Go(func() error {
		s, err := api.ListScenes(gctx, webtoonID)
		if err != nil {
			return fmt.Errorf("load scenes of webtoon %d: %w", webtoonID, err)
		}
		scenes = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	episodes, err := episode.GroupByBucket(scenes, episode.ViewerBucketSize)
	if err != nil {
		return nil, err
	}
	return &Reader{Webtoon: webtoon, Episodes: episodes}, nil
}

func (r *Reader) EpisodeNumbers() []int {
	return r.Episodes.Keys()
}

// Episode returns the scenes of episode n in reading order
func (r *Reader) Episode(n int) ([]dto.Scene, error) {
	scenes, ok := r.Episodes[n]
	if !ok {
		return nil, fmt.Errorf("episode %d: %w", n, ErrNoSuchEpisode)
	}
	return scenes, nil
}

func (r *Reader) SceneCount() int {
	n := 0
	for _, scenes := range r.Episodes {
		n += len(scenes)
	}
	return n
}
