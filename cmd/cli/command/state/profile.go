package state

import (
	"context"

	"golang.org/x/sync/errgroup"

	"webtoonhub/cmd/cli/dto"
)

// likedLookups caps the parallel webtoon fetches of the liked list
const likedLookups = 4

type ProfileAPI interface {
	MyWebtoons(ctx context.Context) ([]dto.Webtoon, error)
	MyInteractions(ctx context.Context, interactionType string) ([]dto.Interaction, error)
	GetWebtoon(ctx context.Context, id int64) (*dto.Webtoon, error)
}

// ProfileStats are summed over the user's own webtoons
type ProfileStats struct {
	Webtoons int
	Views    int64
	Likes    int64
}

type Profile struct {
	Webtoons []dto.Webtoon
	Stats    ProfileStats
	Liked    []dto.Webtoon
}

// LoadProfile gathers the user's webtoons and the webtoons they liked.
// Any failed request fails the whole page.
func LoadProfile(ctx context.Context, api ProfileAPI) (*Profile, error) {
	var (
		mine  []dto.Webtoon
		likes []dto.Interaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mine, err = api.MyWebtoons(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		likes, err = api.MyInteractions(gctx, dto.InteractionLike)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	liked := make([]dto.Webtoon, len(likes))
	lg, lctx := errgroup.WithContext(ctx)
	lg.SetLimit(likedLookups)
	for i, like := range likes {
		i, like := i, like
		lg.Go(func() error {
			w, err := api.GetWebtoon(lctx, like.WebtoonID)
			if err != nil {
				return err
			}
			liked[i] = *w
			return nil
		})
	}
	if err := lg.Wait(); err != nil {
		return nil, err
	}

	return &Profile{Webtoons: mine, Stats: SumStats(mine), Liked: liked}, nil
}

func SumStats(webtoons []dto.Webtoon) ProfileStats {
	stats := ProfileStats{Webtoons: len(webtoons)}
	for _, w := range webtoons {
		stats.Views += w.ViewCount
		stats.Likes += w.LikeCount
	}
	return stats
}
