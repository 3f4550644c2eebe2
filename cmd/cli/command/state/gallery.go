package state

import (
	"context"
	"sync"

	"webtoonhub/cmd/cli/dto"
)

const DefaultGalleryPageSize = 5

type GalleryAPI interface {
	ListWebtoons(ctx context.Context, page, perPage int) (*dto.WebtoonList, error)
}

// Gallery is the infinite-scroll list: each LoadMore appends the next page
// until the server reports has_more=false.
type Gallery struct {
	api     GalleryAPI
	perPage int

	mu      sync.Mutex
	page    int
	items   []dto.Webtoon
	seen    map[int64]struct{}
	total   int64
	hasMore bool
}

func NewGallery(api GalleryAPI, perPage int) *Gallery {
	if perPage < 1 {
		perPage = DefaultGalleryPageSize
	}
	g := &Gallery{api: api, perPage: perPage}
	g.reset()
	return g
}

// LoadMore fetches the next page and returns only the newly added webtoons.
// A failed fetch leaves the list as it was, so the same page is asked for
// again next time. Once the end is reached it returns nothing.
func (g *Gallery) LoadMore(ctx context.Context) ([]dto.Webtoon, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.hasMore {
		return nil, nil
	}

	list, err := g.api.ListWebtoons(ctx, g.page+1, g.perPage)
	if err != nil {
		return nil, err
	}

	g.page++
	g.total = list.Total
	g.hasMore = list.HasMore

	// a webtoon created between two pages shifts the offsets by one
	added := make([]dto.Webtoon, 0, len(list.Webtoons))
	for _, w := range list.Webtoons {
		if _, dup := g.seen[w.ID]; dup {
			continue
		}
		g.seen[w.ID] = struct{}{}
		added = append(added, w)
	}
	g.items = append(g.items, added...)
	return added, nil
}

// Reset drops everything so the next LoadMore starts from page 1
func (g *Gallery) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
}

func (g *Gallery) reset() {
	g.page = 0
	g.items = nil
	g.seen = make(map[int64]struct{})
	g.total = 0
	g.hasMore = true
}

func (g *Gallery) Items() []dto.Webtoon {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]dto.Webtoon, len(g.items))
	copy(out, g.items)
	return out
}

func (g *Gallery) HasMore() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hasMore
}

func (g *Gallery) Total() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.total
}

func (g *Gallery) Page() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.page
}
