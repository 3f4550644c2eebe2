package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"webtoonhub/cmd/cli/dto"
	"webtoonhub/internal/logging"
	"webtoonhub/pkg/episode"
)

var (
	ErrNotOwner        = errors.New("only the author can edit this webtoon")
	ErrInvalidEpisode  = fmt.Errorf("episode must be between 1 and %d", episode.EditorEpisodeCount)
	ErrSceneNotInList  = errors.New("scene is not part of this webtoon")
	ErrNothingToResend = errors.New("no failed order updates to retry")
)

type EditorAPI interface {
	GetWebtoon(ctx context.Context, id int64) (*dto.Webtoon, error)
	ListEpisodeScenes(ctx context.Context, webtoonID int64) ([]dto.EpisodeScene, error)
	CreateEpisodeScene(ctx context.Context, request *dto.CreateEpisodeSceneRequest) (*dto.EpisodeScene, error)
	UpdateEpisodeScene(ctx context.Context, id int64, request *dto.UpdateEpisodeSceneRequest) (*dto.EpisodeScene, error)
	DeleteEpisodeScene(ctx context.Context, id int64) error
	UploadEpisodeImage(ctx context.Context, id int64, filename string, image io.Reader) (*dto.ImageUploadResponse, error)
}

// SceneFields are the editable text parts of a scene
type SceneFields struct {
	Title       *string
	Dialogue    *string
	Description *string
	Narration   *string
	PanelLayout *string
}

// Editor is the author's view of one webtoon's episodes. The local order is
// authoritative; order updates that did not land are kept for RetryOrder.
type Editor struct {
	api     EditorAPI
	logger  *slog.Logger
	webtoon *dto.Webtoon

	mu       sync.Mutex
	episodes episode.Groups[dto.EpisodeScene]
	unsynced []dto.EpisodeScene
}

// OpenEditor loads the webtoon and refuses anyone but its author
func OpenEditor(ctx context.Context, api EditorAPI, webtoonID int64, logger *slog.Logger) (*Editor, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	webtoon, err := api.GetWebtoon(ctx, webtoonID)
	if err != nil {
		return nil, err
	}
	if !webtoon.IsOwner {
		return nil, ErrNotOwner
	}

	e := &Editor{api: api, logger: logger, webtoon: webtoon}
	if err := e.Reload(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Editor) Webtoon() *dto.Webtoon {
	return e.webtoon
}

// Reload replaces the local scenes with the server's
func (e *Editor) Reload(ctx context.Context) error {
	scenes, err := e.api.ListEpisodeScenes(ctx, e.webtoon.ID)
	if err != nil {
		return err
	}
	groups, err := episode.GroupByKey(scenes, func(s dto.EpisodeScene) int { return s.EpisodeNumber })
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.episodes = groups
	e.mu.Unlock()
	return nil
}

// EpisodeNumbers lists the editor tabs: always 1..EditorEpisodeCount, plus any
// higher episode that already has scenes.
func (e *Editor) EpisodeNumbers() []int {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]int, 0, episode.EditorEpisodeCount)
	for n := 1; n <= episode.EditorEpisodeCount; n++ {
		out = append(out, n)
	}
	for _, k := range e.episodes.Keys() {
		if k > episode.EditorEpisodeCount {
			out = append(out, k)
		}
	}
	return out
}

// Episode returns a copy of one episode's scenes in order
func (e *Editor) Episode(n int) []dto.EpisodeScene {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]dto.EpisodeScene, len(e.episodes[n]))
	copy(out, e.episodes[n])
	return out
}

// AddScene appends a scene at the end of an episode
func (e *Editor) AddScene(ctx context.Context, episodeNumber int, fields SceneFields) (*dto.EpisodeScene, error) {
	if episodeNumber < 1 || episodeNumber > episode.EditorEpisodeCount {
		return nil, ErrInvalidEpisode
	}

	e.mu.Lock()
	order := len(e.episodes[episodeNumber]) + 1
	e.mu.Unlock()

	created, err := e.api.CreateEpisodeScene(ctx, &dto.CreateEpisodeSceneRequest{
		WebtoonID:     e.webtoon.ID,
		EpisodeNumber: episodeNumber,
		SceneOrder:    order,
		Title:         fields.Title,
		Dialogue:      fields.Dialogue,
		Description:   fields.Description,
		Narration:     fields.Narration,
		PanelLayout:   fields.PanelLayout,
	})
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.episodes[created.EpisodeNumber] = append(e.episodes[created.EpisodeNumber], *created)
	e.mu.Unlock()
	return created, nil
}

// EditScene sends only the fields that are set
func (e *Editor) EditScene(ctx context.Context, sceneID int64, fields SceneFields) (*dto.EpisodeScene, error) {
	if _, _, ok := e.locate(sceneID); !ok {
		return nil, ErrSceneNotInList
	}
	updated, err := e.api.UpdateEpisodeScene(ctx, sceneID, &dto.UpdateEpisodeSceneRequest{
		Title:       fields.Title,
		Dialogue:    fields.Dialogue,
		Description: fields.Description,
		Narration:   fields.Narration,
		PanelLayout: fields.PanelLayout,
	})
	if err != nil {
		return nil, err
	}
	e.replace(*updated)
	return updated, nil
}

// DeleteScene removes a scene; the remaining scenes keep their numbers
func (e *Editor) DeleteScene(ctx context.Context, sceneID int64) error {
	ep, idx, ok := e.locate(sceneID)
	if !ok {
		return ErrSceneNotInList
	}
	if err := e.api.DeleteEpisodeScene(ctx, sceneID); err != nil {
		return err
	}

	e.mu.Lock()
	list := e.episodes[ep]
	if idx < len(list) && list[idx].ID == sceneID {
		e.episodes[ep] = append(list[:idx:idx], list[idx+1:]...)
	}
	e.mu.Unlock()
	return nil
}

// AttachImage uploads an image for a scene and records its new URL
func (e *Editor) AttachImage(ctx context.Context, sceneID int64, filename string, image io.Reader) (string, error) {
	if _, _, ok := e.locate(sceneID); !ok {
		return "", ErrSceneNotInList
	}
	resp, err := e.api.UploadEpisodeImage(ctx, sceneID, filename, image)
	if err != nil {
		return "", err
	}

	e.mu.Lock()
	for ep, list := range e.episodes {
		for i := range list {
			if list[i].ID == sceneID {
				url := resp.ImageURL
				e.episodes[ep][i].ImageURL = &url
			}
		}
	}
	e.mu.Unlock()
	return resp.ImageURL, nil
}

// MoveScene reorders one episode locally, then pushes every scene whose
// scene_order changed, one request at a time. Failed pushes do not stop the
// rest; they are kept for RetryOrder and reported as one error.
func (e *Editor) MoveScene(ctx context.Context, episodeNumber, from, to int) (*episode.PersistResult[dto.EpisodeScene], error) {
	e.mu.Lock()
	before := e.episodes[episodeNumber]
	after, err := episode.Move(before, from, to)
	if err != nil {
		e.mu.Unlock()
		return nil, err
	}
	e.episodes[episodeNumber] = after
	e.mu.Unlock()

	changed := episode.Changed(before, after, sceneID)
	return e.persist(ctx, changed)
}

// RetryOrder pushes the scenes whose order update failed last time
func (e *Editor) RetryOrder(ctx context.Context) (*episode.PersistResult[dto.EpisodeScene], error) {
	e.mu.Lock()
	pending := e.unsynced
	e.mu.Unlock()
	if len(pending) == 0 {
		return nil, ErrNothingToResend
	}
	return e.persist(ctx, pending)
}

// Unsynced lists scenes whose local order the server has not accepted yet
func (e *Editor) Unsynced() []dto.EpisodeScene {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]dto.EpisodeScene, len(e.unsynced))
	copy(out, e.unsynced)
	return out
}

func (e *Editor) persist(ctx context.Context, scenes []dto.EpisodeScene) (*episode.PersistResult[dto.EpisodeScene], error) {
	result, err := episode.PersistOrder(ctx, scenes, func(ctx context.Context, s dto.EpisodeScene) error {
		order := s.SceneOrder
		_, err := e.api.UpdateEpisodeScene(ctx, s.ID, &dto.UpdateEpisodeSceneRequest{SceneOrder: &order})
		return err
	})

	e.mu.Lock()
	e.unsynced = mergeUnsynced(e.unsynced, result)
	e.mu.Unlock()

	if err != nil {
		e.logger.Debug("scene order partly saved",
			"webtoon_id", e.webtoon.ID,
			"saved", len(result.Succeeded),
			"failed", len(result.Failures),
			"error", err)
	}
	return result, err
}

// mergeUnsynced drops scenes that just landed and adds the ones that failed,
// keeping the latest order for each scene.
func mergeUnsynced(prev []dto.EpisodeScene, result *episode.PersistResult[dto.EpisodeScene]) []dto.EpisodeScene {
	landed := make(map[int64]struct{}, len(result.Succeeded))
	for _, s := range result.Succeeded {
		landed[s.ID] = struct{}{}
	}
	failed := result.Failed()
	retry := make(map[int64]struct{}, len(failed))
	for _, s := range failed {
		retry[s.ID] = struct{}{}
	}

	out := make([]dto.EpisodeScene, 0, len(prev)+len(failed))
	for _, s := range prev {
		if _, ok := landed[s.ID]; ok {
			continue
		}
		if _, ok := retry[s.ID]; ok {
			continue
		}
		out = append(out, s)
	}
	return append(out, failed...)
}

func (e *Editor) locate(id int64) (int, int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for ep, list := range e.episodes {
		for i, s := range list {
			if s.ID == id {
				return ep, i, true
			}
		}
	}
	return 0, 0, false
}

func (e *Editor) replace(s dto.EpisodeScene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for ep, list := range e.episodes {
		for i := range list {
			if list[i].ID == s.ID {
				e.episodes[ep][i] = s
				return
			}
		}
	}
}

func sceneID(s dto.EpisodeScene) int64 { return s.ID }
