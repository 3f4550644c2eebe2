package state

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webtoonhub/cmd/cli/dto"
	"webtoonhub/internal/logging"
	"webtoonhub/pkg/episode"
)

type orderUpdate struct {
	id    int64
	order int
}

type fakeEditorAPI struct {
	owner   bool
	scenes  []dto.EpisodeScene
	nextID  int64
	failIDs map[int64]bool

	updates []orderUpdate
	created []dto.CreateEpisodeSceneRequest
	deleted []int64
}

func (f *fakeEditorAPI) GetWebtoon(ctx context.Context, id int64) (*dto.Webtoon, error) {
	return &dto.Webtoon{ID: id, Title: "mine", IsOwner: f.owner}, nil
}

func (f *fakeEditorAPI) ListEpisodeScenes(ctx context.Context, webtoonID int64) ([]dto.EpisodeScene, error) {
	return append([]dto.EpisodeScene(nil), f.scenes...), nil
}

func (f *fakeEditorAPI) CreateEpisodeScene(ctx context.Context, req *dto.CreateEpisodeSceneRequest) (*dto.EpisodeScene, error) {
	f.created = append(f.created, *req)
	f.nextID++
	return &dto.EpisodeScene{
		ID:            f.nextID,
		WebtoonID:     req.WebtoonID,
		EpisodeNumber: req.EpisodeNumber,
		SceneOrder:    req.SceneOrder,
		Title:         req.Title,
	}, nil
}

func (f *fakeEditorAPI) UpdateEpisodeScene(ctx context.Context, id int64, req *dto.UpdateEpisodeSceneRequest) (*dto.EpisodeScene, error) {
	if req.SceneOrder != nil {
		f.updates = append(f.updates, orderUpdate{id: id, order: *req.SceneOrder})
	}
	if f.failIDs[id] {
		return nil, errors.New("update failed")
	}
	for _, s := range f.scenes {
		if s.ID == id {
			if req.Title != nil {
				s.Title = req.Title
			}
			if req.SceneOrder != nil {
				s.SceneOrder = *req.SceneOrder
			}
			return &s, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeEditorAPI) DeleteEpisodeScene(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeEditorAPI) UploadEpisodeImage(ctx context.Context, id int64, filename string, image io.Reader) (*dto.ImageUploadResponse, error) {
	if _, err := io.ReadAll(image); err != nil {
		return nil, err
	}
	return &dto.ImageUploadResponse{ImageURL: "/static/uploads/" + filename}, nil
}

// four scenes A-D in episode 1 and one in episode 2
func editorFixture() *fakeEditorAPI {
	return &fakeEditorAPI{
		owner:  true,
		nextID: 100,
		scenes: []dto.EpisodeScene{
			{ID: 1, WebtoonID: 9, EpisodeNumber: 1, SceneOrder: 1, Title: strPtr("A")},
			{ID: 2, WebtoonID: 9, EpisodeNumber: 1, SceneOrder: 2, Title: strPtr("B")},
			{ID: 3, WebtoonID: 9, EpisodeNumber: 1, SceneOrder: 3, Title: strPtr("C")},
			{ID: 4, WebtoonID: 9, EpisodeNumber: 1, SceneOrder: 4, Title: strPtr("D")},
			{ID: 5, WebtoonID: 9, EpisodeNumber: 2, SceneOrder: 1, Title: strPtr("E")},
		},
	}
}

func strPtr(s string) *string { return &s }

func titles(scenes []dto.EpisodeScene) []string {
	out := make([]string, 0, len(scenes))
	for _, s := range scenes {
		out = append(out, *s.Title)
	}
	return out
}

func openTestEditor(t *testing.T, api *fakeEditorAPI) *Editor {
	t.Helper()
	ed, err := OpenEditor(context.Background(), api, 9, logging.Discard())
	require.NoError(t, err)
	return ed
}

func TestOpenEditor_OwnerOnly(t *testing.T) {
	api := editorFixture()
	api.owner = false
	_, err := OpenEditor(context.Background(), api, 9, nil)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestEditor_GroupsByEpisode(t *testing.T) {
	ed := openTestEditor(t, editorFixture())

	assert.Equal(t, []int{1, 2, 3, 4}, ed.EpisodeNumbers())
	assert.Equal(t, []string{"A", "B", "C", "D"}, titles(ed.Episode(1)))
	assert.Equal(t, []string{"E"}, titles(ed.Episode(2)))
	assert.Empty(t, ed.Episode(3))
}

func TestEditor_ExtraEpisodeTab(t *testing.T) {
	api := editorFixture()
	api.scenes = append(api.scenes, dto.EpisodeScene{ID: 6, EpisodeNumber: 6, SceneOrder: 1, Title: strPtr("F")})
	ed := openTestEditor(t, api)

	assert.Equal(t, []int{1, 2, 3, 4, 6}, ed.EpisodeNumbers())
}

func TestEditor_MoveLastToFirst(t *testing.T) {
	api := editorFixture()
	ed := openTestEditor(t, api)

	result, err := ed.MoveScene(context.Background(), 1, 3, 0)
	require.NoError(t, err)
	assert.True(t, result.OK())

	scenes := ed.Episode(1)
	assert.Equal(t, []string{"D", "A", "B", "C"}, titles(scenes))
	for i, s := range scenes {
		assert.Equal(t, i+1, s.SceneOrder)
	}
	// every scene moved, so every scene is pushed, in list order
	assert.Equal(t, []orderUpdate{{4, 1}, {1, 2}, {2, 3}, {3, 4}}, api.updates)
	assert.Empty(t, ed.Unsynced())
}

func TestEditor_MoveSkipsUnchanged(t *testing.T) {
	api := editorFixture()
	ed := openTestEditor(t, api)

	_, err := ed.MoveScene(context.Background(), 1, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "C", "B", "D"}, titles(ed.Episode(1)))
	assert.Equal(t, []orderUpdate{{3, 2}, {2, 3}}, api.updates)
}

func TestEditor_MoveOutOfRange(t *testing.T) {
	api := editorFixture()
	ed := openTestEditor(t, api)

	_, err := ed.MoveScene(context.Background(), 1, 0, 4)
	assert.ErrorIs(t, err, episode.ErrIndexOutOfRange)
	assert.Equal(t, []string{"A", "B", "C", "D"}, titles(ed.Episode(1)))
	assert.Empty(t, api.updates)
}

func TestEditor_PartialFailureContinuesAndRetries(t *testing.T) {
	api := editorFixture()
	api.failIDs = map[int64]bool{1: true}
	ed := openTestEditor(t, api)

	result, err := ed.MoveScene(context.Background(), 1, 3, 0)
	require.Error(t, err)
	// the failure on scene 1 did not stop scenes 2 and 3
	assert.Equal(t, []orderUpdate{{4, 1}, {1, 2}, {2, 3}, {3, 4}}, api.updates)
	assert.Len(t, result.Succeeded, 3)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, int64(1), result.Failures[0].Item.ID)

	// local order stays as the author arranged it
	assert.Equal(t, []string{"D", "A", "B", "C"}, titles(ed.Episode(1)))
	require.Len(t, ed.Unsynced(), 1)
	assert.Equal(t, 2, ed.Unsynced()[0].SceneOrder)

	api.failIDs = nil
	api.updates = nil
	result, err = ed.RetryOrder(context.Background())
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, []orderUpdate{{1, 2}}, api.updates)
	assert.Empty(t, ed.Unsynced())

	_, err = ed.RetryOrder(context.Background())
	assert.ErrorIs(t, err, ErrNothingToResend)
}

func TestEditor_AddSceneAppends(t *testing.T) {
	api := editorFixture()
	ed := openTestEditor(t, api)

	scene, err := ed.AddScene(context.Background(), 2, SceneFields{Title: strPtr("E2")})
	require.NoError(t, err)

	require.Len(t, api.created, 1)
	assert.Equal(t, int64(9), api.created[0].WebtoonID)
	assert.Equal(t, 2, api.created[0].SceneOrder)
	assert.Equal(t, []string{"E", "E2"}, titles(ed.Episode(2)))
	assert.Equal(t, int64(101), scene.ID)

	_, err = ed.AddScene(context.Background(), 3, SceneFields{Title: strPtr("first")})
	require.NoError(t, err)
	assert.Equal(t, 1, api.created[1].SceneOrder)

	_, err = ed.AddScene(context.Background(), episode.EditorEpisodeCount+1, SceneFields{})
	assert.ErrorIs(t, err, ErrInvalidEpisode)
	_, err = ed.AddScene(context.Background(), 0, SceneFields{})
	assert.ErrorIs(t, err, ErrInvalidEpisode)
}

func TestEditor_EditDeleteAndImage(t *testing.T) {
	api := editorFixture()
	ed := openTestEditor(t, api)

	_, err := ed.EditScene(context.Background(), 2, SceneFields{Title: strPtr("B!")})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B!", "C", "D"}, titles(ed.Episode(1)))

	url, err := ed.AttachImage(context.Background(), 3, "c.png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/c.png", url)
	assert.Equal(t, url, *ed.Episode(1)[2].ImageURL)

	require.NoError(t, ed.DeleteScene(context.Background(), 1))
	assert.Equal(t, []int64{1}, api.deleted)
	assert.Equal(t, []string{"B!", "C", "D"}, titles(ed.Episode(1)))

	assert.ErrorIs(t, ed.DeleteScene(context.Background(), 999), ErrSceneNotInList)
	_, err = ed.EditScene(context.Background(), 999, SceneFields{})
	assert.ErrorIs(t, err, ErrSceneNotInList)
}
