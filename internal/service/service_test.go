package service

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fabula/internal/avatar"
	"fabula/internal/repository/sqlite"
)

// fixture wires both services onto a fresh in-memory store and a temp
// avatar directory, the way main does it.
type fixture struct {
	store      *sqlite.Store
	avatars    *avatar.Store
	stories    *StoryService
	characters *CharacterService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Init(context.Background()))

	avatars, err := avatar.NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	log := zap.NewNop()
	return &fixture{
		store:      store,
		avatars:    avatars,
		stories:    NewStoryService(store, avatars, log),
		characters: NewCharacterService(store, avatars, log),
	}
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(2, 2, color.RGBA{B: 0xff, A: 0xff})
	return img
}
