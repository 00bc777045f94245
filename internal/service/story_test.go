package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabula/internal/avatar"
	"fabula/internal/repository"
)

func TestCreateStory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	story, err := f.stories.CreateStory(ctx, "Dummy Story", "")
	require.NoError(t, err)
	require.NotNil(t, story)
	assert.NotZero(t, story.ID)
	assert.Equal(t, "Dummy Story", story.Name)

	got, err := f.stories.Story(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, story.Name, got.Name)
}

func TestCreateStoryValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		storyName string
		desc      string
	}{
		{"missing name", "", "has a description"},
		{"name too long", strings.Repeat("x", 101), ""},
		{"desc too long", "Valid", strings.Repeat("d", 101)},
		{"multibyte name too long", strings.Repeat("ä", 101), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			story, err := f.stories.CreateStory(ctx, tt.storyName, tt.desc)
			require.NoError(t, err)
			assert.Nil(t, story)
		})
	}

	// Nothing was written.
	count, err := f.stories.CountStories(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Boundary lengths are accepted.
	story, err := f.stories.CreateStory(ctx,
		strings.Repeat("n", 100), strings.Repeat("d", 100))
	require.NoError(t, err)
	assert.NotNil(t, story)

	// Limits count characters, not bytes: 100 two-byte runes fit.
	story, err = f.stories.CreateStory(ctx,
		strings.Repeat("ä", 100), strings.Repeat("ö", 100))
	require.NoError(t, err)
	assert.NotNil(t, story)
}

func TestUpdateStory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	story, err := f.stories.CreateStory(ctx, "Before", "old")
	require.NoError(t, err)

	require.NoError(t, f.stories.UpdateName(ctx, story.ID, "After"))
	require.NoError(t, f.stories.UpdateDesc(ctx, story.ID, "new"))

	// A 100-rune multibyte name is within the limit.
	long := strings.Repeat("ü", 100)
	require.NoError(t, f.stories.UpdateName(ctx, story.ID, long))
	got, err := f.stories.Story(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, long, got.Name)
	require.NoError(t, f.stories.UpdateName(ctx, story.ID, "After"))

	// Invalid updates are silent no-ops.
	require.NoError(t, f.stories.UpdateName(ctx, story.ID, ""))
	require.NoError(t, f.stories.UpdateName(ctx, story.ID, strings.Repeat("x", 101)))
	require.NoError(t, f.stories.UpdateName(ctx, story.ID, strings.Repeat("ä", 101)))
	require.NoError(t, f.stories.UpdateDesc(ctx, story.ID, strings.Repeat("d", 101)))
	require.NoError(t, f.stories.UpdateDesc(ctx, story.ID, strings.Repeat("ö", 101)))

	got, err = f.stories.Story(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, "new", got.Desc)
}

func TestDeleteStoryCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	story, err := f.stories.CreateStory(ctx, "Doomed", "")
	require.NoError(t, err)
	other, err := f.stories.CreateStory(ctx, "Survivor", "")
	require.NoError(t, err)

	hero, err := f.characters.CreateCharacter(ctx, story.ID, CharacterInput{Name: "Hero"})
	require.NoError(t, err)
	villain, err := f.characters.CreateCharacter(ctx, story.ID, CharacterInput{Name: "Villain"})
	require.NoError(t, err)
	bystander, err := f.characters.CreateCharacter(ctx, other.ID, CharacterInput{Name: "Bystander"})
	require.NoError(t, err)

	require.NoError(t, f.characters.UpdateImage(ctx, hero, testImage()))
	heroAvatar := hero.Stats.Picture
	require.True(t, f.avatars.IsStored(heroAvatar))

	require.NoError(t, f.characters.SetRelation(ctx, hero.ID, villain.ID, "enemy", false))
	require.NoError(t, f.characters.SetRelation(ctx, hero.ID, bystander.ID, "friend", false))

	require.NoError(t, f.stories.DeleteStory(ctx, story.ID))

	_, err = f.stories.Story(ctx, story.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	characters, err := f.characters.CharactersByStory(ctx, story.ID)
	require.NoError(t, err)
	assert.Empty(t, characters)

	// Cross-story edges into the deleted story are gone too.
	views, err := f.characters.CharacterRelations(ctx, bystander.ID)
	require.NoError(t, err)
	assert.Empty(t, views)

	// The avatar file is gone, the default image stays.
	assert.False(t, f.avatars.IsStored(heroAvatar))
	assert.True(t, f.avatars.IsStored(avatar.DefaultName))

	// The other story is untouched.
	survivors, err := f.characters.CharactersByStory(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, survivors, 1)
}

func TestClearStories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	story, err := f.stories.CreateStory(ctx, "Everything", "")
	require.NoError(t, err)
	ch, err := f.characters.CreateCharacter(ctx, story.ID, CharacterInput{Name: "Someone"})
	require.NoError(t, err)
	require.NoError(t, f.characters.UpdateImage(ctx, ch, testImage()))

	require.NoError(t, f.stories.ClearStories(ctx))

	stories, err := f.stories.Stories(ctx)
	require.NoError(t, err)
	assert.Empty(t, stories)

	count, err := f.stories.CountStories(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.False(t, f.avatars.IsStored(ch.Stats.Picture))
	assert.True(t, f.avatars.IsStored(avatar.DefaultName))

	// Idempotent.
	require.NoError(t, f.stories.ClearStories(ctx))
}

func TestStoryStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	story, err := f.stories.CreateStory(ctx, "Numbers", "")
	require.NoError(t, err)

	_, err = f.characters.CreateCharacter(ctx, story.ID, CharacterInput{
		Name: "A", Gender: "f", Age: "20", Height: "160", Weight: "50",
	})
	require.NoError(t, err)
	_, err = f.characters.CreateCharacter(ctx, story.ID, CharacterInput{
		Name: "B", Gender: "m", Age: "30",
	})
	require.NoError(t, err)

	mean, err := f.stories.MeanAge(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, mean)

	genders, err := f.stories.GenderBreakdown(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, genders.Female)
	assert.Equal(t, 50.0, genders.Male)
	assert.Equal(t, 0.0, genders.Unknown)

	height, weight, err := f.stories.MeanPhysique(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, 160.0, height)
	assert.Equal(t, 50.0, weight)
}
