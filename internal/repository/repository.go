package repository

import (
	"context"
	"errors"

	"fabula/internal/domain"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// StoryRepository defines data access for stories and story-scoped
// character statistics.
type StoryRepository interface {
	CreateStory(ctx context.Context, name, desc string) (int64, error)
	GetStory(ctx context.Context, id int64) (*domain.Story, error)
	StoryName(ctx context.Context, id int64) (string, error)
	ListStories(ctx context.Context) ([]domain.Story, error)
	CountStories(ctx context.Context) (int, error)
	UpdateStoryName(ctx context.Context, id int64, name string) error
	UpdateStoryDesc(ctx context.Context, id int64, desc string) error
	DeleteStory(ctx context.Context, id int64) error

	// Aggregates
	MeanAge(ctx context.Context, storyID int64) (float64, error)
	GenderBreakdown(ctx context.Context, storyID int64) (domain.GenderBreakdown, error)
	MeanPhysique(ctx context.Context, storyID int64) (meanHeight, meanWeight float64, err error)
	CompletionPercent(ctx context.Context, storyID int64) (float64, error)

	// Cascade helpers
	AvatarsOfStory(ctx context.Context, storyID int64) ([]string, error)
	DeleteCharactersOfStory(ctx context.Context, storyID int64) error
	DeleteRelationsOfStory(ctx context.Context, storyID int64) error
	ClearStories(ctx context.Context) error
}

// CharacterRepository defines data access for characters, relationship
// edges, and relation-type lookup.
type CharacterRepository interface {
	CreateCharacter(ctx context.Context, storyID int64, stats domain.CharacterStats) (int64, error)
	UpdateCharacter(ctx context.Context, id int64, stats domain.CharacterStats) error
	UpdatePicture(ctx context.Context, id int64, picture string) error
	CharactersByStory(ctx context.Context, storyID int64) ([]domain.Character, error)
	DeleteCharacter(ctx context.Context, id int64) error
	DeleteCharacterRelations(ctx context.Context, id int64) error

	Relations(ctx context.Context) ([]domain.Relation, error)
	RelationIDFromName(ctx context.Context, name string) (int64, error)
	CharacterRelations(ctx context.Context, charID int64) ([]domain.RelationView, error)
	SetRelation(ctx context.Context, char1ID, char2ID, relationID int64, former bool) error
	DeleteRelation(ctx context.Context, char1ID, char2ID, relationID int64, twoSided bool, counterpartID int64) error

	ClearCharacters(ctx context.Context) error
	ClearRelations(ctx context.Context) error
}
