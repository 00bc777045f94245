// Package service holds the application logic between the UI and the
// repositories: input validation, normalization, and the cascade rules that
// keep stories, characters, relation edges and avatar files consistent.
package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"fabula/internal/avatar"
	"fabula/internal/domain"
	"fabula/internal/repository"
)

// StoryService orchestrates story lifecycle and story-level statistics.
type StoryService struct {
	stories repository.StoryRepository
	avatars *avatar.Store
	log     *zap.Logger
}

// NewStoryService creates a story service.
func NewStoryService(stories repository.StoryRepository, avatars *avatar.Store, log *zap.Logger) *StoryService {
	return &StoryService{
		stories: stories,
		avatars: avatars,
		log:     log,
	}
}

// CreateStory validates input and creates a story. A missing name or a name
// or description over the length limit is not an error: the result is nil
// and the store is left unchanged, which the UI shows as a no-op.
func (s *StoryService) CreateStory(ctx context.Context, name, desc string) (*domain.Story, error) {
	if !validStoryInput(name, desc) {
		s.log.Debug("rejected story input",
			zap.Int("name_len", utf8.RuneCountInString(name)),
			zap.Int("desc_len", utf8.RuneCountInString(desc)))
		return nil, nil
	}

	id, err := s.stories.CreateStory(ctx, name, desc)
	if err != nil {
		return nil, err
	}

	s.log.Info("created story", zap.Int64("story_id", id), zap.String("name", name))
	return &domain.Story{ID: id, Name: name, Desc: desc}, nil
}

// Stories lists every story.
func (s *StoryService) Stories(ctx context.Context) ([]domain.Story, error) {
	return s.stories.ListStories(ctx)
}

// Story fetches a story by id.
func (s *StoryService) Story(ctx context.Context, id int64) (*domain.Story, error) {
	return s.stories.GetStory(ctx, id)
}

// StoryName fetches only the name of a story.
func (s *StoryService) StoryName(ctx context.Context, id int64) (string, error) {
	return s.stories.StoryName(ctx, id)
}

// CountStories counts all stories.
func (s *StoryService) CountStories(ctx context.Context) (int, error) {
	return s.stories.CountStories(ctx)
}

// UpdateName renames a story. Invalid names are ignored as a no-op.
func (s *StoryService) UpdateName(ctx context.Context, id int64, name string) error {
	if name == "" || utf8.RuneCountInString(name) > domain.MaxStoryNameLen {
		s.log.Debug("rejected story rename", zap.Int64("story_id", id))
		return nil
	}
	return s.stories.UpdateStoryName(ctx, id, name)
}

// UpdateDesc changes a story's description. Overlong descriptions are
// ignored as a no-op.
func (s *StoryService) UpdateDesc(ctx context.Context, id int64, desc string) error {
	if utf8.RuneCountInString(desc) > domain.MaxStoryDescLen {
		s.log.Debug("rejected story description", zap.Int64("story_id", id))
		return nil
	}
	return s.stories.UpdateStoryDesc(ctx, id, desc)
}

// DeleteStory removes a story together with its characters, their relation
// edges, and their avatar files. Avatar files are deleted last and softly:
// a missing file must not strand the database delete.
func (s *StoryService) DeleteStory(ctx context.Context, id int64) error {
	avatars, err := s.stories.AvatarsOfStory(ctx, id)
	if err != nil {
		return fmt.Errorf("collect avatars: %w", err)
	}

	if err := s.stories.DeleteRelationsOfStory(ctx, id); err != nil {
		return err
	}
	if err := s.stories.DeleteCharactersOfStory(ctx, id); err != nil {
		return err
	}
	if err := s.stories.DeleteStory(ctx, id); err != nil {
		return err
	}

	s.avatars.DeleteMany(avatars)
	s.log.Info("deleted story", zap.Int64("story_id", id), zap.Int("avatars", len(avatars)))
	return nil
}

// ClearStories removes every story, character, relation edge and custom
// avatar file.
func (s *StoryService) ClearStories(ctx context.Context) error {
	if err := s.stories.ClearStories(ctx); err != nil {
		return err
	}
	if err := s.avatars.DeleteAll(); err != nil {
		return err
	}

	s.log.Info("cleared all stories")
	return nil
}

// MeanAge returns the mean age of a story's characters.
func (s *StoryService) MeanAge(ctx context.Context, storyID int64) (float64, error) {
	return s.stories.MeanAge(ctx, storyID)
}

// GenderBreakdown returns the gender distribution of a story's characters.
func (s *StoryService) GenderBreakdown(ctx context.Context, storyID int64) (domain.GenderBreakdown, error) {
	return s.stories.GenderBreakdown(ctx, storyID)
}

// MeanPhysique returns the mean height and weight over characters that have
// both recorded.
func (s *StoryService) MeanPhysique(ctx context.Context, storyID int64) (float64, float64, error) {
	return s.stories.MeanPhysique(ctx, storyID)
}

// CompletionPercent returns how complete the story's character sheets are.
func (s *StoryService) CompletionPercent(ctx context.Context, storyID int64) (float64, error) {
	return s.stories.CompletionPercent(ctx, storyID)
}

// Length limits count characters, not bytes, so multibyte names are not
// penalized.
func validStoryInput(name, desc string) bool {
	if name == "" || utf8.RuneCountInString(name) > domain.MaxStoryNameLen {
		return false
	}
	return utf8.RuneCountInString(desc) <= domain.MaxStoryDescLen
}
