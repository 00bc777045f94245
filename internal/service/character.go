package service

import (
	"context"
	"image"

	"go.uber.org/zap"

	"fabula/internal/avatar"
	"fabula/internal/domain"
	"fabula/internal/format"
	"fabula/internal/repository"
)

// CharacterInput is the raw character form input as the user typed it.
// Every field is free text; normalization happens in the service.
type CharacterInput struct {
	Name        string
	Gender      string
	Day         string
	Month       string
	Year        string
	Age         string
	Height      string
	Weight      string
	Appearance  string
	Personality string
	History     string
	Trivia      string
	Picture     string // avatar name assigned by the avatar store
}

func (in CharacterInput) empty() bool {
	return in.Name == "" && in.Gender == "" &&
		in.Day == "" && in.Month == "" && in.Year == "" &&
		in.Age == "" && in.Height == "" && in.Weight == "" &&
		in.Appearance == "" && in.Personality == "" && in.History == "" &&
		in.Trivia == "" && in.Picture == ""
}

// stats normalizes the raw input into stored values.
func (in CharacterInput) stats() domain.CharacterStats {
	name := in.Name
	if name == "" {
		name = "Unknown"
	}

	return domain.CharacterStats{
		Name:        name,
		Gender:      format.ParseGender(in.Gender),
		Birthday:    format.ParseBirthday(in.Day, in.Month, in.Year),
		Age:         format.ParseNumber(in.Age),
		Height:      format.ParseNumber(in.Height),
		Weight:      format.ParseNumber(in.Weight),
		Appearance:  in.Appearance,
		Personality: in.Personality,
		History:     in.History,
		Picture:     in.Picture,
		Trivia:      in.Trivia,
	}
}

// CharacterService orchestrates character lifecycle, avatars and
// relationship propagation.
type CharacterService struct {
	characters repository.CharacterRepository
	avatars    *avatar.Store
	log        *zap.Logger
}

// NewCharacterService creates a character service.
func NewCharacterService(characters repository.CharacterRepository, avatars *avatar.Store, log *zap.Logger) *CharacterService {
	return &CharacterService{
		characters: characters,
		avatars:    avatars,
		log:        log,
	}
}

// CreateCharacter normalizes the input and creates a character in a story.
// A completely blank input is rejected: the result is nil and the store is
// left unchanged.
func (s *CharacterService) CreateCharacter(ctx context.Context, storyID int64, in CharacterInput) (*domain.Character, error) {
	if in.empty() {
		s.log.Debug("rejected blank character input", zap.Int64("story_id", storyID))
		return nil, nil
	}

	stats := in.stats()
	id, err := s.characters.CreateCharacter(ctx, storyID, stats)
	if err != nil {
		return nil, err
	}

	s.log.Info("created character",
		zap.Int64("char_id", id), zap.Int64("story_id", storyID),
		zap.String("name", stats.Name))
	return &domain.Character{ID: id, StoryID: storyID, Stats: stats}, nil
}

// UpdateCharacter normalizes the input and rewrites the character's
// editable stats. The picture is untouched; use UpdateImage.
func (s *CharacterService) UpdateCharacter(ctx context.Context, charID int64, in CharacterInput) error {
	return s.characters.UpdateCharacter(ctx, charID, in.stats())
}

// UpdateImage stores a new avatar for the character, then deletes the old
// file. A failed save aborts the update and keeps the old avatar in place.
func (s *CharacterService) UpdateImage(ctx context.Context, ch *domain.Character, img image.Image) error {
	old := ch.Stats.Picture

	name, err := s.avatars.Save(img)
	if err != nil {
		return err
	}

	if err := s.characters.UpdatePicture(ctx, ch.ID, name); err != nil {
		s.avatars.DeleteMany([]string{name})
		return err
	}

	ch.Stats.Picture = name
	if err := s.avatars.Delete(old); err != nil {
		s.log.Warn("failed to delete replaced avatar",
			zap.String("name", old), zap.Error(err))
	}
	return nil
}

// CharactersByStory lists a story's characters, empty when it has none.
func (s *CharacterService) CharactersByStory(ctx context.Context, storyID int64) ([]domain.Character, error) {
	return s.characters.CharactersByStory(ctx, storyID)
}

// ImagePath resolves the character's avatar (or the shared default) to a
// file path for display.
func (s *CharacterService) ImagePath(ch *domain.Character) string {
	return s.avatars.Path(ch.Stats.Picture)
}

// Relations lists all relation types.
func (s *CharacterService) Relations(ctx context.Context) ([]domain.Relation, error) {
	return s.characters.Relations(ctx)
}

// RelationNames lists all relation type names, for selection lists.
func (s *CharacterService) RelationNames(ctx context.Context) ([]string, error) {
	relations, err := s.characters.Relations(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(relations))
	for i, r := range relations {
		names[i] = r.Name
	}
	return names, nil
}

// CharacterRelations lists a character's relationships, relation names
// rendered by the other character's gender.
func (s *CharacterService) CharacterRelations(ctx context.Context, charID int64) ([]domain.RelationView, error) {
	return s.characters.CharacterRelations(ctx, charID)
}

// SetRelation records "char2 is <relation> to char1" by relation name. A
// two-sided relation type also records the mirrored counterpart edge.
func (s *CharacterService) SetRelation(ctx context.Context, char1ID, char2ID int64, relation string, former bool) error {
	relationID, err := s.characters.RelationIDFromName(ctx, relation)
	if err != nil {
		return err
	}
	return s.characters.SetRelation(ctx, char1ID, char2ID, relationID, former)
}

// DeleteRelation removes a relationship shown in a character's relation
// list, both directions when the relation type is two-sided.
func (s *CharacterService) DeleteRelation(ctx context.Context, charID int64, view domain.RelationView) error {
	return s.characters.DeleteRelation(ctx, charID, view.OtherID,
		view.RelationID, view.TwoSided, view.CounterpartID)
}

// DeleteCharacter removes a character, every relation edge touching it, and
// its avatar file.
func (s *CharacterService) DeleteCharacter(ctx context.Context, ch *domain.Character) error {
	if err := s.characters.DeleteCharacter(ctx, ch.ID); err != nil {
		return err
	}
	if err := s.characters.DeleteCharacterRelations(ctx, ch.ID); err != nil {
		return err
	}
	if err := s.avatars.Delete(ch.Stats.Picture); err != nil {
		s.log.Warn("failed to delete avatar of removed character",
			zap.Int64("char_id", ch.ID), zap.Error(err))
	}

	s.log.Info("deleted character", zap.Int64("char_id", ch.ID))
	return nil
}

// ClearCharacters removes every character, relation edge, and custom avatar.
func (s *CharacterService) ClearCharacters(ctx context.Context) error {
	if err := s.characters.ClearCharacters(ctx); err != nil {
		return err
	}
	if err := s.characters.ClearRelations(ctx); err != nil {
		return err
	}
	return s.avatars.DeleteAll()
}
