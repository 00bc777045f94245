package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fabula/internal/domain"
	"fabula/internal/repository"
)

// CreateStory inserts a story and returns its id.
func (s *Store) CreateStory(ctx context.Context, name, desc string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO Stories(name, desc) VALUES(?, ?)`,
		name, stringToNull(desc))
	if err != nil {
		return 0, fmt.Errorf("create story: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create story id: %w", err)
	}
	return id, nil
}

// GetStory retrieves a story by id.
func (s *Store) GetStory(ctx context.Context, id int64) (*domain.Story, error) {
	var (
		story domain.Story
		desc  sql.NullString
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT story_id, name, desc FROM Stories WHERE story_id = ?`, id).
		Scan(&story.ID, &story.Name, &desc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("story %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get story: %w", err)
	}

	story.Desc = nullToString(desc)
	return &story, nil
}

// StoryName retrieves only the name of a story.
func (s *Store) StoryName(ctx context.Context, id int64) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM Stories WHERE story_id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("story %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get story name: %w", err)
	}
	return name, nil
}

// ListStories returns all stories.
func (s *Store) ListStories(ctx context.Context) ([]domain.Story, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT story_id, name, desc FROM Stories ORDER BY story_id`)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	defer rows.Close()

	stories := []domain.Story{}
	for rows.Next() {
		var (
			story domain.Story
			desc  sql.NullString
		)
		if err := rows.Scan(&story.ID, &story.Name, &desc); err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		story.Desc = nullToString(desc)
		stories = append(stories, story)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stories: %w", err)
	}
	return stories, nil
}

// CountStories counts all stories.
func (s *Store) CountStories(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Stories`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count stories: %w", err)
	}
	return count, nil
}

// UpdateStoryName updates a story's name.
func (s *Store) UpdateStoryName(ctx context.Context, id int64, name string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE Stories SET name = ? WHERE story_id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("update story name: %w", err)
	}
	return nil
}

// UpdateStoryDesc updates a story's description.
func (s *Store) UpdateStoryDesc(ctx context.Context, id int64, desc string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE Stories SET desc = ? WHERE story_id = ?`, stringToNull(desc), id)
	if err != nil {
		return fmt.Errorf("update story desc: %w", err)
	}
	return nil
}

// DeleteStory removes the story row. Characters and relation edges go with
// it through the foreign-key cascade; callers that also own avatar files
// must collect them beforehand.
func (s *Store) DeleteStory(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM Stories WHERE story_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	return nil
}

// MeanAge returns the mean of the known character ages in a story, rounded
// to one decimal. Stories without aged characters yield 0.
func (s *Store) MeanAge(ctx context.Context, storyID int64) (float64, error) {
	var mean sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(age) * 1.0 / NULLIF(COUNT(age), 0)
		FROM Characters
		WHERE story_id = ? AND age IS NOT NULL
	`, storyID).Scan(&mean)
	if err != nil {
		return 0, fmt.Errorf("mean age: %w", err)
	}
	return round1(nullToFloat(mean)), nil
}

// GenderBreakdown returns the percentage of female, male and unknown
// characters in a story. All zero when the story has no characters.
func (s *Store) GenderBreakdown(ctx context.Context, storyID int64) (domain.GenderBreakdown, error) {
	var female, male, unknown sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT
			SUM(CASE WHEN gender = 0 THEN 1 ELSE 0 END) * 100.0 / COUNT(*),
			SUM(CASE WHEN gender = 1 THEN 1 ELSE 0 END) * 100.0 / COUNT(*),
			SUM(CASE WHEN gender = 2 THEN 1 ELSE 0 END) * 100.0 / COUNT(*)
		FROM Characters
		WHERE story_id = ?
	`, storyID).Scan(&female, &male, &unknown)
	if err != nil {
		return domain.GenderBreakdown{}, fmt.Errorf("gender breakdown: %w", err)
	}

	return domain.GenderBreakdown{
		Female:  nullToFloat(female),
		Male:    nullToFloat(male),
		Unknown: nullToFloat(unknown),
	}, nil
}

// MeanPhysique returns the mean height and weight over the characters that
// have both recorded.
func (s *Store) MeanPhysique(ctx context.Context, storyID int64) (float64, float64, error) {
	var height, weight sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT
			SUM(height) * 1.0 / NULLIF(COUNT(height), 0),
			SUM(weight) * 1.0 / NULLIF(COUNT(weight), 0)
		FROM Characters
		WHERE story_id = ? AND height IS NOT NULL AND weight IS NOT NULL
	`, storyID).Scan(&height, &weight)
	if err != nil {
		return 0, 0, fmt.Errorf("mean physique: %w", err)
	}
	return nullToFloat(height), nullToFloat(weight), nil
}

// CompletionPercent returns how many of the eight optional character fields
// (birthday, age, height, weight, appearance, personality, history, picture)
// are filled in, averaged across the story's characters, rounded to one
// decimal. Stories without characters yield 0.
func (s *Store) CompletionPercent(ctx context.Context, storyID int64) (float64, error) {
	var percent sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(
				(SELECT COUNT(*) FROM Characters WHERE birthday IS NOT NULL AND story_id = ?1) +
				(SELECT COUNT(*) FROM Characters WHERE age IS NOT NULL AND story_id = ?1) +
				(SELECT COUNT(*) FROM Characters WHERE height IS NOT NULL AND story_id = ?1) +
				(SELECT COUNT(*) FROM Characters WHERE weight IS NOT NULL AND story_id = ?1) +
				(SELECT COUNT(*) FROM Characters WHERE appearance IS NOT NULL AND story_id = ?1) +
				(SELECT COUNT(*) FROM Characters WHERE personality IS NOT NULL AND story_id = ?1) +
				(SELECT COUNT(*) FROM Characters WHERE history IS NOT NULL AND story_id = ?1) +
				(SELECT COUNT(*) FROM Characters WHERE picture IS NOT NULL AND story_id = ?1)
			) * 100.0 / NULLIF(COUNT(*) * 8, 0)
		FROM Characters
		WHERE story_id = ?1
	`, storyID).Scan(&percent)
	if err != nil {
		return 0, fmt.Errorf("completion percent: %w", err)
	}
	return round1(nullToFloat(percent)), nil
}

// AvatarsOfStory lists the custom avatar names referenced by a story's
// characters.
func (s *Store) AvatarsOfStory(ctx context.Context, storyID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT picture FROM Characters
		WHERE story_id = ? AND picture IS NOT NULL
	`, storyID)
	if err != nil {
		return nil, fmt.Errorf("avatars of story: %w", err)
	}
	defer rows.Close()

	var avatars []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan avatar name: %w", err)
		}
		avatars = append(avatars, name)
	}
	return avatars, rows.Err()
}

// DeleteCharactersOfStory removes every character owned by a story.
func (s *Store) DeleteCharactersOfStory(ctx context.Context, storyID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM Characters WHERE story_id = ?`, storyID)
	if err != nil {
		return fmt.Errorf("delete characters of story: %w", err)
	}
	return nil
}

// DeleteRelationsOfStory removes every relation edge touching a character of
// the story, on either endpoint.
func (s *Store) DeleteRelationsOfStory(ctx context.Context, storyID int64) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM CharacterRelations
		WHERE char1_id IN (SELECT char_id FROM Characters WHERE story_id = ?1)
		   OR char2_id IN (SELECT char_id FROM Characters WHERE story_id = ?1)
	`, storyID)
	if err != nil {
		return fmt.Errorf("delete relations of story: %w", err)
	}
	return nil
}

// ClearStories removes every story, character and relation edge in one
// transaction. Relation types survive, they are reference data.
func (s *Store) ClearStories(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM CharacterRelations`,
		`DELETE FROM Characters`,
		`DELETE FROM Stories`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear stories: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}
