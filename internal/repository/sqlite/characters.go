package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fabula/internal/domain"
	"fabula/internal/repository"
)

// CreateCharacter inserts a character into a story and returns its id.
func (s *Store) CreateCharacter(ctx context.Context, storyID int64, stats domain.CharacterStats) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO Characters(
			story_id, name, gender, birthday, age, height, weight,
			appearance, personality, history, picture, trivia
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		storyID,
		stats.Name,
		int(stats.Gender),
		stringToNull(stats.Birthday),
		intPtrToNull(stats.Age),
		intPtrToNull(stats.Height),
		intPtrToNull(stats.Weight),
		stringToNull(stats.Appearance),
		stringToNull(stats.Personality),
		stringToNull(stats.History),
		stringToNull(stats.Picture),
		stringToNull(stats.Trivia),
	)
	if err != nil {
		return 0, fmt.Errorf("create character: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create character id: %w", err)
	}
	return id, nil
}

// UpdateCharacter rewrites the editable stats of a character. The picture is
// managed separately through UpdatePicture.
func (s *Store) UpdateCharacter(ctx context.Context, id int64, stats domain.CharacterStats) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE Characters
		SET gender = ?, birthday = ?, age = ?, height = ?, weight = ?,
			appearance = ?, personality = ?, history = ?, trivia = ?, name = ?
		WHERE char_id = ?
	`,
		int(stats.Gender),
		stringToNull(stats.Birthday),
		intPtrToNull(stats.Age),
		intPtrToNull(stats.Height),
		intPtrToNull(stats.Weight),
		stringToNull(stats.Appearance),
		stringToNull(stats.Personality),
		stringToNull(stats.History),
		stringToNull(stats.Trivia),
		stats.Name,
		id,
	)
	if err != nil {
		return fmt.Errorf("update character: %w", err)
	}
	return nil
}

// UpdatePicture points a character at a new avatar name. Empty means the
// default image.
func (s *Store) UpdatePicture(ctx context.Context, id int64, picture string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE Characters SET picture = ? WHERE char_id = ?`,
		stringToNull(picture), id)
	if err != nil {
		return fmt.Errorf("update picture: %w", err)
	}
	return nil
}

// CharactersByStory returns every character of a story, empty when the story
// has none.
func (s *Store) CharactersByStory(ctx context.Context, storyID int64) ([]domain.Character, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT char_id, story_id, name, gender, birthday, age, height, weight,
			appearance, personality, history, picture, trivia
		FROM Characters
		WHERE story_id = ?
		ORDER BY char_id
	`, storyID)
	if err != nil {
		return nil, fmt.Errorf("characters by story: %w", err)
	}
	defer rows.Close()

	characters := []domain.Character{}
	for rows.Next() {
		var (
			c                   domain.Character
			gender              sql.NullInt64
			birthday            sql.NullString
			age, height, weight sql.NullInt64
			appearance          sql.NullString
			personality         sql.NullString
			history             sql.NullString
			picture             sql.NullString
			trivia              sql.NullString
		)

		err := rows.Scan(&c.ID, &c.StoryID, &c.Stats.Name, &gender, &birthday,
			&age, &height, &weight, &appearance, &personality, &history,
			&picture, &trivia)
		if err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}

		c.Stats.Gender = domain.GenderUnknown
		if gender.Valid {
			c.Stats.Gender = domain.Gender(gender.Int64)
		}
		c.Stats.Birthday = nullToString(birthday)
		c.Stats.Age = nullToIntPtr(age)
		c.Stats.Height = nullToIntPtr(height)
		c.Stats.Weight = nullToIntPtr(weight)
		c.Stats.Appearance = nullToString(appearance)
		c.Stats.Personality = nullToString(personality)
		c.Stats.History = nullToString(history)
		c.Stats.Picture = nullToString(picture)
		c.Stats.Trivia = nullToString(trivia)

		characters = append(characters, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate characters: %w", err)
	}
	return characters, nil
}

// DeleteCharacter removes a character row. Relation edges referencing it go
// with it through the foreign-key cascade.
func (s *Store) DeleteCharacter(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM Characters WHERE char_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	return nil
}

// DeleteCharacterRelations removes every relation edge where the character
// is either endpoint.
func (s *Store) DeleteCharacterRelations(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM CharacterRelations WHERE char1_id = ? OR char2_id = ?`,
		id, id)
	if err != nil {
		return fmt.Errorf("delete character relations: %w", err)
	}
	return nil
}

// Relations lists all relation types in seed order.
func (s *Store) Relations(ctx context.Context) ([]domain.Relation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT relation_id, name, female_name, male_name, two_sided, counterpart
		FROM Relations
		ORDER BY relation_id
	`)
	if err != nil {
		return nil, fmt.Errorf("relations: %w", err)
	}
	defer rows.Close()

	var relations []domain.Relation
	for rows.Next() {
		var (
			r           domain.Relation
			femaleName  sql.NullString
			maleName    sql.NullString
			twoSided    int
			counterpart sql.NullInt64
		)
		err := rows.Scan(&r.ID, &r.Name, &femaleName, &maleName,
			&twoSided, &counterpart)
		if err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}

		r.FemaleName = nullToString(femaleName)
		r.MaleName = nullToString(maleName)
		r.TwoSided = twoSided != 0
		if r.TwoSided && counterpart.Valid {
			r.Counterpart = counterpart.Int64
		}
		relations = append(relations, r)
	}
	return relations, rows.Err()
}

// RelationIDFromName resolves a relation type by its canonical name.
func (s *Store) RelationIDFromName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT relation_id FROM Relations WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("relation %q: %w", name, repository.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("relation id from name: %w", err)
	}
	return id, nil
}

// CharacterRelations lists a character's relationships. The relation name is
// rendered by the other character's gender: "parent" comes back as "mother"
// or "father" when the target's gender is known.
func (s *Store) CharacterRelations(ctx context.Context, charID int64) ([]domain.RelationView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT char.name, charrel.former,
			CASE
				WHEN char.gender = 0 THEN COALESCE(rel.female_name, rel.name)
				WHEN char.gender = 1 THEN COALESCE(rel.male_name, rel.name)
				ELSE rel.name
			END AS relation_name,
			charrel.char2_id, rel.relation_id, rel.two_sided,
			CASE
				WHEN rel.two_sided = 1 THEN rel.counterpart
				ELSE NULL
			END AS counterpart
		FROM CharacterRelations charrel
		JOIN Characters char ON char.char_id = charrel.char2_id
		JOIN Relations rel ON rel.relation_id = charrel.relation_id
		WHERE charrel.char1_id = ?
	`, charID)
	if err != nil {
		return nil, fmt.Errorf("character relations: %w", err)
	}
	defer rows.Close()

	var views []domain.RelationView
	for rows.Next() {
		var (
			v           domain.RelationView
			former      int
			twoSided    int
			counterpart sql.NullInt64
		)
		err := rows.Scan(&v.OtherName, &former, &v.RelationName,
			&v.OtherID, &v.RelationID, &twoSided, &counterpart)
		if err != nil {
			return nil, fmt.Errorf("scan relation view: %w", err)
		}
		v.Former = former != 0
		v.TwoSided = twoSided != 0
		if counterpart.Valid {
			v.CounterpartID = counterpart.Int64
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate relation views: %w", err)
	}
	return views, nil
}

// SetRelation records "char2 is relationID to char1". When the relation type
// is two-sided the mirrored edge with the counterpart type is inserted in
// the same statement, so both directions land or neither does.
func (s *Store) SetRelation(ctx context.Context, char1ID, char2ID, relationID int64, former bool) error {
	twoSided, counterpart, err := s.relationSides(ctx, relationID)
	if err != nil {
		return err
	}

	f := 0
	if former {
		f = 1
	}

	if twoSided {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO CharacterRelations(char1_id, char2_id, relation_id, former)
			VALUES (?, ?, ?, ?), (?, ?, ?, ?)
		`, char1ID, char2ID, relationID, f, char2ID, char1ID, counterpart, f)
	} else {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO CharacterRelations(char1_id, char2_id, relation_id, former)
			VALUES (?, ?, ?, ?)
		`, char1ID, char2ID, relationID, f)
	}
	if err != nil {
		return fmt.Errorf("set relation: %w", err)
	}
	return nil
}

// relationSides reports whether a relation type is two-sided, and with which
// counterpart id.
func (s *Store) relationSides(ctx context.Context, relationID int64) (bool, int64, error) {
	var (
		twoSided    int
		counterpart sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT two_sided,
			CASE WHEN two_sided = 1 THEN counterpart ELSE NULL END
		FROM Relations
		WHERE relation_id = ?
	`, relationID).Scan(&twoSided, &counterpart)
	if errors.Is(err, sql.ErrNoRows) {
		return false, 0, fmt.Errorf("relation %d: %w", relationID, repository.ErrNotFound)
	}
	if err != nil {
		return false, 0, fmt.Errorf("relation sides: %w", err)
	}
	return twoSided != 0, counterpart.Int64, nil
}

// DeleteRelation removes the edge between two characters, and the mirrored
// counterpart edge when the relation type is two-sided.
func (s *Store) DeleteRelation(ctx context.Context, char1ID, char2ID, relationID int64, twoSided bool, counterpartID int64) error {
	const del = `
		DELETE FROM CharacterRelations
		WHERE char1_id = ? AND char2_id = ? AND relation_id = ?
	`
	if _, err := s.db.ExecContext(ctx, del, char1ID, char2ID, relationID); err != nil {
		return fmt.Errorf("delete relation: %w", err)
	}

	if twoSided {
		if _, err := s.db.ExecContext(ctx, del, char2ID, char1ID, counterpartID); err != nil {
			return fmt.Errorf("delete counterpart relation: %w", err)
		}
	}
	return nil
}

// ClearCharacters removes every character.
func (s *Store) ClearCharacters(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM Characters`); err != nil {
		return fmt.Errorf("clear characters: %w", err)
	}
	return nil
}

// ClearRelations removes every relation edge.
func (s *Store) ClearRelations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM CharacterRelations`); err != nil {
		return fmt.Errorf("clear relations: %w", err)
	}
	return nil
}
