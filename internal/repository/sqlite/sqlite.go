// Package sqlite implements the repository interfaces on a local SQLite
// database using the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store implements repository.StoryRepository and
// repository.CharacterRepository over a single SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema
// exists. Pass ":memory:" for an in-memory database.
//
// The pool is capped at one connection: the application is single-threaded,
// an in-memory database must not be split across connections, and the
// two-row relation insert relies on statement-level atomicity on one
// connection.
func Open(path string) (*Store, error) {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS Stories (
		story_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		desc TEXT
	);

	CREATE TABLE IF NOT EXISTS Characters (
		char_id INTEGER PRIMARY KEY,
		story_id INTEGER,
		name TEXT NOT NULL,
		gender INTEGER,
		birthday TEXT,
		age INTEGER,
		height INTEGER,
		weight INTEGER,
		appearance TEXT,
		personality TEXT,
		history TEXT,
		picture TEXT,
		trivia TEXT,
		FOREIGN KEY (story_id) REFERENCES Stories(story_id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS Relations (
		relation_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		female_name TEXT,
		male_name TEXT,
		two_sided INTEGER NOT NULL,
		counterpart INTEGER DEFAULT NULL
	);

	CREATE TABLE IF NOT EXISTS CharacterRelations (
		char1_id INTEGER NOT NULL,
		char2_id INTEGER NOT NULL,
		relation_id INTEGER NOT NULL,
		former INTEGER DEFAULT 0,
		FOREIGN KEY (char1_id) REFERENCES Characters(char_id) ON DELETE CASCADE,
		FOREIGN KEY (char2_id) REFERENCES Characters(char_id) ON DELETE CASCADE,
		FOREIGN KEY (relation_id) REFERENCES Relations(relation_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_characters_story ON Characters(story_id);
	CREATE INDEX IF NOT EXISTS idx_charrel_char1 ON CharacterRelations(char1_id);
	CREATE INDEX IF NOT EXISTS idx_charrel_char2 ON CharacterRelations(char2_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Init drops all tables, recreates the schema, and seeds relation types from
// the bundled definition. One-shot initialization invoked by the CLI.
func (s *Store) Init(ctx context.Context) error {
	drop := `
	DROP TABLE IF EXISTS CharacterRelations;
	DROP TABLE IF EXISTS Relations;
	DROP TABLE IF EXISTS Characters;
	DROP TABLE IF EXISTS Stories;
	`
	if _, err := s.db.ExecContext(ctx, drop); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	if err := s.migrate(); err != nil {
		return fmt.Errorf("recreate schema: %w", err)
	}
	return s.SeedDefaultRelations(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
