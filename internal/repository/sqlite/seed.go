package sqlite

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed relations.yaml
var defaultRelationSeed []byte

type relationSeed struct {
	Name        string `yaml:"name"`
	Female      string `yaml:"female"`
	Male        string `yaml:"male"`
	TwoSided    bool   `yaml:"two_sided"`
	Counterpart string `yaml:"counterpart"`
}

type relationSeedFile struct {
	Relations []relationSeed `yaml:"relations"`
}

// SeedDefaultRelations loads the bundled relation type definitions.
func (s *Store) SeedDefaultRelations(ctx context.Context) error {
	return s.SeedRelations(ctx, defaultRelationSeed)
}

// SeedRelationsFromFile loads relation type definitions from a YAML file.
func (s *Store) SeedRelationsFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read relation seed: %w", err)
	}
	return s.SeedRelations(ctx, data)
}

// SeedRelations parses YAML relation definitions and inserts them. Existing
// rows are replaced: relation types are reference data, not user data.
// Counterparts reference other entries by name and every name must resolve.
func (s *Store) SeedRelations(ctx context.Context, data []byte) error {
	var file relationSeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse relation seed: %w", err)
	}
	if len(file.Relations) == 0 {
		return fmt.Errorf("relation seed defines no relations")
	}

	for _, r := range file.Relations {
		if r.TwoSided && r.Counterpart == "" {
			return fmt.Errorf("relation %q is two-sided but names no counterpart", r.Name)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM Relations`); err != nil {
		return fmt.Errorf("clear relation types: %w", err)
	}

	// First pass inserts the rows, second pass resolves counterpart names
	// to the ids they were assigned.
	ids := make(map[string]int64, len(file.Relations))
	for _, r := range file.Relations {
		twoSided := 0
		if r.TwoSided {
			twoSided = 1
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO Relations(name, female_name, male_name, two_sided)
			VALUES (?, ?, ?, ?)
		`, r.Name, stringToNull(r.Female), stringToNull(r.Male), twoSided)
		if err != nil {
			return fmt.Errorf("insert relation %q: %w", r.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("relation %q id: %w", r.Name, err)
		}
		ids[r.Name] = id
	}

	for _, r := range file.Relations {
		if !r.TwoSided {
			continue
		}
		counterpartID, ok := ids[r.Counterpart]
		if !ok {
			return fmt.Errorf("relation %q: counterpart %q is not defined", r.Name, r.Counterpart)
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE Relations SET counterpart = ? WHERE relation_id = ?`,
			counterpartID, ids[r.Name])
		if err != nil {
			return fmt.Errorf("link counterpart for %q: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}
