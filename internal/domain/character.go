package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Gender is the stored gender code for a character.
type Gender int

const (
	GenderFemale  Gender = 0
	GenderMale    Gender = 1
	GenderUnknown Gender = 2
)

// String returns the display label for a gender code.
func (g Gender) String() string {
	switch g {
	case GenderFemale:
		return "Female"
	case GenderMale:
		return "Male"
	default:
		return "Unknown"
	}
}

// CharacterStats holds everything a character sheet records.
//
// Optional text fields use the empty string for "not filled in" and are
// stored as NULL. Optional numeric fields are pointers because zero is a
// legitimate value (a newborn has age 0).
type CharacterStats struct {
	Name        string `json:"name"`
	Gender      Gender `json:"gender"`
	Birthday    string `json:"birthday,omitempty"` // dd/mm/yyyy, ?? parts allowed, "" = unknown
	Age         *int   `json:"age,omitempty"`
	Height      *int   `json:"height,omitempty"` // cm
	Weight      *int   `json:"weight,omitempty"` // kg
	Appearance  string `json:"appearance,omitempty"`
	Personality string `json:"personality,omitempty"`
	History     string `json:"history,omitempty"`
	Picture     string `json:"picture,omitempty"` // avatar name, "" = default image
	Trivia      string `json:"trivia,omitempty"`
}

// Character is a person-like entity owned by exactly one story.
type Character struct {
	ID      int64          `json:"id"`
	StoryID int64          `json:"story_id"`
	Stats   CharacterStats `json:"stats"`
}

// DisplayAge renders the age, or "???" when unknown.
func (c *Character) DisplayAge() string {
	if c.Stats.Age == nil {
		return "???"
	}
	return strconv.Itoa(*c.Stats.Age)
}

// DisplayBirthday renders the birthday. A fully unknown birthday renders as
// "Unknown"; when only the year is unknown the trailing "/????" is dropped.
func (c *Character) DisplayBirthday() string {
	b := c.Stats.Birthday
	if b == "" {
		return "Unknown"
	}
	if strings.HasSuffix(b, "/????") {
		return strings.TrimSuffix(b, "/????")
	}
	return b
}

// DisplayHeight renders the height in centimeters, or "??? cm" when unknown.
func (c *Character) DisplayHeight() string {
	if c.Stats.Height == nil || *c.Stats.Height == 0 {
		return "??? cm"
	}
	return fmt.Sprintf("%d cm", *c.Stats.Height)
}

// DisplayWeight renders the weight in kilograms, or "?? kg" when unknown.
func (c *Character) DisplayWeight() string {
	if c.Stats.Weight == nil || *c.Stats.Weight == 0 {
		return "?? kg"
	}
	return fmt.Sprintf("%d kg", *c.Stats.Weight)
}

// ImageName returns the avatar name to display, falling back to the shared
// default when the character has no custom avatar.
func (c *Character) ImageName() string {
	if c.Stats.Picture == "" {
		return "default"
	}
	return c.Stats.Picture
}
