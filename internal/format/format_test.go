package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabula/internal/domain"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.Gender
	}{
		{"female", domain.GenderFemale},
		{"Female", domain.GenderFemale},
		{"f", domain.GenderFemale},
		{"0", domain.GenderFemale},
		{"male", domain.GenderMale},
		{"Male", domain.GenderMale},
		{"m", domain.GenderMale},
		{"1", domain.GenderMale},
		{"unknown", domain.GenderUnknown},
		{"2", domain.GenderUnknown},
		{"", domain.GenderUnknown},
		{"dragon", domain.GenderUnknown},
		{"  MALE  ", domain.GenderMale},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseGender(tt.input))
		})
	}
}

func TestParseBirthday(t *testing.T) {
	tests := []struct {
		name             string
		day, month, year string
		expected         string
	}{
		{"all blank collapses to unknown", "", "", "", ""},
		{"missing year", "24", "12", "", "24/12/????"},
		{"full date", "24", "12", "1999", "24/12/1999"},
		{"non-numeric day", "soon", "12", "1999", "??/12/1999"},
		{"only year", "", "", "1999", "??/??/1999"},
		{"all non-numeric collapses", "a", "b", "c", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseBirthday(tt.day, tt.month, tt.year))
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected *int
	}{
		{"23", intPtr(23)},
		{"abc", nil},
		{"", nil},
		{"170 cm", intPtr(170)},
		{"1m80", intPtr(180)},
		{"   ", nil},
		{"0", intPtr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseNumber(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func TestRelationLine(t *testing.T) {
	tests := []struct {
		name     string
		charName string
		former   bool
		relation string
		expected string
	}{
		{"current relation", "Anna", false, "mother", "Anna: mother."},
		{"former generic relation", "Ben", true, "friend", "Ben: friend. (former)"},
		{"former spouse becomes ex", "Cora", true, "wife", "Cora: ex-wife."},
		{"former partner becomes ex", "Dan", true, "partner", "Dan: ex."},
		{"current spouse unchanged", "Eve", false, "husband", "Eve: husband."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RelationLine(tt.charName, tt.former, tt.relation))
		})
	}
}

func TestSplitText(t *testing.T) {
	assert.Equal(t, "", SplitText("", 10))
	assert.Equal(t, "short", SplitText("short", 10))

	got := SplitText("one two three four five six seven", 10)
	assert.Equal(t, "one two three\nfour five six\nseven", got)
}

func intPtr(n int) *int { return &n }
