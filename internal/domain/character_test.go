package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestGenderString(t *testing.T) {
	assert.Equal(t, "Female", GenderFemale.String())
	assert.Equal(t, "Male", GenderMale.String())
	assert.Equal(t, "Unknown", GenderUnknown.String())
	assert.Equal(t, "Unknown", Gender(7).String())
}

func TestDisplayAge(t *testing.T) {
	c := &Character{}
	assert.Equal(t, "???", c.DisplayAge())

	c.Stats.Age = intPtr(0)
	assert.Equal(t, "0", c.DisplayAge())

	c.Stats.Age = intPtr(23)
	assert.Equal(t, "23", c.DisplayAge())
}

func TestDisplayBirthday(t *testing.T) {
	tests := []struct {
		name     string
		birthday string
		expected string
	}{
		{"unknown", "", "Unknown"},
		{"year unknown drops suffix", "24/12/????", "24/12"},
		{"full date", "24/12/1999", "24/12/1999"},
		{"day unknown keeps year", "??/12/1999", "??/12/1999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Character{Stats: CharacterStats{Birthday: tt.birthday}}
			assert.Equal(t, tt.expected, c.DisplayBirthday())
		})
	}
}

func TestDisplayPhysique(t *testing.T) {
	c := &Character{}
	assert.Equal(t, "??? cm", c.DisplayHeight())
	assert.Equal(t, "?? kg", c.DisplayWeight())

	c.Stats.Height = intPtr(170)
	c.Stats.Weight = intPtr(60)
	assert.Equal(t, "170 cm", c.DisplayHeight())
	assert.Equal(t, "60 kg", c.DisplayWeight())
}

func TestImageName(t *testing.T) {
	c := &Character{}
	assert.Equal(t, "default", c.ImageName())

	c.Stats.Picture = "a1b2c3d4e5"
	assert.Equal(t, "a1b2c3d4e5", c.ImageName())
}
