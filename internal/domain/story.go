package domain

// Story is a top-level collection of characters.
type Story struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc,omitempty"`
}

// MaxStoryNameLen and MaxStoryDescLen bound user-supplied story text.
const (
	MaxStoryNameLen = 100
	MaxStoryDescLen = 100
)

// GenderBreakdown holds per-gender percentages for a story's cast.
// All values are zero when the story has no characters.
type GenderBreakdown struct {
	Female  float64 `json:"female"`
	Male    float64 `json:"male"`
	Unknown float64 `json:"unknown"`
}
