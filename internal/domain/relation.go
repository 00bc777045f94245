package domain

// Relation is a named relationship type between characters. Relation types
// are reference data seeded at initialization, never created by the app.
type Relation struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	FemaleName string `json:"female_name,omitempty"`
	MaleName   string `json:"male_name,omitempty"`
	TwoSided   bool   `json:"two_sided"`
	// Counterpart is the mirrored relation id (parent <-> child).
	// Only meaningful when TwoSided is set.
	Counterpart int64 `json:"counterpart,omitempty"`
}

// RelationView is one row of a character's relationship list: "the other
// character is <RelationName> to me". RelationName is already adjusted for
// the other character's gender (mother/father vs the generic parent).
type RelationView struct {
	OtherName    string `json:"other_name"`
	Former       bool   `json:"former"`
	RelationName string `json:"relation_name"`
	OtherID      int64  `json:"other_id"`
	RelationID   int64  `json:"relation_id"`
	TwoSided     bool   `json:"two_sided"`
	// CounterpartID is zero unless TwoSided is set.
	CounterpartID int64 `json:"counterpart_id,omitempty"`
}
