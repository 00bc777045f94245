// Package format turns free-text user input into validated stored values and
// renders stored values back to display strings. Everything here is pure.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"fabula/internal/domain"
)

// ParseGender maps a free-text gender to its stored code. Unrecognized or
// missing input maps to unknown, never an error.
func ParseGender(s string) domain.Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "female", "f", "0":
		return domain.GenderFemale
	case "male", "m", "1":
		return domain.GenderMale
	default:
		return domain.GenderUnknown
	}
}

// ParseBirthday joins day, month and year into "dd/mm/yyyy". A blank or
// non-numeric component becomes a placeholder ("??" or "????"). When all
// three components are placeholders the birthday is unknown and the empty
// string is returned instead of "??/??/????".
func ParseBirthday(day, month, year string) string {
	if !isDigits(day) {
		day = "??"
	}
	if !isDigits(month) {
		month = "??"
	}
	if !isDigits(year) {
		year = "????"
	}

	birthday := day + "/" + month + "/" + year
	if birthday == "??/??/????" {
		return ""
	}
	return birthday
}

// ParseNumber extracts a non-negative integer from user input. It takes the
// first whitespace-delimited token and keeps only its digit characters, so
// "170 cm" parses as 170. Returns nil when no digits are found.
func ParseNumber(s string) *int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}

	var digits strings.Builder
	for _, r := range fields[0] {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return nil
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return nil
	}
	return &n
}

// exRelations maps partner-type relation names to their "ex-" rendering.
var exRelations = map[string]string{
	"spouse":     "ex-spouse",
	"wife":       "ex-wife",
	"husband":    "ex-husband",
	"partner":    "ex",
	"girlfriend": "ex-girlfriend",
	"boyfriend":  "ex-boyfriend",
}

// RelationLine renders one relationship list entry, e.g. "Anna: mother." or
// "Ben: friend. (former)". Former partner-type relations use the "ex-"
// variant instead of the "(former)" suffix.
func RelationLine(name string, former bool, relation string) string {
	if former {
		if ex, ok := exRelations[relation]; ok {
			return fmt.Sprintf("%s: %s.", name, ex)
		}
		return fmt.Sprintf("%s: %s. (former)", name, relation)
	}
	return fmt.Sprintf("%s: %s.", name, relation)
}

// SplitText word-wraps text for display by replacing the first space after
// width characters with a line break. The stored value is never wrapped.
func SplitText(text string, width int) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	count := 0
	for _, r := range text {
		if count > width && r == ' ' {
			b.WriteByte('\n')
			count = 0
			continue
		}
		b.WriteRune(r)
		count++
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
