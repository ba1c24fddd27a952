package student

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("student profile not found")

type Profile struct {
	UserID        uuid.UUID
	Name          string
	Email         string
	Course        string
	StudentNumber string
	Skills        []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ParseSkills turns the free-text competencias column into a skill list.
// Entries are separated by commas, semicolons or line breaks. Surrounding
// whitespace is trimmed and repeated entries collapse to the first one; case
// is preserved because matching uses exact string equality.
func ParseSkills(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\r'
	})

	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// FormatSkills is the inverse of ParseSkills for storage.
func FormatSkills(skills []string) string {
	return strings.Join(ParseSkills(strings.Join(skills, ",")), ", ")
}
