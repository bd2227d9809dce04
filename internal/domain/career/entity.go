package career

import (
	"strings"
	"unicode"
)

const (
	NotAvailable        = "N/A"
	fallbackDescription = "Detailed information about this career is currently unavailable. Please try again later."
)

// Detail is the generated description of one career. It is never persisted.
type Detail struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Skills           []string `json:"skills"`
	Education        string   `json:"education"`
	SalaryRange      string   `json:"salary_range"`
}

// Fallback is the placeholder served when generation fails.
func Fallback(label string) Detail {
	return Detail{
		ID:               Slugify(label),
		Title:            label,
		Description:      fallbackDescription,
		Responsibilities: []string{},
		Skills:           []string{},
		Education:        NotAvailable,
		SalaryRange:      NotAvailable,
	}
}

// Slugify lowercases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
