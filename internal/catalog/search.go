package catalog

import (
	"strings"

	"github.com/impulso-stone/mentores-api/internal/models"
)

// SearchByName keeps mentors whose name contains query, ignoring case.
// Order is preserved and an empty query returns every mentor. Surrounding
// spaces are part of the query.
func SearchByName(mentors []*models.Mentor, query string) []*models.Mentor {
	query = strings.ToLower(query)
	if query == "" {
		return mentors
	}

	out := make([]*models.Mentor, 0)
	for _, m := range mentors {
		if m != nil && strings.Contains(strings.ToLower(m.Nome), query) {
			out = append(out, m)
		}
	}
	return out
}

// Filter applies a MentorFilter to an in-memory list
func Filter(mentors []*models.Mentor, f models.MentorFilter) []*models.Mentor {
	setor := strings.ToLower(strings.TrimSpace(f.Setor))

	out := make([]*models.Mentor, 0, len(mentors))
	for _, m := range SearchByName(mentors, f.Query) {
		if m == nil || (f.OnlyAvailable && !m.Disponivel) {
			continue
		}
		if setor != "" && !strings.Contains(strings.ToLower(m.Setor), setor) {
			continue
		}
		out = append(out, m)
	}
	return out
}
