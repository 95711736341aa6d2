package catalog

import (
	"strings"
	"testing"

	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func toLower(s string) string { return strings.ToLower(s) }

func names(mentors []*models.Mentor) []string {
	out := make([]string, 0, len(mentors))
	for _, m := range mentors {
		out = append(out, m.Nome)
	}
	return out
}

func TestSearchByName(t *testing.T) {
	mentors := []*models.Mentor{
		mentor("Ana Silva", "Marketing", true),
		mentor("Bruno", "Vendas", true),
		mentor("Mariana Costa", "Finanças", false),
	}

	assert.Equal(t, []string{"Ana Silva", "Mariana Costa"}, names(SearchByName(mentors, "ana")))
	assert.Equal(t, []string{"Ana Silva", "Mariana Costa"}, names(SearchByName(mentors, "ANA")))
	assert.Equal(t, []string{"Ana Silva", "Bruno", "Mariana Costa"}, names(SearchByName(mentors, "")))
	assert.Empty(t, SearchByName(mentors, "   "))
	assert.Empty(t, SearchByName(mentors, "zzz"))
}

func TestSearchByName_KeepsSurroundingSpaces(t *testing.T) {
	mentors := []*models.Mentor{
		mentor("Ana Silva", "Marketing", true),
		mentor("Silvana Lima", "Vendas", true),
	}

	assert.Equal(t, []string{"Ana Silva"}, names(SearchByName(mentors, " silva")))
	assert.Equal(t, []string{"Ana Silva", "Silvana Lima"}, names(SearchByName(mentors, "silva")))
	assert.Equal(t, []string{"Silvana Lima"}, names(SearchByName(mentors, "silvana ")))
}

func TestFilter(t *testing.T) {
	mentors := []*models.Mentor{
		mentor("Ana Silva", "Marketing Digital", true),
		mentor("Bruno", "Vendas", true),
		mentor("Mariana Costa", "Marketing", false),
	}

	got := Filter(mentors, models.MentorFilter{Setor: "marketing"})
	assert.Equal(t, []string{"Ana Silva", "Mariana Costa"}, names(got))

	got = Filter(mentors, models.MentorFilter{Setor: "marketing", OnlyAvailable: true})
	assert.Equal(t, []string{"Ana Silva"}, names(got))

	got = Filter(mentors, models.MentorFilter{Query: "bru"})
	assert.Equal(t, []string{"Bruno"}, names(got))
}
