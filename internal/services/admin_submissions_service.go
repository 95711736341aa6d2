package services

import (
	"context"
	"sort"
	"strings"

	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/internal/repository"
)

// allSectors is the sector filter value meaning no filter
const allSectors = "all"

type AdminSubmissionsService struct {
	repo repository.SubmissionRepositoryInterface
}

func NewAdminSubmissionsService(repo repository.SubmissionRepositoryInterface) *AdminSubmissionsService {
	return &AdminSubmissionsService{repo: repo}
}

// ListSubmissions loads every submission and narrows it by a text query over
// requester name, requester email and mentor name, and by exact sector.
func (s *AdminSubmissionsService) ListSubmissions(ctx context.Context, query models.SubmissionsQuery) (*models.SubmissionsView, error) {
	all, err := s.repo.ListWithMentor(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterSubmissions(all, query)

	view := &models.SubmissionsView{
		Submissoes: filtered,
		Total:      len(all),
		Filtrados:  len(filtered),
		Setores:    distinctSectors(all),
		Stats:      submissionStats(all),
	}

	switch {
	case len(all) == 0:
		view.EstadoVazio = models.EmptyStateNoSubmissions
	case len(filtered) == 0:
		view.EstadoVazio = models.EmptyStateNoResults
	default:
		view.EstadoVazio = models.EmptyStateNone
	}

	return view, nil
}

// FilterSubmissions applies the admin table filters, keeping order
func FilterSubmissions(submissions []*models.SubmissionWithMentor, query models.SubmissionsQuery) []*models.SubmissionWithMentor {
	text := strings.ToLower(strings.TrimSpace(query.Query))
	setor := strings.TrimSpace(query.Setor)
	if strings.EqualFold(setor, allSectors) {
		setor = ""
	}

	out := make([]*models.SubmissionWithMentor, 0, len(submissions))
	for _, sub := range submissions {
		if sub == nil || sub.Submission == nil {
			continue
		}
		if setor != "" && !strings.EqualFold(strings.TrimSpace(sub.Mentor.Setor), setor) {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(sub.NomeUsuario), text) &&
			!strings.Contains(strings.ToLower(sub.EmailUsuario), text) &&
			!strings.Contains(strings.ToLower(sub.Mentor.Nome), text) {
			continue
		}
		out = append(out, sub)
	}
	return out
}

func distinctSectors(submissions []*models.SubmissionWithMentor) []string {
	seen := map[string]bool{}
	sectors := []string{}
	for _, sub := range submissions {
		setor := strings.TrimSpace(sub.Mentor.Setor)
		if setor == "" || seen[strings.ToLower(setor)] {
			continue
		}
		seen[strings.ToLower(setor)] = true
		sectors = append(sectors, setor)
	}
	sort.Strings(sectors)
	return sectors
}

func submissionStats(submissions []*models.SubmissionWithMentor) models.SubmissionStats {
	stats := models.SubmissionStats{
		Total:         len(submissions),
		SetoresUnicos: len(distinctSectors(submissions)),
	}
	for _, sub := range submissions {
		if stats.UltimaSubmissao == nil || sub.DataSubmissao.After(*stats.UltimaSubmissao) {
			at := sub.DataSubmissao
			stats.UltimaSubmissao = &at
		}
	}
	return stats
}
