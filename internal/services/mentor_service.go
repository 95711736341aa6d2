package services

import (
	"context"

	"github.com/impulso-stone/mentores-api/internal/catalog"
	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/internal/repository"
	"github.com/impulso-stone/mentores-api/pkg/metrics"
)

// CategoryMentors is the mentor list of one category
type CategoryMentors struct {
	Categoria   catalog.Category `json:"categoria"`
	Mentores    []*models.Mentor `json:"mentores"`
	Total       int              `json:"total"`
	Disponiveis int              `json:"disponiveis"`
}

type MentorService struct {
	repo repository.MentorRepositoryInterface
}

func NewMentorService(repo repository.MentorRepositoryInterface) *MentorService {
	return &MentorService{repo: repo}
}

func (s *MentorService) ListMentors(ctx context.Context, filter models.MentorFilter) ([]*models.Mentor, error) {
	return s.repo.List(ctx, filter)
}

// GetMentorDetails returns the mentor with its slots, categories and whether
// it can still be chosen. Unavailable mentors are still shown.
func (s *MentorService) GetMentorDetails(ctx context.Context, id string) (*models.MentorDetails, error) {
	mentor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	categorias := catalog.Classify(mentor)

	label := "none"
	if len(categorias) > 0 {
		label = categorias[0]
	}
	metrics.MentorDetailViews.WithLabelValues(label).Inc()

	return &models.MentorDetails{
		Mentor:       mentor,
		Horarios:     mentor.ScheduleSlots(),
		Categorias:   categorias,
		PodeEscolher: mentor.Disponivel,
	}, nil
}

// GetCategories builds the landing page overview
func (s *MentorService) GetCategories(ctx context.Context) (*catalog.Overview, error) {
	mentors, err := s.repo.List(ctx, models.MentorFilter{})
	if err != nil {
		return nil, err
	}

	overview := catalog.BuildOverview(mentors)
	return &overview, nil
}

// GetCategoryMentors lists a category's mentors, available first, narrowed
// by a name query.
func (s *MentorService) GetCategoryMentors(ctx context.Context, slug, query string) (*CategoryMentors, error) {
	category, ok := catalog.CategoryBySlug(slug)
	if !ok {
		return nil, ErrCategoryNotFound
	}

	mentors, err := s.repo.List(ctx, models.MentorFilter{})
	if err != nil {
		return nil, err
	}

	inCategory := catalog.InCategory(mentors, slug)

	result := &CategoryMentors{
		Categoria: category,
		Mentores:  catalog.SearchByName(inCategory, query),
		Total:     len(inCategory),
	}
	for _, m := range inCategory {
		if m.Disponivel {
			result.Disponiveis++
		}
	}

	return result, nil
}
