package repository

import (
	"context"
	"strings"

	"github.com/impulso-stone/mentores-api/internal/cache"
	"github.com/impulso-stone/mentores-api/internal/catalog"
	"github.com/impulso-stone/mentores-api/internal/models"
)

// MentorRepositoryInterface defines the interface for mentor data access operations.
type MentorRepositoryInterface interface {
	List(ctx context.Context, filter models.MentorFilter) ([]*models.Mentor, error)
	GetByID(ctx context.Context, id string) (*models.Mentor, error)
	SetAvailability(ctx context.Context, id string, disponivel bool) error
	UpdatePhoto(ctx context.Context, id, fotoURL string) error
	InvalidateCache()
}

// MentorRepository serves mentor reads from the cache and sends writes to
// the store, invalidating the cache after each write.
type MentorRepository struct {
	store       MentorStore
	mentorCache cache.MentorCacheInterface
}

// NewMentorRepository creates a new mentor repository
func NewMentorRepository(store MentorStore, mentorCache cache.MentorCacheInterface) *MentorRepository {
	return &MentorRepository{
		store:       store,
		mentorCache: mentorCache,
	}
}

var _ MentorRepositoryInterface = (*MentorRepository)(nil)

// List returns mentors ordered by name. A sector filter is pushed down to the
// store; the name query and availability are applied in memory.
func (r *MentorRepository) List(ctx context.Context, filter models.MentorFilter) ([]*models.Mentor, error) {
	if sector := strings.TrimSpace(filter.Setor); sector != "" {
		mentors, err := r.store.ListMentorsBySector(ctx, sector, filter.OnlyAvailable)
		if err != nil {
			return nil, err
		}
		return catalog.SearchByName(mentors, filter.Query), nil
	}

	mentors, err := r.mentorCache.Get(ctx)
	if err != nil {
		return nil, err
	}

	return catalog.Filter(mentors, filter), nil
}

// GetByID looks the mentor up in the cache and falls back to the store for
// mentors added since the last load.
func (r *MentorRepository) GetByID(ctx context.Context, id string) (*models.Mentor, error) {
	mentor, found, err := r.mentorCache.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found {
		return mentor, nil
	}

	return r.store.GetMentor(ctx, id)
}

// SetAvailability opens or closes a mentor
func (r *MentorRepository) SetAvailability(ctx context.Context, id string, disponivel bool) error {
	if err := r.store.SetMentorAvailability(ctx, id, disponivel); err != nil {
		return err
	}
	r.mentorCache.Invalidate()
	return nil
}

// UpdatePhoto stores a new photo URL
func (r *MentorRepository) UpdatePhoto(ctx context.Context, id, fotoURL string) error {
	if err := r.store.UpdateMentorPhoto(ctx, id, fotoURL); err != nil {
		return err
	}
	r.mentorCache.Invalidate()
	return nil
}

// InvalidateCache forces the next read to reload the mentor list
func (r *MentorRepository) InvalidateCache() {
	r.mentorCache.Invalidate()
}
