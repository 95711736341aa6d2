package repository

import (
	"context"
	"testing"

	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mentors      []*models.Mentor
	sectorCalls  []string
	availability map[string]bool
}

func (f *fakeStore) ListMentors(ctx context.Context) ([]*models.Mentor, error) {
	return f.mentors, nil
}

func (f *fakeStore) ListMentorsBySector(ctx context.Context, sector string, onlyAvailable bool) ([]*models.Mentor, error) {
	f.sectorCalls = append(f.sectorCalls, sector)
	var out []*models.Mentor
	for _, m := range f.mentors {
		if m.Setor == sector && (!onlyAvailable || m.Disponivel) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) GetMentor(ctx context.Context, id string) (*models.Mentor, error) {
	for _, m := range f.mentors {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, models.ErrMentorNotFound
}

func (f *fakeStore) SetMentorAvailability(ctx context.Context, id string, disponivel bool) error {
	if f.availability == nil {
		f.availability = map[string]bool{}
	}
	f.availability[id] = disponivel
	return nil
}

func (f *fakeStore) UpdateMentorPhoto(ctx context.Context, id, fotoURL string) error {
	return nil
}

type fakeCache struct {
	mentors     []*models.Mentor
	invalidated int
}

func (f *fakeCache) Get(ctx context.Context) ([]*models.Mentor, error) { return f.mentors, nil }

func (f *fakeCache) GetByID(ctx context.Context, id string) (*models.Mentor, bool, error) {
	for _, m := range f.mentors {
		if m.ID == id {
			return m, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeCache) Invalidate() { f.invalidated++ }
func (f *fakeCache) IsReady() bool { return true }

func TestMentorRepository_ListUsesCacheWithoutSector(t *testing.T) {
	cached := []*models.Mentor{
		{ID: "1", Nome: "Ana Silva", Disponivel: true},
		{ID: "2", Nome: "Bruno", Disponivel: false},
	}
	store := &fakeStore{}
	repo := NewMentorRepository(store, &fakeCache{mentors: cached})

	got, err := repo.List(context.Background(), models.MentorFilter{OnlyAvailable: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana Silva", got[0].Nome)
	assert.Empty(t, store.sectorCalls)
}

func TestMentorRepository_ListPushesSectorToStore(t *testing.T) {
	store := &fakeStore{mentors: []*models.Mentor{
		{ID: "1", Nome: "Ana Silva", Setor: "Marketing", Disponivel: true},
		{ID: "2", Nome: "Carla", Setor: "Marketing", Disponivel: true},
	}}
	repo := NewMentorRepository(store, &fakeCache{})

	got, err := repo.List(context.Background(), models.MentorFilter{Setor: " Marketing ", Query: "ana"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, []string{"Marketing"}, store.sectorCalls)
}

func TestMentorRepository_GetByIDFallsBackToStore(t *testing.T) {
	store := &fakeStore{mentors: []*models.Mentor{{ID: "new", Nome: "Nova"}}}
	repo := NewMentorRepository(store, &fakeCache{})

	m, err := repo.GetByID(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, "Nova", m.Nome)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrMentorNotFound)
}

func TestMentorRepository_WritesInvalidateCache(t *testing.T) {
	store := &fakeStore{}
	c := &fakeCache{}
	repo := NewMentorRepository(store, c)

	require.NoError(t, repo.SetAvailability(context.Background(), "1", true))
	require.NoError(t, repo.UpdatePhoto(context.Background(), "1", "https://cdn/x.jpg"))

	assert.Equal(t, 2, c.invalidated)
	assert.True(t, store.availability["1"])
}
