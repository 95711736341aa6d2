package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submissionRows() []*models.SubmissionWithMentor {
	base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	row := func(id, nome, email, mentor, setor string, age time.Duration) *models.SubmissionWithMentor {
		return &models.SubmissionWithMentor{
			Submission: &models.Submission{
				ID:            id,
				NomeUsuario:   nome,
				EmailUsuario:  email,
				DataSubmissao: base.Add(-age),
			},
			Mentor: models.SubmissionMentor{Nome: mentor, Setor: setor},
		}
	}
	return []*models.SubmissionWithMentor{
		row("s1", "João", "joao@x.com", "Ana Silva", "Marketing", 0),
		row("s2", "Maria", "maria@y.com", "Bruno Costa", "Vendas", time.Hour),
		row("s3", "Pedro", "pedro@anabela.com", "Carla", "marketing", 2*time.Hour),
		row("s4", "Lucas", "lucas@z.com", "Daniel", "Marketing Digital", 3*time.Hour),
	}
}

func ids(rows []*models.SubmissionWithMentor) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestAdminSubmissionsService_ListSubmissions(t *testing.T) {
	repo := new(MockSubmissionRepository)
	service := services.NewAdminSubmissionsService(repo)
	ctx := context.Background()

	repo.On("ListWithMentor", ctx).Return(submissionRows(), nil)

	view, err := service.ListSubmissions(ctx, models.SubmissionsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 4, view.Total)
	assert.Equal(t, 4, view.Filtrados)
	assert.Equal(t, models.EmptyStateNone, view.EstadoVazio)
	assert.Equal(t, []string{"Marketing", "Marketing Digital", "Vendas"}, view.Setores)
	assert.Equal(t, 3, view.Stats.SetoresUnicos)
	require.NotNil(t, view.Stats.UltimaSubmissao)
	assert.Equal(t, time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC), *view.Stats.UltimaSubmissao)
}

func TestFilterSubmissions(t *testing.T) {
	rows := submissionRows()

	tests := []struct {
		name  string
		query models.SubmissionsQuery
		want  []string
	}{
		{"no filter", models.SubmissionsQuery{}, []string{"s1", "s2", "s3", "s4"}},
		{"text matches requester, email and mentor", models.SubmissionsQuery{Query: "ANA"}, []string{"s1", "s3"}},
		{"sector is equality, not substring", models.SubmissionsQuery{Setor: "Marketing"}, []string{"s1", "s3"}},
		{"all means no sector filter", models.SubmissionsQuery{Setor: "all"}, []string{"s1", "s2", "s3", "s4"}},
		{"both filters combine", models.SubmissionsQuery{Query: "maria", Setor: "vendas"}, []string{"s2"}},
		{"nothing matches", models.SubmissionsQuery{Query: "ninguém"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(services.FilterSubmissions(rows, tt.query)))
		})
	}
}

func TestAdminSubmissionsService_EmptyStates(t *testing.T) {
	ctx := context.Background()

	empty := new(MockSubmissionRepository)
	empty.On("ListWithMentor", ctx).Return([]*models.SubmissionWithMentor{}, nil)
	view, err := services.NewAdminSubmissionsService(empty).ListSubmissions(ctx, models.SubmissionsQuery{Query: "x"})
	require.NoError(t, err)
	assert.Equal(t, models.EmptyStateNoSubmissions, view.EstadoVazio)
	assert.Nil(t, view.Stats.UltimaSubmissao)

	some := new(MockSubmissionRepository)
	some.On("ListWithMentor", ctx).Return(submissionRows(), nil)
	view, err = services.NewAdminSubmissionsService(some).ListSubmissions(ctx, models.SubmissionsQuery{Query: "ninguém"})
	require.NoError(t, err)
	assert.Equal(t, models.EmptyStateNoResults, view.EstadoVazio)
	assert.Equal(t, 4, view.Total)
	assert.Equal(t, 0, view.Filtrados)
}

func TestAdminSubmissionsService_FetchError(t *testing.T) {
	repo := new(MockSubmissionRepository)
	ctx := context.Background()
	repo.On("ListWithMentor", ctx).Return(nil, errors.New("timeout"))

	view, err := services.NewAdminSubmissionsService(repo).ListSubmissions(ctx, models.SubmissionsQuery{})
	assert.Error(t, err)
	assert.Nil(t, view)
}
