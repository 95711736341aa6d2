package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/impulso-stone/mentores-api/internal/catalog"
	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directoryMentors() []*models.Mentor {
	return []*models.Mentor{
		{ID: "1", Nome: "Ana Silva", Setor: "Marketing Digital", Disponivel: true},
		{ID: "2", Nome: "Bruno Costa", Setor: "Vendas B2B", Disponivel: false},
		{ID: "3", Nome: "Carla Dias", Setor: "Marketing", Disponivel: false},
		{ID: "4", Nome: "Daniel", Setor: "", Especialidades: []string{"Fluxo de caixa"}, Disponivel: true},
		{ID: "5", Nome: "Mariana Lopes", Setor: "Comunicação", Disponivel: true},
	}
}

func TestMentorService_ListMentors(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewMentorService(mockRepo)
	ctx := context.Background()

	filter := models.MentorFilter{Query: "ana"}
	expected := directoryMentors()[:1]
	mockRepo.On("List", ctx, filter).Return(expected, nil).Once()

	mentors, err := service.ListMentors(ctx, filter)
	assert.NoError(t, err)
	assert.Equal(t, expected, mentors)
	mockRepo.AssertExpectations(t)
}

func TestMentorService_ListMentors_Error(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewMentorService(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx, models.MentorFilter{}).Return(nil, errors.New("connection refused")).Once()

	mentors, err := service.ListMentors(ctx, models.MentorFilter{})
	assert.EqualError(t, err, "connection refused")
	assert.Nil(t, mentors)
}

func TestMentorService_GetMentorDetails(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewMentorService(mockRepo)
	ctx := context.Background()

	mentor := &models.Mentor{
		ID:              "1",
		Nome:            "Ana Silva",
		Setor:           "Marketing Digital",
		Especialidades:  []string{"Finanças pessoais"},
		OpcaoAgendaUm:   "Segunda 10h",
		OpcaoAgendaTres: "Quarta 15h",
		Disponivel:      true,
	}
	mockRepo.On("GetByID", ctx, "1").Return(mentor, nil).Once()

	details, err := service.GetMentorDetails(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", details.Nome)
	assert.Equal(t, []string{"Segunda 10h", "Quarta 15h"}, details.Horarios)
	assert.Equal(t, []string{catalog.SlugMarketing, catalog.SlugFinancas}, details.Categorias)
	assert.True(t, details.PodeEscolher)
}

func TestMentorService_GetMentorDetails_UnavailableStillShown(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewMentorService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, "2").Return(&models.Mentor{ID: "2", Nome: "Bruno", Disponivel: false}, nil).Once()

	details, err := service.GetMentorDetails(ctx, "2")
	require.NoError(t, err)
	assert.False(t, details.PodeEscolher)
	assert.Empty(t, details.Categorias)
}

func TestMentorService_GetMentorDetails_NotFound(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewMentorService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, "999").Return(nil, models.ErrMentorNotFound).Once()

	details, err := service.GetMentorDetails(ctx, "999")
	assert.ErrorIs(t, err, models.ErrMentorNotFound)
	assert.Nil(t, details)
}

func TestMentorService_GetCategories(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewMentorService(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx, models.MentorFilter{}).Return(directoryMentors(), nil).Once()

	overview, err := service.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, overview.Categorias, 4)

	marketing := overview.Categorias[0]
	assert.Equal(t, catalog.SlugMarketing, marketing.Slug)
	assert.Equal(t, 3, marketing.Total)
	assert.Equal(t, 2, marketing.Disponiveis)
	assert.Equal(t, 5, overview.TotalMentores)
	assert.Equal(t, 3, overview.TotalDisponiveis)
}

func TestMentorService_GetCategoryMentors(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewMentorService(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx, models.MentorFilter{}).Return(directoryMentors(), nil)

	result, err := service.GetCategoryMentors(ctx, catalog.SlugMarketing, "")
	require.NoError(t, err)
	assert.Equal(t, "Comunicação e Marketing", result.Categoria.Nome)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Disponiveis)

	names := make([]string, 0, len(result.Mentores))
	for _, m := range result.Mentores {
		names = append(names, m.Nome)
	}
	assert.Equal(t, []string{"Ana Silva", "Mariana Lopes", "Carla Dias"}, names)

	searched, err := service.GetCategoryMentors(ctx, catalog.SlugMarketing, "ana")
	require.NoError(t, err)
	require.Len(t, searched.Mentores, 2)
	assert.Equal(t, 3, searched.Total)
}

func TestMentorService_GetCategoryMentors_UnknownSlug(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewMentorService(mockRepo)

	_, err := service.GetCategoryMentors(context.Background(), "culinaria", "")
	assert.ErrorIs(t, err, services.ErrCategoryNotFound)
	mockRepo.AssertNotCalled(t, "List")
}
