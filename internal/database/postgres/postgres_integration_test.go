//go:build integration

package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with:
//
//	TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/database/postgres/
func newIntegrationClient(t *testing.T) *Client {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, db.RunMigrations(url, "file://../../../migrations", db.Up))

	ctx := context.Background()
	pool, err := db.NewPool(ctx, db.PoolConfig{URL: url, MaxConns: 16, MinConns: 1})
	require.NoError(t, err)

	_, err = pool.Exec(ctx, "TRUNCATE mentor_submissions, mentores")
	require.NoError(t, err)

	client := NewClient(pool)
	t.Cleanup(client.Close)
	return client
}

func seedMentor(t *testing.T, c *Client, m *models.Mentor) {
	t.Helper()
	inserted, err := c.UpsertMentor(context.Background(), m)
	require.NoError(t, err)
	require.True(t, inserted)
}

func newSubmission(mentorID, requester string) *models.NewSubmission {
	return &models.NewSubmission{
		MentorID:         mentorID,
		NomeUsuario:      requester,
		EmailUsuario:     "joao@x.com",
		TelefoneUsuario:  "11912345678",
		HorarioEscolhido: "Terça 19h",
	}
}

func TestCreateSubmission_ClosesMentorInSameTransaction(t *testing.T) {
	c := newIntegrationClient(t)
	ctx := context.Background()

	mentorID := "7f9c2b1e-0d4a-4c55-9a51-3c1f0b7e2d10"
	seedMentor(t, c, &models.Mentor{ID: mentorID, Nome: "Ana Silva", Disponivel: true, OpcaoAgendaUm: "Terça 19h"})

	submission, locked, err := c.CreateSubmission(ctx, newSubmission(mentorID, "João"))
	require.NoError(t, err)
	assert.Equal(t, mentorID, submission.MentorID)
	assert.Equal(t, "Terça 19h", submission.HorarioEscolhido)
	assert.True(t, locked.Disponivel, "mentor is returned as read under the lock")

	mentor, err := c.GetMentor(ctx, mentorID)
	require.NoError(t, err)
	assert.False(t, mentor.Disponivel)

	_, _, err = c.CreateSubmission(ctx, newSubmission(mentorID, "Maria"))
	assert.ErrorIs(t, err, models.ErrMentorUnavailable)

	all, err := c.ListSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "João", all[0].NomeUsuario)
	assert.Equal(t, "Ana Silva", all[0].Mentor.Nome)
}

func TestCreateSubmission_ConcurrentChoosersOnlyOneWins(t *testing.T) {
	c := newIntegrationClient(t)
	ctx := context.Background()

	mentorID := "3a1d7c52-8b0e-4f6a-9c21-5d4e3f2a1b0c"
	seedMentor(t, c, &models.Mentor{ID: mentorID, Nome: "Bruno Costa", Disponivel: true})

	const choosers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		taken     int
	)
	for i := 0; i < choosers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := c.CreateSubmission(ctx, newSubmission(mentorID, "João"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, models.ErrMentorUnavailable):
				taken++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, choosers-1, taken)

	all, err := c.ListSubmissions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateSubmission_UnknownMentor(t *testing.T) {
	c := newIntegrationClient(t)

	_, _, err := c.CreateSubmission(context.Background(),
		newSubmission("00000000-0000-4000-8000-000000000000", "João"))
	assert.ErrorIs(t, err, models.ErrMentorNotFound)
}

func TestUpsertMentor_MatchesExistingEmailUnderAnotherID(t *testing.T) {
	c := newIntegrationClient(t)
	ctx := context.Background()

	handMadeID := "0b6f3d2a-94c1-4e7b-8d55-1f2e3a4b5c6d"
	seedMentor(t, c, &models.Mentor{ID: handMadeID, Nome: "Ana", Email: "ana@exemplo.com", Disponivel: false})

	imported := &models.Mentor{
		ID:         "9e8d7c6b-5a49-4382-a1b0-c9d8e7f6a5b4",
		Nome:       "Ana Silva",
		Email:      "Ana@Exemplo.com",
		Setor:      "Marketing Digital",
		Disponivel: true,
	}
	inserted, err := c.UpsertMentor(ctx, imported)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, handMadeID, imported.ID)

	mentors, err := c.ListMentors(ctx)
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Equal(t, "Ana Silva", mentors[0].Nome)
	assert.Equal(t, "Marketing Digital", mentors[0].Setor)
	assert.False(t, mentors[0].Disponivel, "re-import never reopens a mentor")
}
