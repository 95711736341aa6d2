package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/pkg/logger"
	"github.com/impulso-stone/mentores-api/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ListMentors fetches every mentor ordered by name
func (c *Client) ListMentors(ctx context.Context) ([]*models.Mentor, error) {
	query := `SELECT ` + models.MentorColumns + ` FROM mentores m ORDER BY m.nome ASC`
	return c.queryMentors(ctx, "listMentors", query)
}

// ListMentorsBySector fetches mentors whose sector contains sector, ignoring
// case, optionally only the available ones.
func (c *Client) ListMentorsBySector(ctx context.Context, sector string, onlyAvailable bool) ([]*models.Mentor, error) {
	query := `SELECT ` + models.MentorColumns + `
		FROM mentores m
		WHERE ($1 = '' OR m.setor ILIKE $2)
		  AND ($3 = false OR COALESCE(m.disponivel, true))
		ORDER BY m.nome ASC`

	sector = strings.TrimSpace(sector)
	return c.queryMentors(ctx, "listMentorsBySector", query, sector, containsPattern(sector), onlyAvailable)
}

func (c *Client) queryMentors(ctx context.Context, operation, query string, args ...interface{}) ([]*models.Mentor, error) {
	start := time.Now()

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall(ctx, "postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query mentors: %w", err)
	}
	defer rows.Close()

	mentors := make([]*models.Mentor, 0)
	for rows.Next() {
		mentor, err := models.ScanMentor(rows)
		if err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			logger.LogAPICall(ctx, "postgres", operation, "error", duration, zap.Error(err))
			return nil, fmt.Errorf("failed to scan mentor row: %w", err)
		}
		mentors = append(mentors, mentor)
	}

	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall(ctx, "postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("error iterating mentor rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall(ctx, "postgres", operation, "success", duration, zap.Int("count", len(mentors)))

	return mentors, nil
}

// GetMentor fetches a single mentor by ID
func (c *Client) GetMentor(ctx context.Context, id string) (*models.Mentor, error) {
	start := time.Now()
	operation := "getMentor"

	query := `SELECT ` + models.MentorColumns + ` FROM mentores m WHERE m.id = $1`
	mentor, err := models.ScanMentor(c.pool.QueryRow(ctx, query, id))

	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, models.ErrMentorNotFound
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall(ctx, "postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query mentor: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return mentor, nil
}

// SetMentorAvailability opens or closes a mentor for new submissions
func (c *Client) SetMentorAvailability(ctx context.Context, id string, disponivel bool) error {
	return c.execMentorUpdate(ctx, "setMentorAvailability",
		"UPDATE mentores SET disponivel = $1, updated_at = NOW() WHERE id = $2",
		disponivel, id)
}

// UpdateMentorPhoto stores a new photo URL for a mentor
func (c *Client) UpdateMentorPhoto(ctx context.Context, id, fotoURL string) error {
	return c.execMentorUpdate(ctx, "updateMentorPhoto",
		"UPDATE mentores SET foto_url = $1, updated_at = NOW() WHERE id = $2",
		fotoURL, id)
}

func (c *Client) execMentorUpdate(ctx context.Context, operation, query string, value interface{}, id string) error {
	start := time.Now()

	result, err := c.pool.Exec(ctx, query, value, id)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall(ctx, "postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to update mentor: %w", err)
	}

	if result.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return models.ErrMentorNotFound
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall(ctx, "postgres", operation, "success", duration, zap.String("mentor_id", id))

	return nil
}

// UpsertMentor inserts a mentor or replaces the profile of an existing one
// with the same ID. When another row already holds the mentor's email (case
// insensitive) that row is updated instead and m.ID is set to its ID.
// Availability is only set on insert so re-imports never reopen a mentor that
// was already chosen. Reports whether a row was created.
func (c *Client) UpsertMentor(ctx context.Context, m *models.Mentor) (bool, error) {
	start := time.Now()
	operation := "upsertMentor"

	fail := func(err error) (bool, error) {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall(ctx, "postgres", operation, "error", duration, zap.Error(err))
		return false, err
	}

	especialidades, err := json.Marshal(m.Especialidades)
	if err != nil {
		return false, fmt.Errorf("failed to encode especialidades: %w", err)
	}
	tags, err := json.Marshal(m.Tags)
	if err != nil {
		return false, fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `
		INSERT INTO mentores (
			id, nome, email, telefone, cidade, cargo_atual, empresa_atual, setor,
			especialidades, tags, descricao, experiencia_profissional, formacao_academica,
			disponibilidade, opcao_agenda_um, opcao_agenda_dois, opcao_agenda_tres,
			disponivel, foto_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (id) DO UPDATE SET
			nome = EXCLUDED.nome,
			email = EXCLUDED.email,
			telefone = EXCLUDED.telefone,
			cidade = EXCLUDED.cidade,
			cargo_atual = EXCLUDED.cargo_atual,
			empresa_atual = EXCLUDED.empresa_atual,
			setor = EXCLUDED.setor,
			especialidades = EXCLUDED.especialidades,
			tags = EXCLUDED.tags,
			descricao = EXCLUDED.descricao,
			experiencia_profissional = EXCLUDED.experiencia_profissional,
			formacao_academica = EXCLUDED.formacao_academica,
			disponibilidade = EXCLUDED.disponibilidade,
			opcao_agenda_um = EXCLUDED.opcao_agenda_um,
			opcao_agenda_dois = EXCLUDED.opcao_agenda_dois,
			opcao_agenda_tres = EXCLUDED.opcao_agenda_tres,
			foto_url = COALESCE(EXCLUDED.foto_url, mentores.foto_url),
			updated_at = NOW()
		RETURNING (xmax = 0) AS inserted`

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fail(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if m.Email != "" {
		var existingID string
		err := tx.QueryRow(ctx,
			`SELECT id::text FROM mentores WHERE lower(email) = lower($1) AND id::text <> $2 FOR UPDATE`,
			m.Email, m.ID,
		).Scan(&existingID)
		switch {
		case err == nil:
			logger.Info("Mentor matched an existing row by email",
				zap.String("import_id", m.ID),
				zap.String("mentor_id", existingID))
			m.ID = existingID
		case !errors.Is(err, pgx.ErrNoRows):
			return fail(fmt.Errorf("failed to look up mentor %s by email: %w", m.Nome, err))
		}
	}

	var inserted bool
	err = tx.QueryRow(ctx, query,
		m.ID, m.Nome, nullIfEmpty(m.Email), nullIfEmpty(m.Telefone), nullIfEmpty(m.Cidade),
		nullIfEmpty(m.CargoAtual), nullIfEmpty(m.EmpresaAtual), nullIfEmpty(m.Setor),
		especialidades, tags, nullIfEmpty(m.Descricao), nullIfEmpty(m.ExperienciaProfissional),
		nullIfEmpty(m.FormacaoAcademica), nullIfEmpty(m.Disponibilidade),
		nullIfEmpty(m.OpcaoAgendaUm), nullIfEmpty(m.OpcaoAgendaDois), nullIfEmpty(m.OpcaoAgendaTres),
		m.Disponivel, nullIfEmpty(m.FotoURL),
	).Scan(&inserted)
	if err != nil {
		return fail(fmt.Errorf("failed to upsert mentor %s: %w", m.Nome, err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fail(fmt.Errorf("failed to commit mentor %s: %w", m.Nome, err))
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return inserted, nil
}
