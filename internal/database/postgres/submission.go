package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/pkg/logger"
	"github.com/impulso-stone/mentores-api/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CreateSubmission stores a submission and closes the mentor in one
// transaction. The mentor row is locked first so two requesters can never
// both take the same mentor. Returns the stored submission and the mentor as
// it was read under the lock.
func (c *Client) CreateSubmission(ctx context.Context, in *models.NewSubmission) (*models.Submission, *models.Mentor, error) {
	start := time.Now()
	operation := "createSubmission"

	fail := func(status string, err error) (*models.Submission, *models.Mentor, error) {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, status, duration)
		if status == "error" {
			logger.LogAPICall(ctx, "postgres", operation, status, duration,
				zap.String("mentor_id", in.MentorID), zap.Error(err))
		}
		return nil, nil, err
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fail("error", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	lockQuery := `SELECT ` + models.MentorColumns + ` FROM mentores m WHERE m.id = $1 FOR UPDATE`
	mentor, err := models.ScanMentor(tx.QueryRow(ctx, lockQuery, in.MentorID))
	if errors.Is(err, pgx.ErrNoRows) {
		return fail("not_found", models.ErrMentorNotFound)
	}
	if err != nil {
		return fail("error", fmt.Errorf("failed to lock mentor: %w", err))
	}

	if !mentor.Disponivel {
		return fail("conflict", models.ErrMentorUnavailable)
	}

	insertQuery := `
		INSERT INTO mentor_submissions AS s (
			mentor_id, nome_usuario, email_usuario, telefone_usuario, motivo, horario_escolhido
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + models.SubmissionColumns

	submission, err := models.ScanSubmission(tx.QueryRow(ctx, insertQuery,
		in.MentorID, in.NomeUsuario, in.EmailUsuario, in.TelefoneUsuario,
		nullIfEmpty(in.Motivo), nullIfEmpty(in.HorarioEscolhido),
	))
	if err != nil {
		return fail("error", fmt.Errorf("failed to insert submission: %w", err))
	}

	if _, err := tx.Exec(ctx,
		"UPDATE mentores SET disponivel = false, updated_at = NOW() WHERE id = $1",
		in.MentorID,
	); err != nil {
		return fail("error", fmt.Errorf("failed to close mentor: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fail("error", fmt.Errorf("failed to commit transaction: %w", err))
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall(ctx, "postgres", operation, "success", duration,
		zap.String("submission_id", submission.ID),
		zap.String("mentor_id", in.MentorID))

	return submission, mentor, nil
}

// ListSubmissions returns every submission joined with its mentor, newest first
func (c *Client) ListSubmissions(ctx context.Context) ([]*models.SubmissionWithMentor, error) {
	start := time.Now()
	operation := "listSubmissions"

	query := `SELECT ` + models.SubmissionWithMentorColumns + `
		FROM mentor_submissions s
		JOIN mentores m ON m.id = s.mentor_id
		ORDER BY s.data_submissao DESC`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall(ctx, "postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]*models.SubmissionWithMentor, 0)
	for rows.Next() {
		s, err := models.ScanSubmissionWithMentor(rows)
		if err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			logger.LogAPICall(ctx, "postgres", operation, "error", duration, zap.Error(err))
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		submissions = append(submissions, s)
	}

	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall(ctx, "postgres", operation, "success", duration, zap.Int("count", len(submissions)))

	return submissions, nil
}

// UpdateNotificationStatus records the delivery outcome of a submission's messages
func (c *Client) UpdateNotificationStatus(ctx context.Context, result models.DeliveryResult) error {
	start := time.Now()
	operation := "updateNotificationStatus"

	at := result.At
	if at.IsZero() {
		at = time.Now()
	}

	query := `
		UPDATE mentor_submissions
		SET notificacao_mentor = $1,
			notificacao_usuario = $2,
			notificacao_erro = $3,
			notificado_em = $4
		WHERE id = $5`

	tag, err := c.pool.Exec(ctx, query,
		string(result.Mentor), string(result.Requester),
		nullIfEmpty(result.Error), at, result.SubmissionID,
	)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall(ctx, "postgres", operation, "error", duration,
			zap.String("submission_id", result.SubmissionID), zap.Error(err))
		return fmt.Errorf("failed to update notification status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return models.ErrSubmissionNotFound
	}

	recordMetrics(operation, "success", duration)
	return nil
}
