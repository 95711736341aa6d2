package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/internal/notifier"
	"github.com/impulso-stone/mentores-api/internal/repository"
	"github.com/impulso-stone/mentores-api/pkg/logger"
	"github.com/impulso-stone/mentores-api/pkg/metrics"
	"github.com/impulso-stone/mentores-api/pkg/phone"
	"github.com/impulso-stone/mentores-api/pkg/sanitize"
	"go.uber.org/zap"
)

const (
	minNameLength   = 2
	maxNameLength   = 120
	maxMotivoLength = 2000
)

// SubmissionService runs the choose-mentor workflow
type SubmissionService struct {
	mentorRepo     repository.MentorRepositoryInterface
	submissionRepo repository.SubmissionRepositoryInterface
	notifications  notifier.Enqueuer
	validate       *validator.Validate
	now            func() time.Time
}

// NewSubmissionService creates the service. A nil enqueuer disables
// notifications; submissions are then marked skipped.
func NewSubmissionService(
	mentorRepo repository.MentorRepositoryInterface,
	submissionRepo repository.SubmissionRepositoryInterface,
	notifications notifier.Enqueuer,
) *SubmissionService {
	return &SubmissionService{
		mentorRepo:     mentorRepo,
		submissionRepo: submissionRepo,
		notifications:  notifications,
		validate:       validator.New(),
		now:            time.Now,
	}
}

// ChooseMentor validates the form, stores the submission and closes the
// mentor atomically, then queues the WhatsApp notifications. Nothing is
// written when validation fails.
func (s *SubmissionService) ChooseMentor(ctx context.Context, mentorID string, req *models.ChooseMentorRequest) (*models.ChooseMentorResponse, error) {
	wf := models.NewWorkflow()

	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	step(wf, models.StateDetailsOpen)

	if !mentor.Disponivel {
		metrics.MentorSubmissions.WithLabelValues("unavailable").Inc()
		return nil, models.ErrMentorUnavailable
	}
	step(wf, models.StateFormOpen)

	input, err := s.validateRequest(mentor, req)
	if err != nil {
		metrics.MentorSubmissions.WithLabelValues("invalid").Inc()
		return nil, err
	}
	step(wf, models.StateSubmitting)

	submission, lockedMentor, err := s.submissionRepo.Create(ctx, input)
	if err != nil {
		step(wf, models.StateFailure)

		if errors.Is(err, models.ErrMentorUnavailable) {
			metrics.MentorSubmissions.WithLabelValues("unavailable").Inc()
			s.mentorRepo.InvalidateCache()
			return nil, err
		}
		if errors.Is(err, models.ErrMentorNotFound) {
			metrics.MentorSubmissions.WithLabelValues("not_found").Inc()
			return nil, err
		}

		metrics.MentorSubmissions.WithLabelValues("error").Inc()
		logger.Error("Failed to store submission",
			zap.String("mentor_id", mentorID),
			zap.String("estado", string(wf.State())),
			zap.Error(err))
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}
	step(wf, models.StateSuccess)

	metrics.MentorSubmissions.WithLabelValues("success").Inc()
	s.mentorRepo.InvalidateCache()

	logger.Info("Mentor chosen",
		zap.String("submission_id", submission.ID),
		zap.String("mentor_id", mentorID))

	return &models.ChooseMentorResponse{
		Submission:  submission,
		Estado:      wf.State(),
		Notificacao: s.notify(ctx, submission, lockedMentor),
	}, nil
}

// step moves wf along the choose path. ChooseMentor only takes legal steps,
// so the transition error is ignored.
func step(wf *models.Workflow, next models.WorkflowState) {
	_ = wf.Advance(next) //nolint:errcheck // every call site follows workflowTransitions
}

func (s *SubmissionService) notify(ctx context.Context, submission *models.Submission, mentor *models.Mentor) string {
	if s.notifications == nil {
		result := models.DeliveryResult{
			SubmissionID: submission.ID,
			Mentor:       models.NotificationSkipped,
			Requester:    models.NotificationSkipped,
			Error:        "notifications disabled",
			At:           s.now(),
		}
		if err := s.submissionRepo.UpdateDeliveryStatus(ctx, result); err != nil {
			logger.Warn("Failed to record skipped notifications",
				zap.String("submission_id", submission.ID),
				zap.Error(err))
		}
		return models.NotificationDisabled
	}

	err := s.notifications.Enqueue(ctx, notifier.Job{Submission: submission, Mentor: mentor})
	if err != nil {
		logger.Warn("Notification not queued",
			zap.String("submission_id", submission.ID),
			zap.Error(err))
		return models.NotificationDropped
	}

	return models.NotificationQueued
}

// validateRequest checks the form against the mentor and returns the
// cleaned submission. Every failing field is reported at once.
func (s *SubmissionService) validateRequest(mentor *models.Mentor, req *models.ChooseMentorRequest) (*models.NewSubmission, error) {
	fields := map[string]string{}

	nome := sanitize.Text(req.NomeUsuario)
	switch n := utf8.RuneCountInString(nome); {
	case n == 0:
		fields["nome_usuario"] = "nome é obrigatório"
	case n < minNameLength || n > maxNameLength:
		fields["nome_usuario"] = fmt.Sprintf("nome deve ter entre %d e %d caracteres", minNameLength, maxNameLength)
	}

	email := strings.TrimSpace(req.EmailUsuario)
	if email == "" {
		fields["email_usuario"] = "e-mail é obrigatório"
	} else if err := s.validate.Var(email, "email"); err != nil {
		fields["email_usuario"] = "e-mail inválido"
	}

	telefone, err := phone.Validate(req.TelefoneUsuario)
	switch {
	case errors.Is(err, phone.ErrEmptyPhone):
		fields["telefone_usuario"] = "telefone é obrigatório"
	case err != nil:
		fields["telefone_usuario"] = "telefone deve ter entre 10 e 15 dígitos"
	}

	motivo := sanitize.Text(req.Motivo)
	if utf8.RuneCountInString(motivo) > maxMotivoLength {
		fields["motivo"] = fmt.Sprintf("motivo deve ter no máximo %d caracteres", maxMotivoLength)
	}

	horario := strings.TrimSpace(req.HorarioEscolhido)
	slots := mentor.ScheduleSlots()
	switch {
	case len(slots) > 0 && horario == "":
		fields["horario_escolhido"] = "escolha um dos horários disponíveis"
	case horario != "" && !mentor.HasSlot(horario):
		fields["horario_escolhido"] = "horário não corresponde a nenhuma opção do mentor"
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	return &models.NewSubmission{
		MentorID:         mentor.ID,
		NomeUsuario:      nome,
		EmailUsuario:     email,
		TelefoneUsuario:  telefone,
		Motivo:           motivo,
		HorarioEscolhido: horario,
	}, nil
}
