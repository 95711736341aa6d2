// Package notifier delivers WhatsApp notifications for accepted submissions
// on a small pool of background workers.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/pkg/circuitbreaker"
	"github.com/impulso-stone/mentores-api/pkg/logger"
	"github.com/impulso-stone/mentores-api/pkg/metrics"
	"github.com/impulso-stone/mentores-api/pkg/whatsapp"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var (
	// ErrQueueFull is returned by Enqueue when no slot is free
	ErrQueueFull = errors.New("notification queue full")

	// ErrStopped is returned by Enqueue after Stop
	ErrStopped = errors.New("notification dispatcher stopped")
)

const (
	recipientMentor    = "mentor"
	recipientRequester = "requester"
)

// Job is one accepted submission to notify about
type Job struct {
	Submission *models.Submission
	Mentor     *models.Mentor
}

// StatusRecorder persists delivery outcomes
type StatusRecorder interface {
	UpdateDeliveryStatus(ctx context.Context, result models.DeliveryResult) error
}

// Enqueuer is what the submission service depends on
type Enqueuer interface {
	Enqueue(ctx context.Context, job Job) error
}

// Config holds dispatcher settings
type Config struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
}

// Dispatcher fans jobs out to workers. Each job sends the mentor message and
// then the requester message, once each.
type Dispatcher struct {
	sender   whatsapp.Sender
	recorder StatusRecorder
	breaker  *gobreaker.CircuitBreaker
	queue    chan Job
	workers  int
	timeout  time.Duration
	now      func() time.Time

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu      sync.RWMutex
	started bool
	closed  bool
}

var _ Enqueuer = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher. Start must be called before jobs run.
func NewDispatcher(sender whatsapp.Sender, recorder StatusRecorder, cfg Config) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 30 * time.Second
	}

	baseCtx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		sender:   sender,
		recorder: recorder,
		breaker:  circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("whatsapp")),
		queue:    make(chan Job, cfg.QueueSize),
		workers:  cfg.Workers,
		timeout:  cfg.SendTimeout,
		now:      time.Now,
		baseCtx:  baseCtx,
		cancel:   cancel,
	}
}

// Start launches the workers
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.closed {
		return
	}
	d.started = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	logger.Info("Notification dispatcher started",
		zap.Int("workers", d.workers),
		zap.Int("queue_size", cap(d.queue)))
}

// Enqueue hands a job to the workers without blocking. When the queue is
// full both messages are recorded as failed and ErrQueueFull is returned.
func (d *Dispatcher) Enqueue(ctx context.Context, job Job) error {
	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		return ErrStopped
	}

	select {
	case d.queue <- job:
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))
		d.mu.RUnlock()
		return nil
	default:
		d.mu.RUnlock()
	}

	logger.Warn("Notification queue full, dropping job",
		zap.String("submission_id", job.Submission.ID))
	metrics.NotificationsSent.WithLabelValues(recipientMentor, string(models.NotificationFailed)).Inc()
	metrics.NotificationsSent.WithLabelValues(recipientRequester, string(models.NotificationFailed)).Inc()

	d.record(ctx, models.DeliveryResult{
		SubmissionID: job.Submission.ID,
		Mentor:       models.NotificationFailed,
		Requester:    models.NotificationFailed,
		Error:        ErrQueueFull.Error(),
		At:           d.now(),
	})

	return ErrQueueFull
}

// Stop refuses new jobs and waits for queued ones to finish. If ctx expires
// first, in-flight sends are cancelled and ctx's error is returned.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		d.cancel()
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		logger.Info("Notification dispatcher drained")
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		logger.Warn("Notification dispatcher stopped before draining", zap.Error(ctx.Err()))
		return ctx.Err()
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for job := range d.queue {
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))

		var result models.DeliveryResult
		if d.baseCtx.Err() != nil {
			result = models.DeliveryResult{
				SubmissionID: job.Submission.ID,
				Mentor:       models.NotificationFailed,
				Requester:    models.NotificationFailed,
				Error:        ErrStopped.Error(),
				At:           d.now(),
			}
		} else {
			result = d.deliver(job)
		}
		d.record(d.baseCtx, result)

		logger.Debug("Notification job finished",
			zap.Int("worker", id),
			zap.String("submission_id", result.SubmissionID),
			zap.String("mentor_status", string(result.Mentor)),
			zap.String("requester_status", string(result.Requester)))
	}
}

// deliver sends both messages of a job and reports what happened to each
func (d *Dispatcher) deliver(job Job) models.DeliveryResult {
	sub := job.Submission
	data := messageData{
		MentorNome:        job.Mentor.Nome,
		RequesterNome:     sub.NomeUsuario,
		RequesterTelefone: sub.TelefoneUsuario,
		RequesterEmail:    sub.EmailUsuario,
		Horario:           sub.HorarioEscolhido,
	}

	var failures []string

	mentorStatus, err := d.send(recipientMentor, job.Mentor.Telefone, mentorTemplate, data, sub.ID)
	if err != nil {
		failures = append(failures, fmt.Sprintf("%s: %v", recipientMentor, err))
	}

	requesterStatus, err := d.send(recipientRequester, sub.TelefoneUsuario, requesterTemplate, data, sub.ID)
	if err != nil {
		failures = append(failures, fmt.Sprintf("%s: %v", recipientRequester, err))
	}

	return models.DeliveryResult{
		SubmissionID: sub.ID,
		Mentor:       mentorStatus,
		Requester:    requesterStatus,
		Error:        strings.Join(failures, "; "),
		At:           d.now(),
	}
}

func (d *Dispatcher) send(recipient, number string, tmpl *template.Template, data messageData, submissionID string) (models.NotificationStatus, error) {
	if strings.TrimSpace(number) == "" {
		metrics.NotificationsSent.WithLabelValues(recipient, string(models.NotificationSkipped)).Inc()
		logger.Warn("No phone number for notification, skipping",
			zap.String("recipient", recipient),
			zap.String("submission_id", submissionID))
		return models.NotificationSkipped, nil
	}

	text, err := render(tmpl, data)
	if err != nil {
		metrics.NotificationsSent.WithLabelValues(recipient, string(models.NotificationFailed)).Inc()
		return models.NotificationFailed, fmt.Errorf("failed to render message: %w", err)
	}

	ctx, cancel := context.WithTimeout(d.baseCtx, d.timeout)
	defer cancel()

	_, err = circuitbreaker.Execute(d.breaker, func() (struct{}, error) {
		return struct{}{}, d.sender.SendText(ctx, number, text)
	})
	if err != nil {
		metrics.NotificationsSent.WithLabelValues(recipient, string(models.NotificationFailed)).Inc()
		logger.Warn("Failed to send notification",
			zap.String("recipient", recipient),
			zap.String("submission_id", submissionID),
			zap.Error(err))
		return models.NotificationFailed, err
	}

	metrics.NotificationsSent.WithLabelValues(recipient, string(models.NotificationSent)).Inc()
	return models.NotificationSent, nil
}

func (d *Dispatcher) record(ctx context.Context, result models.DeliveryResult) {
	if d.recorder == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := d.recorder.UpdateDeliveryStatus(ctx, result); err != nil {
		logger.Error("Failed to record notification status",
			zap.String("submission_id", result.SubmissionID),
			zap.Error(err))
	}
}
