package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/mq"
)

const resetKind = "password_reset"

// ResetJob is the queued form of a password reset email.
type ResetJob struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type Sender interface {
	SendPasswordReset(ctx context.Context, email, otp string) error
}

// QueueMailer hands reset emails to the broker instead of sending inline.
// A publish error is reported to the caller like an SMTP failure would be.
type QueueMailer struct {
	backend mq.Backend
	queue   string
}

func NewQueueMailer(backend mq.Backend, queue string) *QueueMailer {
	return &QueueMailer{backend: backend, queue: queue}
}

func (q *QueueMailer) SendPasswordReset(ctx context.Context, email, otp string) error {
	payload, err := json.Marshal(ResetJob{Email: email, OTP: otp})
	if err != nil {
		return err
	}
	if _, err := q.backend.Publish(ctx, q.queue, payload, map[string]string{"kind": resetKind}); err != nil {
		return fmt.Errorf("publish reset mail: %w", err)
	}
	return nil
}

// Worker drains the queue and delivers each job through sender.
type Worker struct {
	backend mq.Backend
	queue   string
	sender  Sender
}

func NewWorker(backend mq.Backend, queue string, sender Sender) *Worker {
	return &Worker{backend: backend, queue: queue, sender: sender}
}

func (w *Worker) Run(ctx context.Context) error {
	if w.sender == nil {
		return ErrNoSender
	}
	return w.backend.Subscribe(ctx, w.queue, w.Handle)
}

// Handle delivers one job. Malformed jobs are logged and acknowledged so they
// are not redelivered forever.
func (w *Worker) Handle(ctx context.Context, msg mq.Message) error {
	logger := zerolog.Ctx(ctx).With().Str("message_id", msg.ID).Logger()
	if kind := msg.Attributes["kind"]; kind != "" && kind != resetKind {
		logger.Warn().Str("kind", kind).Msg("skipping unknown mail job")
		return nil
	}
	var job ResetJob
	if err := json.Unmarshal(msg.Data, &job); err != nil || job.Email == "" || job.OTP == "" {
		logger.Error().Err(err).Msg("dropping malformed reset mail job")
		return nil
	}
	if err := w.sender.SendPasswordReset(ctx, job.Email, job.OTP); err != nil {
		logger.Error().Err(err).Msg("reset mail delivery failed")
		return err
	}
	logger.Info().Msg("reset mail delivered")
	return nil
}

var ErrNoSender = errors.New("mail worker requires an smtp sender")
