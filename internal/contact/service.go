// Package contact validates contact form submissions, records them and
// forwards them by email.
package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/camuig/fx-signals/internal/logger"
	"github.com/camuig/fx-signals/internal/mail"
	"github.com/camuig/fx-signals/internal/storage"
	"github.com/camuig/fx-signals/internal/telegram"
)

// ErrDelivery is returned when the mail provider rejected the message.
var ErrDelivery = errors.New("contact delivery failed")

type Repository interface {
	SaveContactMessage(msg *storage.ContactMessage) error
	UpdateContactMessage(msg *storage.ContactMessage) error
}

type Notifier interface {
	NotifyContact(c telegram.Contact)
	NotifyError(source string, err error)
}

// Recorder counts submissions by outcome.
type Recorder interface {
	ContactSubmission(result string)
}

type Result struct {
	Reference string
	Status    string
	Message   string
}

type Service struct {
	repo     Repository
	mailer   mail.Mailer
	notifier Notifier
	recorder Recorder
	logger   *logger.Logger
}

func NewService(repo Repository, mailer mail.Mailer, notifier Notifier, recorder Recorder, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		mailer:   mailer,
		notifier: notifier,
		recorder: recorder,
		logger:   log,
	}
}

// Submit validates, stores and delivers one submission. A *ValidationError
// means the form was rejected; an error wrapping ErrDelivery means the mail
// provider failed.
func (s *Service) Submit(ctx context.Context, sub Submission, origin string) (*Result, error) {
	if err := sub.Validate(); err != nil {
		s.record("invalid")
		return nil, err
	}

	msg := &storage.ContactMessage{
		Reference: uuid.NewString(),
		Name:      sub.Name,
		Email:     sub.Email,
		Subject:   sub.Subject,
		Message:   sub.Message,
		Origin:    origin,
		Status:    storage.ContactPending,
	}
	log := s.logger.With("reference", msg.Reference)
	log.Info("contact form received", "email", sub.Email, "subject", sub.Subject, "message_length", len(sub.Message))

	s.save(log, msg)

	id, err := s.mailer.Send(ctx, mail.Message{
		Name:    sub.Name,
		Email:   sub.Email,
		Subject: sub.Subject,
		Body:    sub.Message,
	})

	result := &Result{Reference: msg.Reference}
	switch {
	case errors.Is(err, mail.ErrNotConfigured):
		log.Info("mail not configured, simulating delivery")
		msg.Status = storage.ContactSimulated
		result.Message = MsgSimulated
	case err != nil:
		log.Error("send contact email", "error", err)
		msg.Status = storage.ContactFailed
		msg.LastError = err.Error()
		if s.notifier != nil {
			s.notifier.NotifyError("contact "+msg.Reference, err)
		}
	default:
		msg.Status = storage.ContactSent
		msg.MailID = id
		result.Message = MsgSent
	}
	result.Status = msg.Status

	s.update(log, msg)
	s.notify(msg)
	s.record(msg.Status)

	if msg.Status == storage.ContactFailed {
		return nil, fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return result, nil
}

func (s *Service) save(log *logger.Logger, msg *storage.ContactMessage) {
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveContactMessage(msg); err != nil {
		log.Error("save contact message", "error", err)
	}
}

func (s *Service) update(log *logger.Logger, msg *storage.ContactMessage) {
	if s.repo == nil || msg.ID == 0 {
		return
	}
	if err := s.repo.UpdateContactMessage(msg); err != nil {
		log.Error("update contact message", "error", err)
	}
}

func (s *Service) notify(msg *storage.ContactMessage) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyContact(telegram.Contact{
		Reference: msg.Reference,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		Status:    msg.Status,
	})
}

func (s *Service) record(result string) {
	if s.recorder != nil {
		s.recorder.ContactSubmission(result)
	}
}
