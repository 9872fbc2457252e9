package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camuig/fx-signals/internal/logger"
	"github.com/camuig/fx-signals/internal/mail"
	"github.com/camuig/fx-signals/internal/storage"
	"github.com/camuig/fx-signals/internal/telegram"
)

type fakeMailer struct {
	id   string
	err  error
	sent []mail.Message
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) (string, error) {
	m.sent = append(m.sent, msg)
	return m.id, m.err
}

type memoryRepo struct {
	saved   []storage.ContactMessage
	updated []storage.ContactMessage
	saveErr error
}

func (r *memoryRepo) SaveContactMessage(msg *storage.ContactMessage) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	msg.ID = uint(len(r.saved) + 1)
	r.saved = append(r.saved, *msg)
	return nil
}

func (r *memoryRepo) UpdateContactMessage(msg *storage.ContactMessage) error {
	r.updated = append(r.updated, *msg)
	return nil
}

type fakeNotifier struct {
	contacts []telegram.Contact
	alerts   []string
}

func (n *fakeNotifier) NotifyContact(c telegram.Contact) { n.contacts = append(n.contacts, c) }

func (n *fakeNotifier) NotifyError(source string, err error) {
	n.alerts = append(n.alerts, source+": "+err.Error())
}

type countingRecorder struct{ results []string }

func (r *countingRecorder) ContactSubmission(result string) { r.results = append(r.results, result) }

func TestService_SubmitSent(t *testing.T) {
	repo := &memoryRepo{}
	mailer := &fakeMailer{id: "mail-1"}
	notifier := &fakeNotifier{}
	rec := &countingRecorder{}
	svc := NewService(repo, mailer, notifier, rec, logger.Discard())

	res, err := svc.Submit(context.Background(), validSubmission(), "http://localhost:3000")
	require.NoError(t, err)

	assert.Equal(t, MsgSent, res.Message)
	assert.Equal(t, storage.ContactSent, res.Status)
	assert.NotEmpty(t, res.Reference)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, mail.Message{
		Name:    "Jane Trader",
		Email:   "jane@example.com",
		Subject: "Premium signals",
		Body:    "How do I join the VIP channel?",
	}, mailer.sent[0])

	require.Len(t, repo.saved, 1)
	assert.Equal(t, storage.ContactPending, repo.saved[0].Status)
	assert.Equal(t, "http://localhost:3000", repo.saved[0].Origin)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, storage.ContactSent, repo.updated[0].Status)
	assert.Equal(t, "mail-1", repo.updated[0].MailID)
	assert.Equal(t, res.Reference, repo.updated[0].Reference)

	require.Len(t, notifier.contacts, 1)
	assert.Equal(t, storage.ContactSent, notifier.contacts[0].Status)
	assert.Empty(t, notifier.alerts)
	assert.Equal(t, []string{storage.ContactSent}, rec.results)
}

func TestService_SubmitSimulated(t *testing.T) {
	repo := &memoryRepo{}
	rec := &countingRecorder{}
	svc := NewService(repo, &fakeMailer{err: mail.ErrNotConfigured}, nil, rec, logger.Discard())

	res, err := svc.Submit(context.Background(), validSubmission(), "")
	require.NoError(t, err)

	assert.Equal(t, MsgSimulated, res.Message)
	assert.Equal(t, storage.ContactSimulated, res.Status)
	assert.Equal(t, storage.ContactSimulated, repo.updated[0].Status)
	assert.Equal(t, []string{storage.ContactSimulated}, rec.results)
}

func TestService_SubmitDeliveryFailure(t *testing.T) {
	repo := &memoryRepo{}
	rec := &countingRecorder{}
	notifier := &fakeNotifier{}
	svc := NewService(repo, &fakeMailer{err: errors.New("422 invalid from")}, notifier, rec, logger.Discard())

	res, err := svc.Submit(context.Background(), validSubmission(), "")

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrDelivery)
	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, "contact "+repo.saved[0].Reference+": 422 invalid from", notifier.alerts[0])
	require.Len(t, notifier.contacts, 1)
	assert.Equal(t, storage.ContactFailed, notifier.contacts[0].Status)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, storage.ContactFailed, repo.updated[0].Status)
	assert.Contains(t, repo.updated[0].LastError, "422 invalid from")
	assert.Equal(t, []string{storage.ContactFailed}, rec.results)
}

func TestService_SubmitInvalid(t *testing.T) {
	repo := &memoryRepo{}
	mailer := &fakeMailer{}
	rec := &countingRecorder{}
	svc := NewService(repo, mailer, nil, rec, logger.Discard())

	sub := validSubmission()
	sub.Message = "short"
	res, err := svc.Submit(context.Background(), sub, "")

	assert.Nil(t, res)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgTooShort, verr.Message)
	assert.Empty(t, mailer.sent)
	assert.Empty(t, repo.saved)
	assert.Equal(t, []string{"invalid"}, rec.results)
}

func TestService_StorageFailureStillDelivers(t *testing.T) {
	repo := &memoryRepo{saveErr: errors.New("disk full")}
	mailer := &fakeMailer{id: "mail-2"}
	svc := NewService(repo, mailer, nil, nil, logger.Discard())

	res, err := svc.Submit(context.Background(), validSubmission(), "")
	require.NoError(t, err)

	assert.Equal(t, MsgSent, res.Message)
	assert.Len(t, mailer.sent, 1)
	assert.Empty(t, repo.updated)
}
