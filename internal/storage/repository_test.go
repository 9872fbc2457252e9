package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })
	return NewRepository(db)
}

func TestRepository_SaveAndUpdateContactMessage(t *testing.T) {
	repo := newTestRepository(t)

	msg := &ContactMessage{
		Reference: "ref-1",
		Name:      "Jane Trader",
		Email:     "jane@example.com",
		Subject:   "VIP access",
		Message:   "How do I join the premium channel?",
		Status:    ContactPending,
	}
	require.NoError(t, repo.SaveContactMessage(msg))
	require.NotZero(t, msg.ID)

	msg.Status = ContactSent
	msg.MailID = "mail-123"
	require.NoError(t, repo.UpdateContactMessage(msg))

	got, err := repo.GetContactMessage("ref-1")
	require.NoError(t, err)
	assert.Equal(t, ContactSent, got.Status)
	assert.Equal(t, "mail-123", got.MailID)
	assert.Equal(t, "jane@example.com", got.Email)
}

func TestRepository_DuplicateReferenceRejected(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.SaveContactMessage(&ContactMessage{Reference: "dup", Name: "a", Email: "a@b.co", Subject: "s", Message: "long enough"}))
	err := repo.SaveContactMessage(&ContactMessage{Reference: "dup", Name: "b", Email: "b@b.co", Subject: "s", Message: "long enough"})
	assert.Error(t, err)
}

func TestRepository_RecentContactMessages(t *testing.T) {
	repo := newTestRepository(t)

	base := time.Date(2025, 8, 30, 9, 0, 0, 0, time.UTC)
	for i, ref := range []string{"first", "second", "third"} {
		require.NoError(t, repo.SaveContactMessage(&ContactMessage{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Reference: ref,
			Name:      "n",
			Email:     "n@example.com",
			Subject:   "s",
			Message:   "a long enough message",
			Status:    ContactPending,
		}))
	}

	msgs, err := repo.RecentContactMessages(2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "third", msgs[0].Reference)
	assert.Equal(t, "second", msgs[1].Reference)
}

func TestRepository_CountContactMessagesByStatus(t *testing.T) {
	repo := newTestRepository(t)

	for i, status := range []string{ContactSent, ContactSent, ContactFailed, ContactSimulated} {
		require.NoError(t, repo.SaveContactMessage(&ContactMessage{
			Reference: string(rune('a' + i)),
			Name:      "n",
			Email:     "n@example.com",
			Subject:   "s",
			Message:   "a long enough message",
			Status:    status,
		}))
	}

	counts, err := repo.CountContactMessagesByStatus()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		ContactSent:      2,
		ContactFailed:    1,
		ContactSimulated: 1,
	}, counts)
}

func TestRepository_GetContactMessageMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetContactMessage("nope")
	assert.Error(t, err)
}
