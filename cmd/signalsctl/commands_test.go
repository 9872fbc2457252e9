package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camuig/fx-signals/internal/storage"
)

func runCtl(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("MONGODB_URI", "")

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestDailyCommand_Mock(t *testing.T) {
	out := runCtl(t, "daily")

	assert.Contains(t, out, "(mock data)")
	assert.Contains(t, out, "GBP/USD")
	assert.Contains(t, out, "3 of 3 signals, total profit 52.70")
}

func TestDataCommand_Filters(t *testing.T) {
	out := runCtl(t, "data", "--type", "sell", "--search", "jpy")

	assert.Contains(t, out, "GBP/JPY")
	assert.Contains(t, out, "EUR/JPY")
	assert.NotContains(t, out, "USD/JPY")
	assert.Contains(t, out, "2 of 2 signals")
}

func TestMonthlyCommand_Search(t *testing.T) {
	out := runCtl(t, "monthly", "--search", "usd/cad")

	assert.Equal(t, 2, strings.Count(out, "USD/CAD"))
	assert.Contains(t, out, "total profit -0.27")
}

func TestContactsCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "site.db")

	out := runCtl(t, "--db", dbPath, "contacts")
	assert.Contains(t, out, "No contact messages.")

	db, err := storage.NewDatabase(dbPath)
	require.NoError(t, err)
	repo := storage.NewRepository(db)
	require.NoError(t, repo.SaveContactMessage(&storage.ContactMessage{
		Reference: "r1", Name: "Jane", Email: "jane@example.com", Subject: "VIP",
		Message: "Tell me more please", Status: storage.ContactSent,
	}))
	require.NoError(t, storage.CloseDatabase(db))

	out = runCtl(t, "--db", dbPath, "contacts")
	assert.Contains(t, out, "jane@example.com")
	assert.Contains(t, out, "sent 1, simulated 0, failed 0, pending 0")
}

func TestContactsShowCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "site.db")

	db, err := storage.NewDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, storage.NewRepository(db).SaveContactMessage(&storage.ContactMessage{
		Reference: "ref-42", Name: "Jane", Email: "jane@example.com", Subject: "VIP",
		Message: "Tell me more please", Status: storage.ContactFailed, LastError: "422 invalid from",
	}))
	require.NoError(t, storage.CloseDatabase(db))

	out := runCtl(t, "--db", dbPath, "contacts", "show", "ref-42")
	assert.Contains(t, out, "Jane <jane@example.com>")
	assert.Contains(t, out, "422 invalid from")
	assert.Contains(t, out, "Tell me more please")

	var buf bytes.Buffer
	cmd := newRootCmd(&buf)
	cmd.SetArgs([]string{"--db", dbPath, "contacts", "show", "missing"})
	assert.EqualError(t, cmd.Execute(), "contact message missing not found")
}
