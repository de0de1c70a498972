package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilbhatia/smsledger/internal/bank"
	"github.com/nikhilbhatia/smsledger/internal/classify"
	"github.com/nikhilbhatia/smsledger/internal/dedup"
	"github.com/nikhilbhatia/smsledger/internal/engine"
	"github.com/nikhilbhatia/smsledger/internal/model"
	"github.com/nikhilbhatia/smsledger/internal/storage"
)

func setupResolverTest(t *testing.T) (*engine.Engine, *storage.SQLiteStorage) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))

	eng := engine.New(store, classify.New(bank.DefaultRegistry()), dedup.NewDetector(store))
	return eng, store
}

func queueMessage(t *testing.T, eng *engine.Engine, body string) string {
	t.Helper()
	outcome, err := eng.Process(context.Background(), model.RawMessage{
		Sender:      "VM-UNKNWN",
		Body:        body,
		ReceivedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		OwnerUserID: "u1",
	})
	require.NoError(t, err)
	require.Equal(t, engine.StatusUnparsed, outcome.Status)
	return outcome.UnparsedID
}

func TestResolver_ResolveRecordsTransaction(t *testing.T) {
	eng, store := setupResolverTest(t)
	ctx := context.Background()

	queueMessage(t, eng, "Statement note: annual maintenance charge applied to account")
	msgs, err := store.ListUnparsedMessages(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	input := strings.NewReader("r\n250.00\ndebit\nBank Charges\n2025-02-28\n")
	var out bytes.Buffer
	resolver := NewResolver(input, &out, eng)

	require.NoError(t, resolver.Run(ctx, "u1", msgs))

	txns, err := store.ListTransactions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, model.TypeDebit, txns[0].Type)
	assert.Equal(t, "Bank Charges", txns[0].Merchant)
	assert.True(t, txns[0].ManualOrigin)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), txns[0].Date)
	assert.Contains(t, out.String(), "Recorded")

	remaining, err := store.ListUnparsedMessages(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestResolver_Discard(t *testing.T) {
	eng, store := setupResolverTest(t)
	ctx := context.Background()

	queueMessage(t, eng, "Statement note: annual maintenance charge applied to account")
	msgs, err := store.ListUnparsedMessages(ctx, "u1")
	require.NoError(t, err)

	var out bytes.Buffer
	resolver := NewResolver(strings.NewReader("d\n"), &out, eng)
	require.NoError(t, resolver.Run(ctx, "u1", msgs))

	remaining, err := store.ListUnparsedMessages(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	txns, err := store.ListTransactions(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, txns, "discard records nothing")
}

func TestResolver_QuitStopsEarly(t *testing.T) {
	eng, store := setupResolverTest(t)
	ctx := context.Background()

	queueMessage(t, eng, "Statement note: annual maintenance charge applied to account")
	queueMessage(t, eng, "Second note: locker rent reminder for the coming quarter")
	msgs, err := store.ListUnparsedMessages(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	var out bytes.Buffer
	resolver := NewResolver(strings.NewReader("q\n"), &out, eng)
	require.NoError(t, resolver.Run(ctx, "u1", msgs))

	remaining, err := store.ListUnparsedMessages(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, remaining, 2, "quit leaves the queue untouched")
}

func TestResolver_InvalidAmountReportedNotFatal(t *testing.T) {
	eng, store := setupResolverTest(t)
	ctx := context.Background()

	queueMessage(t, eng, "Statement note: annual maintenance charge applied to account")
	msgs, err := store.ListUnparsedMessages(ctx, "u1")
	require.NoError(t, err)

	var out bytes.Buffer
	resolver := NewResolver(strings.NewReader("r\nnot-a-number\n"), &out, eng)
	require.NoError(t, resolver.Run(ctx, "u1", msgs), "bad input is reported, not fatal")

	assert.Contains(t, out.String(), "invalid amount")

	remaining, err := store.ListUnparsedMessages(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestResolver_CancelledContext(t *testing.T) {
	eng, store := setupResolverTest(t)

	queueMessage(t, eng, "Statement note: annual maintenance charge applied to account")
	msgs, err := store.ListUnparsedMessages(context.Background(), "u1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resolver := NewResolver(strings.NewReader("r\n"), &bytes.Buffer{}, eng)
	assert.Error(t, resolver.Run(ctx, "u1", msgs))
}
