package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcrae/debitdesk/pkg/cache"
	"github.com/jmcrae/debitdesk/pkg/http"
	"github.com/jmcrae/debitdesk/pkg/models"
)

// fetch-counting client for verifying reads go through the cache
type countingClient struct {
	*http.MockBackendClient
	dueCalls int
}

func (c *countingClient) ListDueInvoices(ctx context.Context, advanceDate string, mandateCustomersOnly bool) (*http.DueInvoices, error) {
	c.dueCalls++
	return c.MockBackendClient.ListDueInvoices(ctx, advanceDate, mandateCustomersOnly)
}

func TestDueInvoicesCachedPerDateAndOptions(t *testing.T) {
	client := &countingClient{MockBackendClient: http.NewMockBackendClient()}
	queries := NewQueries(client, cache.New(nil))

	_, err := queries.DueInvoices(context.Background(), "2026-03-09", true)
	require.NoError(t, err)
	_, err = queries.DueInvoices(context.Background(), "2026-03-09", true)
	require.NoError(t, err)
	assert.Equal(t, 1, client.dueCalls, "repeat read should hit the cache")

	_, err = queries.DueInvoices(context.Background(), "2026-03-09", false)
	require.NoError(t, err)
	assert.Equal(t, 2, client.dueCalls, "different options are a different entry")

	_, err = queries.DueInvoices(context.Background(), "2026-03-16", true)
	require.NoError(t, err)
	assert.Equal(t, 3, client.dueCalls, "different date is a different entry")
}

func TestDueInvoicesDefaultsToToday(t *testing.T) {
	client := &countingClient{MockBackendClient: http.NewMockBackendClient()}
	queries := NewQueries(client, cache.New(nil))

	_, err := queries.DueInvoices(context.Background(), "", false)
	require.NoError(t, err)

	today := time.Now().Format(time.DateOnly)
	_, ok := queries.Cache().Peek(cache.KindDueInvoices, dueInvoicesKey(today, false))
	assert.True(t, ok, "empty date should be keyed as today")
}

func TestSubmitInvalidatesTodaysSnapshotOnly(t *testing.T) {
	client := &countingClient{MockBackendClient: http.NewMockBackendClient()}
	queries := NewQueries(client, cache.New(nil))

	today := time.Now().Format(time.DateOnly)
	_, err := queries.DueInvoices(context.Background(), today, true)
	require.NoError(t, err)
	_, err = queries.DueInvoices(context.Background(), "2031-01-01", true)
	require.NoError(t, err)

	queries.Cache().ApplyMutation(cache.MutationSubmitBatch)

	_, ok := queries.Cache().Peek(cache.KindDueInvoices, dueInvoicesKey(today, true))
	assert.False(t, ok, "today's snapshot must be refetched after a submit")
	_, ok = queries.Cache().Peek(cache.KindDueInvoices, dueInvoicesKey("2031-01-01", true))
	assert.True(t, ok, "future-dated snapshots survive a submit")
}

func TestQueriesPassThroughValues(t *testing.T) {
	client := http.NewMockBackendClient()
	client.Mandates = []models.Mandate{{ID: "MD1", Status: models.MandateActive}}
	client.Stats = &models.PaymentStats{ActiveMandates: 7}
	client.PaymentRecords = []models.PaymentRecord{{ID: "PR1"}}
	queries := NewQueries(client, cache.New(nil))

	mandates, err := queries.Mandates(context.Background())
	require.NoError(t, err)
	require.Len(t, mandates, 1)
	assert.Equal(t, models.MandateActive, mandates[0].Status)

	stats, err := queries.PaymentStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, stats.ActiveMandates)

	records, err := queries.PaymentRequests(context.Background(), "pending")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "PR1", records[0].ID)
}
