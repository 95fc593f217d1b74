package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcrae/debitdesk/pkg/models"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *BackendClient) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewBackendClient(server.URL, "test-token", false)
}

func TestListDueInvoices(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, dueInvoicesPath, r.URL.Path)
		assert.Equal(t, "2026-03-09", r.URL.Query().Get("advanceDate"))
		assert.Equal(t, "true", r.URL.Query().Get("mandateCustomersOnly"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"customers": []map[string]any{
				{
					"account": "C1", "name": "Acme Widgets", "mandateId": "MD1",
					"invoices": []map[string]any{
						{
							"account": "C1", "reference": "I1", "dueDate": "2026-03-05",
							"amount":  map[string]string{"value": "10.00", "currency": "GBP"},
							"overdue": true, "hasMandate": true,
						},
					},
				},
			},
			"summary": map[string]any{
				"invoiceCount": 1, "customerCount": 1, "overdueCount": 1,
				"totalDue": map[string]string{"value": "10.00", "currency": "GBP"},
			},
		})
	})

	due, err := client.ListDueInvoices(context.Background(), "2026-03-09", true)
	require.NoError(t, err)
	require.Len(t, due.Customers, 1)
	assert.Equal(t, "C1", due.Customers[0].Account)
	assert.True(t, due.Customers[0].HasMandate())
	require.Len(t, due.Flatten(), 1)
	assert.Equal(t, "C1:I1", due.Flatten()[0].Key())
	assert.Equal(t, 1, due.Summary.OverdueCount)
}

func TestBackendFailureOn2xx(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "mandate already linked to C9",
		})
	})

	err := client.LinkMandate(context.Background(), "C1", "MD1", "")
	require.Error(t, err)

	var backendErr *BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, "mandate already linked to C9", backendErr.Message)
}

func TestTransportFailureIsNotBackendError(t *testing.T) {
	server, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.ListMandates(context.Background())
	require.Error(t, err)

	var backendErr *BackendError
	assert.False(t, errors.As(err, &backendErr))
}

func TestNon2xxStatus(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	})

	_, err := client.GetPaymentStats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "504")
}

func TestSubmitBatchReportsPartialSummary(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req submitBatchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 2)
		assert.Equal(t, int64(1501), req.Requests[0].AmountMinorUnits)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"summary": map[string]int{"succeeded": 1, "failed": 1},
		})
	})

	summary, err := client.SubmitBatch(context.Background(), []models.PaymentRequest{
		{Account: "C1", InvoiceReferences: []string{"I1", "I2"}, AmountMinorUnits: 1501},
		{Account: "C2", InvoiceReferences: []string{"I3"}, AmountMinorUnits: 333},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
}

func TestListPaymentRequestsFilter(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"requests": []map[string]any{
				{"id": "PR1", "account": "C1", "status": "pending"},
			},
		})
	})

	records, err := client.ListPaymentRequests(context.Background(), "pending")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "PR1", records[0].ID)
}

func TestSyncMandates(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, syncMandatesPath, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "synced 4 mandates",
		})
	})

	msg, err := client.SyncMandatesFromProvider(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "synced 4 mandates", msg)
}
