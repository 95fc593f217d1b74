package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jmcrae/debitdesk/pkg/models"
	"github.com/jmcrae/debitdesk/pkg/utils"
)

const (
	dueInvoicesPath       = "/api/invoices/due"
	mandatesPath          = "/api/mandates"
	unlinkedMandatesPath  = "/api/mandates/unlinked"
	eligibleCustomersPath = "/api/customers/eligible"
	linkMandatePath       = "/api/mandates/link"
	unlinkMandatePath     = "/api/mandates/unlink"
	syncMandatesPath      = "/api/mandates/sync"
	submitBatchPath       = "/api/payments/batch"
	cancelPaymentPath     = "/api/payments/cancel"
	syncStatusesPath      = "/api/payments/sync-statuses"
	paymentRequestsPath   = "/api/payments"
	statsPath             = "/api/payments/stats"
)

// BackendClient talks to the ledger backend. Every response is checked for
// its explicit success flag; a 2xx status alone proves nothing.
type BackendClient struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewBackendClient(baseURL, token string, debug bool) *BackendClient {
	client := &http.Client{Timeout: 30 * time.Second}
	if debug {
		client.Transport = utils.DebugRoundTripper()
	}
	return &BackendClient{
		client:  client,
		baseURL: baseURL,
		token:   token,
	}
}

func (c *BackendClient) ListDueInvoices(ctx context.Context, advanceDate string, mandateCustomersOnly bool) (*DueInvoices, error) {
	query := url.Values{}
	if advanceDate != "" {
		query.Set("advanceDate", advanceDate)
	}
	query.Set("mandateCustomersOnly", strconv.FormatBool(mandateCustomersOnly))

	var resp dueInvoicesResponse
	if err := c.get(ctx, dueInvoicesPath, query, &resp); err != nil {
		return nil, err
	}
	if err := resp.check("list due invoices"); err != nil {
		return nil, err
	}
	return &DueInvoices{Customers: resp.Customers, Summary: resp.Summary}, nil
}

func (c *BackendClient) ListMandates(ctx context.Context) ([]models.Mandate, error) {
	var resp mandatesResponse
	if err := c.get(ctx, mandatesPath, nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check("list mandates"); err != nil {
		return nil, err
	}
	return resp.Mandates, nil
}

func (c *BackendClient) ListUnlinkedMandates(ctx context.Context) ([]models.Mandate, error) {
	var resp mandatesResponse
	if err := c.get(ctx, unlinkedMandatesPath, nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check("list unlinked mandates"); err != nil {
		return nil, err
	}
	return resp.Mandates, nil
}

func (c *BackendClient) ListEligibleCustomers(ctx context.Context) (*EligibleCustomers, error) {
	var resp eligibleCustomersResponse
	if err := c.get(ctx, eligibleCustomersPath, nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check("list eligible customers"); err != nil {
		return nil, err
	}
	return &EligibleCustomers{
		Customers:           resp.Customers,
		WithMandateCount:    resp.WithMandateCount,
		WithoutMandateCount: resp.WithoutMandateCount,
	}, nil
}

func (c *BackendClient) LinkMandate(ctx context.Context, account, mandateID, displayName string) error {
	var resp statusEnvelope
	err := c.post(ctx, linkMandatePath, linkMandateRequest{
		Account:     account,
		MandateID:   mandateID,
		DisplayName: displayName,
	}, &resp)
	if err != nil {
		return err
	}
	return resp.check("link mandate")
}

func (c *BackendClient) UnlinkMandate(ctx context.Context, mandateID string) error {
	var resp statusEnvelope
	if err := c.post(ctx, unlinkMandatePath, unlinkMandateRequest{MandateID: mandateID}, &resp); err != nil {
		return err
	}
	return resp.check("unlink mandate")
}

func (c *BackendClient) SyncMandatesFromProvider(ctx context.Context) (string, error) {
	var resp syncResponse
	if err := c.post(ctx, syncMandatesPath, nil, &resp); err != nil {
		return "", err
	}
	if err := resp.check("sync mandates"); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *BackendClient) SubmitBatch(ctx context.Context, requests []models.PaymentRequest) (*BatchSummary, error) {
	var resp submitBatchResponse
	if err := c.post(ctx, submitBatchPath, submitBatchRequest{Requests: requests}, &resp); err != nil {
		return nil, err
	}
	if err := resp.check("submit batch"); err != nil {
		return nil, err
	}
	return &resp.Summary, nil
}

func (c *BackendClient) CancelPayment(ctx context.Context, requestID string) error {
	var resp statusEnvelope
	if err := c.post(ctx, cancelPaymentPath, cancelPaymentRequest{RequestID: requestID}, &resp); err != nil {
		return err
	}
	return resp.check("cancel payment")
}

func (c *BackendClient) SyncPaymentStatuses(ctx context.Context) (int, error) {
	var resp syncStatusesResponse
	if err := c.post(ctx, syncStatusesPath, nil, &resp); err != nil {
		return 0, err
	}
	if err := resp.check("sync payment statuses"); err != nil {
		return 0, err
	}
	return resp.UpdatedCount, nil
}

func (c *BackendClient) ListPaymentRequests(ctx context.Context, statusFilter string) ([]models.PaymentRecord, error) {
	query := url.Values{}
	if statusFilter != "" {
		query.Set("status", statusFilter)
	}
	var resp paymentRequestsResponse
	if err := c.get(ctx, paymentRequestsPath, query, &resp); err != nil {
		return nil, err
	}
	if err := resp.check("list payment requests"); err != nil {
		return nil, err
	}
	return resp.Requests, nil
}

func (c *BackendClient) GetPaymentStats(ctx context.Context) (*models.PaymentStats, error) {
	var resp statsResponse
	if err := c.get(ctx, statsPath, nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check("get payment stats"); err != nil {
		return nil, err
	}
	return &resp.Stats, nil
}

func (c *BackendClient) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *BackendClient) post(ctx context.Context, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *BackendClient) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("backend request")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
