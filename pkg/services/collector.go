package services

import (
	"context"
	"fmt"

	"github.com/jmcrae/debitdesk/pkg/batch"
	"github.com/jmcrae/debitdesk/pkg/cache"
	"github.com/jmcrae/debitdesk/pkg/http"
	"github.com/jmcrae/debitdesk/pkg/models"
	"github.com/jmcrae/debitdesk/pkg/selection"
)

// Outcome reports a submitted batch at per-request granularity. The batch is
// not all-or-nothing: Succeeded < Total is a partial result, not a failure.
type Outcome struct {
	Succeeded int
	Total     int
}

func (o Outcome) String() string {
	return fmt.Sprintf("%d of %d requests submitted", o.Succeeded, o.Total)
}

// PaymentCollector turns the current selection into grouped payment requests
// and submits them.
type PaymentCollector struct {
	client    http.BackendClientInterface
	selection *selection.Model
	queries   *Queries
}

func NewPaymentCollector(client http.BackendClientInterface, sel *selection.Model, queries *Queries) *PaymentCollector {
	return &PaymentCollector{
		client:    client,
		selection: sel,
		queries:   queries,
	}
}

// Preview builds the per-customer requests for the current selection without
// submitting anything.
func (c *PaymentCollector) Preview() ([]models.PaymentRequest, error) {
	return batch.Build(c.selection.SelectedInvoices())
}

// SubmitSelected submits one request per selected customer and clears the
// selection. The regenerated due-invoice view (via invalidation) is what
// shows any requests the backend could not resolve.
func (c *PaymentCollector) SubmitSelected(ctx context.Context) (*Outcome, error) {
	requests, err := batch.Build(c.selection.SelectedInvoices())
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("no invoices selected")
	}

	summary, err := c.client.SubmitBatch(ctx, requests)
	if err != nil {
		return nil, err
	}

	c.queries.Cache().ApplyMutation(cache.MutationSubmitBatch)
	c.selection.Clear()

	return &Outcome{Succeeded: summary.Succeeded, Total: len(requests)}, nil
}

// CancelPayment cancels one submitted request.
func (c *PaymentCollector) CancelPayment(ctx context.Context, requestID string) error {
	if err := c.client.CancelPayment(ctx, requestID); err != nil {
		return err
	}
	c.queries.Cache().ApplyMutation(cache.MutationCancelPayment)
	return nil
}

// SyncStatuses pulls payment status updates from the provider.
func (c *PaymentCollector) SyncStatuses(ctx context.Context) (int, error) {
	updated, err := c.client.SyncPaymentStatuses(ctx)
	if err != nil {
		return 0, err
	}
	c.queries.Cache().ApplyMutation(cache.MutationSyncStatuses)
	return updated, nil
}
