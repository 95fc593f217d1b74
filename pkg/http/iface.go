package http

import (
	"context"

	"github.com/jmcrae/debitdesk/pkg/models"
)

// BackendClientInterface defines the backend collaborator surface this
// client consumes.
type BackendClientInterface interface {
	ListDueInvoices(ctx context.Context, advanceDate string, mandateCustomersOnly bool) (*DueInvoices, error)
	ListMandates(ctx context.Context) ([]models.Mandate, error)
	ListUnlinkedMandates(ctx context.Context) ([]models.Mandate, error)
	ListEligibleCustomers(ctx context.Context) (*EligibleCustomers, error)

	LinkMandate(ctx context.Context, account, mandateID, displayName string) error
	UnlinkMandate(ctx context.Context, mandateID string) error
	SyncMandatesFromProvider(ctx context.Context) (string, error)

	SubmitBatch(ctx context.Context, requests []models.PaymentRequest) (*BatchSummary, error)
	CancelPayment(ctx context.Context, requestID string) error
	SyncPaymentStatuses(ctx context.Context) (int, error)
	ListPaymentRequests(ctx context.Context, statusFilter string) ([]models.PaymentRecord, error)
	GetPaymentStats(ctx context.Context) (*models.PaymentStats, error)
}

// Ensure BackendClient implements BackendClientInterface
var _ BackendClientInterface = (*BackendClient)(nil)

// Ensure MockBackendClient implements BackendClientInterface
var _ BackendClientInterface = (*MockBackendClient)(nil)
