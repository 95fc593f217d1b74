package http

import (
	"context"

	"github.com/jmcrae/debitdesk/pkg/models"
)

// MockBackendClient is a mock implementation of the backend client for testing
type MockBackendClient struct {
	// Mock data to return
	Due            *DueInvoices
	Mandates       []models.Mandate
	Unlinked       []models.Mandate
	Eligible       *EligibleCustomers
	SyncMessage    string
	BatchSummary   *BatchSummary
	UpdatedCount   int
	PaymentRecords []models.PaymentRecord
	Stats          *models.PaymentStats

	// Captured calls
	LinkedMandates   []string
	UnlinkedMandates []string
	SubmittedBatches [][]models.PaymentRequest
	CancelledIDs     []string

	// Error values to return
	ListDueInvoicesErr      error
	ListMandatesErr         error
	ListUnlinkedMandatesErr error
	ListEligibleErr         error
	LinkMandateErr          error
	UnlinkMandateErr        error
	SyncMandatesErr         error
	SubmitBatchErr          error
	CancelPaymentErr        error
	SyncStatusesErr         error
	ListPaymentRequestsErr  error
	GetStatsErr             error
}

// NewMockBackendClient creates a new mock backend client
func NewMockBackendClient() *MockBackendClient {
	return &MockBackendClient{
		Due:      &DueInvoices{},
		Eligible: &EligibleCustomers{},
		Stats:    &models.PaymentStats{},
	}
}

func (m *MockBackendClient) ListDueInvoices(ctx context.Context, advanceDate string, mandateCustomersOnly bool) (*DueInvoices, error) {
	if m.ListDueInvoicesErr != nil {
		return nil, m.ListDueInvoicesErr
	}
	return m.Due, nil
}

func (m *MockBackendClient) ListMandates(ctx context.Context) ([]models.Mandate, error) {
	if m.ListMandatesErr != nil {
		return nil, m.ListMandatesErr
	}
	return m.Mandates, nil
}

func (m *MockBackendClient) ListUnlinkedMandates(ctx context.Context) ([]models.Mandate, error) {
	if m.ListUnlinkedMandatesErr != nil {
		return nil, m.ListUnlinkedMandatesErr
	}
	return m.Unlinked, nil
}

func (m *MockBackendClient) ListEligibleCustomers(ctx context.Context) (*EligibleCustomers, error) {
	if m.ListEligibleErr != nil {
		return nil, m.ListEligibleErr
	}
	return m.Eligible, nil
}

func (m *MockBackendClient) LinkMandate(ctx context.Context, account, mandateID, displayName string) error {
	if m.LinkMandateErr != nil {
		return m.LinkMandateErr
	}
	m.LinkedMandates = append(m.LinkedMandates, account+"="+mandateID)
	return nil
}

func (m *MockBackendClient) UnlinkMandate(ctx context.Context, mandateID string) error {
	if m.UnlinkMandateErr != nil {
		return m.UnlinkMandateErr
	}
	m.UnlinkedMandates = append(m.UnlinkedMandates, mandateID)
	return nil
}

func (m *MockBackendClient) SyncMandatesFromProvider(ctx context.Context) (string, error) {
	if m.SyncMandatesErr != nil {
		return "", m.SyncMandatesErr
	}
	return m.SyncMessage, nil
}

func (m *MockBackendClient) SubmitBatch(ctx context.Context, requests []models.PaymentRequest) (*BatchSummary, error) {
	if m.SubmitBatchErr != nil {
		return nil, m.SubmitBatchErr
	}
	m.SubmittedBatches = append(m.SubmittedBatches, requests)
	if m.BatchSummary != nil {
		return m.BatchSummary, nil
	}
	return &BatchSummary{Succeeded: len(requests)}, nil
}

func (m *MockBackendClient) CancelPayment(ctx context.Context, requestID string) error {
	if m.CancelPaymentErr != nil {
		return m.CancelPaymentErr
	}
	m.CancelledIDs = append(m.CancelledIDs, requestID)
	return nil
}

func (m *MockBackendClient) SyncPaymentStatuses(ctx context.Context) (int, error) {
	if m.SyncStatusesErr != nil {
		return 0, m.SyncStatusesErr
	}
	return m.UpdatedCount, nil
}

func (m *MockBackendClient) ListPaymentRequests(ctx context.Context, statusFilter string) ([]models.PaymentRecord, error) {
	if m.ListPaymentRequestsErr != nil {
		return nil, m.ListPaymentRequestsErr
	}
	return m.PaymentRecords, nil
}

func (m *MockBackendClient) GetPaymentStats(ctx context.Context) (*models.PaymentStats, error) {
	if m.GetStatsErr != nil {
		return nil, m.GetStatsErr
	}
	return m.Stats, nil
}
