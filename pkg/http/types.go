package http

import (
	"fmt"

	"github.com/jmcrae/debitdesk/pkg/models"
)

// BackendError is a failure the backend itself reported (success:false). The
// message is surfaced to the operator verbatim, as opposed to transport
// errors which are wrapped at the call site.
type BackendError struct {
	Op      string
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend reported failure", e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// statusEnvelope is the part every backend response carries. A 2xx transport
// status is never trusted on its own.
type statusEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s statusEnvelope) check(op string) error {
	if !s.Success {
		return &BackendError{Op: op, Message: s.Error}
	}
	return nil
}

type dueInvoicesResponse struct {
	statusEnvelope
	Customers []models.CustomerInvoices `json:"customers"`
	Summary   DueSummary                `json:"summary"`
}

// DueSummary carries the aggregate counts of a due-invoice snapshot.
type DueSummary struct {
	InvoiceCount  int           `json:"invoiceCount"`
	CustomerCount int           `json:"customerCount"`
	TotalDue      models.Amount `json:"totalDue"`
	OverdueCount  int           `json:"overdueCount"`
}

// DueInvoices is one date-parameterised snapshot: customers grouped with
// their nested invoices plus the aggregate summary.
type DueInvoices struct {
	Customers []models.CustomerInvoices
	Summary   DueSummary
}

// Flatten returns every invoice of the snapshot in customer order.
func (d *DueInvoices) Flatten() []models.Invoice {
	var out []models.Invoice
	for _, c := range d.Customers {
		out = append(out, c.Invoices...)
	}
	return out
}

type mandatesResponse struct {
	statusEnvelope
	Mandates []models.Mandate `json:"mandates"`
	Count    int              `json:"count"`
}

type eligibleCustomersResponse struct {
	statusEnvelope
	Customers           []models.Customer `json:"customers"`
	Count               int               `json:"count"`
	WithMandateCount    int               `json:"withMandateCount"`
	WithoutMandateCount int               `json:"withoutMandateCount"`
}

// EligibleCustomers is the eligible-customer listing with its link tallies.
type EligibleCustomers struct {
	Customers           []models.Customer
	WithMandateCount    int
	WithoutMandateCount int
}

type linkMandateRequest struct {
	Account     string `json:"account"`
	MandateID   string `json:"mandateId"`
	DisplayName string `json:"displayName,omitempty"`
}

type unlinkMandateRequest struct {
	MandateID string `json:"mandateId"`
}

type syncResponse struct {
	statusEnvelope
	Message string `json:"message"`
}

type submitBatchRequest struct {
	Requests []models.PaymentRequest `json:"requests"`
}

type submitBatchResponse struct {
	statusEnvelope
	Summary BatchSummary `json:"summary"`
}

// BatchSummary reports per-request granularity: the batch is not
// all-or-nothing.
type BatchSummary struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type cancelPaymentRequest struct {
	RequestID string `json:"requestId"`
}

type syncStatusesResponse struct {
	statusEnvelope
	UpdatedCount int `json:"updatedCount"`
}

type paymentRequestsResponse struct {
	statusEnvelope
	Requests []models.PaymentRecord `json:"requests"`
}

type statsResponse struct {
	statusEnvelope
	Stats models.PaymentStats `json:"stats"`
}
