package models

import "github.com/Rhymond/go-money"

// PaymentRequest is a grouped collection instruction covering every selected
// invoice of one customer. Amounts are integer minor units (e.g. pence).
type PaymentRequest struct {
	Account string `json:"account"`
	// InvoiceReferences preserve the order the invoices were selected in.
	InvoiceReferences []string `json:"invoiceReferences"`
	AmountMinorUnits  int64    `json:"amountMinorUnits"`
}

func (r *PaymentRequest) Money(currency string) *money.Money {
	return money.New(r.AmountMinorUnits, currency)
}

// PaymentRecord is a previously submitted payment request as the backend
// reports it.
type PaymentRecord struct {
	ID                string   `json:"id"`
	Account           string   `json:"account"`
	Amount            Amount   `json:"amount"`
	Status            string   `json:"status"`
	SubmittedAt       string   `json:"submittedAt"`
	InvoiceReferences []string `json:"invoiceReferences"`
}

// PaymentStats is the aggregate dashboard snapshot.
type PaymentStats struct {
	ActiveMandates int    `json:"activeMandates"`
	UnlinkedCount  int    `json:"unlinkedCount"`
	PendingCount   int    `json:"pendingCount"`
	PendingAmount  Amount `json:"pendingAmount"`
	CollectedMonth Amount `json:"collectedMonth"`
}
