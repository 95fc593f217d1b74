package models

// Customer is a ledger account eligible for Direct Debit collection.
type Customer struct {
	// Account is the ledger account code, unique within the ledger.
	Account string `json:"account"`
	Name    string `json:"name"`
	// Eligible reports whether the ledger considers this account collectable.
	Eligible bool `json:"eligible"`
	// MandateID is the linked mandate, empty when the customer has none. A
	// customer has at most one active link at a time.
	MandateID string `json:"mandateId"`
}

func (c *Customer) HasMandate() bool {
	return c.MandateID != ""
}

// CustomerInvoices pairs a customer with its due invoices as returned by the
// due-invoice query.
type CustomerInvoices struct {
	Customer
	Invoices []Invoice `json:"invoices"`
}
