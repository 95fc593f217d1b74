package models

import (
	"fmt"
	"strings"
)

// Invoice is one due invoice from a date-parameterised snapshot. The
// composite key (Account, Reference) is unique within a snapshot; the
// snapshot is immutable until re-fetched.
type Invoice struct {
	Account   string `json:"account"`
	Reference string `json:"reference"`
	DueDate   string `json:"dueDate"`
	Amount    Amount `json:"amount"`
	Overdue   bool   `json:"overdue"`
	// HasMandate is derived from the owning customer's link at fetch time.
	HasMandate bool `json:"hasMandate"`
}

// Key returns the composite selection key "{account}:{reference}".
func (i *Invoice) Key() string {
	return InvoiceKey(i.Account, i.Reference)
}

func InvoiceKey(account, reference string) string {
	return account + ":" + reference
}

// SplitInvoiceKey splits a selection key back into account and reference.
func SplitInvoiceKey(key string) (account, reference string, err error) {
	account, reference, ok := strings.Cut(key, ":")
	if !ok || account == "" || reference == "" {
		return "", "", fmt.Errorf("malformed invoice key %q", key)
	}
	return account, reference, nil
}
