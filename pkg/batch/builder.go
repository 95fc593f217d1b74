package batch

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jmcrae/debitdesk/pkg/models"
)

var minorUnitShift = decimal.NewFromInt(100)

// Build groups the selected invoices into one payment request per customer
// account, preserving first-seen account order and, within each account, the
// order the invoices arrived in.
//
// Amounts are summed as exact decimals and converted to integer minor units
// in one step, rounding half away from zero (15.005 -> 1501 pence), so
// accumulation over many small invoices cannot drift.
//
// Build is pure; submitting the requests is the collector's job.
func Build(selected []models.Invoice) ([]models.PaymentRequest, error) {
	order := make([]string, 0)
	sums := make(map[string]decimal.Decimal)
	refs := make(map[string][]string)

	for _, inv := range selected {
		amount, err := inv.Amount.Decimal()
		if err != nil {
			return nil, fmt.Errorf("invoice %s: %w", inv.Key(), err)
		}
		if _, seen := sums[inv.Account]; !seen {
			order = append(order, inv.Account)
			sums[inv.Account] = decimal.Zero
		}
		sums[inv.Account] = sums[inv.Account].Add(amount)
		refs[inv.Account] = append(refs[inv.Account], inv.Reference)
	}

	requests := make([]models.PaymentRequest, 0, len(order))
	for _, account := range order {
		requests = append(requests, models.PaymentRequest{
			Account:           account,
			InvoiceReferences: refs[account],
			AmountMinorUnits:  sums[account].Mul(minorUnitShift).Round(0).IntPart(),
		})
	}
	return requests, nil
}

// Accounts returns the distinct customer accounts covered by a batch, in
// request order.
func Accounts(requests []models.PaymentRequest) []string {
	accounts := make([]string, 0, len(requests))
	for _, r := range requests {
		accounts = append(accounts, r.Account)
	}
	return accounts
}
