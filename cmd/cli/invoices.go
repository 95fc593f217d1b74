package cli

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/jmcrae/debitdesk/pkg/config"
	"github.com/jmcrae/debitdesk/pkg/models"
	"github.com/jmcrae/debitdesk/pkg/ui"
)

func (r *replState) listInvoices(line string) {
	parts := strings.Fields(line)
	advanceDate := ""
	if len(parts) > 1 {
		advanceDate = parts[1]
	}

	due, err := r.queries.DueInvoices(r.ctx, advanceDate, false)
	if err != nil {
		r.notices.ReportError(err)
		return
	}
	r.selection.SetSnapshot(due.Flatten())
	r.view = r.view.SwitchTab(ui.TabInvoices)

	if len(due.Customers) == 0 {
		fmt.Println("No due invoices found")
		return
	}

	fmt.Printf("Found %d invoices across %d customers (%d overdue):\n\n",
		due.Summary.InvoiceCount, due.Summary.CustomerCount, due.Summary.OverdueCount)

	for _, customer := range due.Customers {
		fmt.Printf("%s %s (%s)%s\n",
			r.customerMarker(customer.Account),
			customer.Name,
			customer.Account,
			mandateMarker(customer.HasMandate()))
		for _, inv := range customer.Invoices {
			selected := " "
			if r.selection.IsSelected(inv.Key()) {
				selected = "x"
			}
			overdue := ""
			if inv.Overdue {
				overdue = " OVERDUE"
			}
			fmt.Printf("    [%s] %-15s due %s %12s%s\n",
				selected, inv.Reference, inv.DueDate, inv.Amount.ToMoney().Display(), overdue)
		}
	}
	fmt.Printf("\nTotal due: %s\n", due.Summary.TotalDue.ToMoney().Display())
}

func (r *replState) customerMarker(account string) string {
	if r.selection.IsFullySelected(account) {
		return "[x]"
	}
	if r.selection.IsPartiallySelected(account) {
		return "[-]"
	}
	return "[ ]"
}

func mandateMarker(hasMandate bool) string {
	if hasMandate {
		return ""
	}
	return " - no mandate"
}

func (r *replState) toggleSelection(line string) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		fmt.Println("Usage: select <account[:reference]>")
		return
	}

	target := parts[1]
	if strings.Contains(target, ":") {
		r.selection.ToggleInvoice(target)
	} else {
		r.selection.ToggleCustomer(target)
	}
	fmt.Printf("%d invoices selected\n", r.selection.Count())
}

func (r *replState) selectAll() {
	r.selection.SelectAllEligible()
	fmt.Printf("%d invoices selected\n", r.selection.Count())
}

func (r *replState) clearSelection() {
	r.selection.Clear()
	fmt.Println("Selection cleared")
}

func (r *replState) previewBatch() {
	requests, err := r.collector.Preview()
	if err != nil {
		r.notices.ReportError(err)
		return
	}
	if len(requests) == 0 {
		fmt.Println("Nothing selected")
		return
	}
	r.view = r.view.OpenBatchPreview()

	currency := config.GetCurrency()
	fmt.Printf("Batch of %d requests:\n", len(requests))
	for _, req := range requests {
		fmt.Printf("  %-10s %12s  invoices: %s\n",
			req.Account,
			req.Money(currency).Display(),
			strings.Join(req.InvoiceReferences, ", "))
	}
	total := lo.SumBy(requests, func(req models.PaymentRequest) int64 {
		return req.AmountMinorUnits
	})
	fmt.Printf("  total %s\n", (&models.PaymentRequest{AmountMinorUnits: total}).Money(currency).Display())
}

func (r *replState) submitBatch() {
	outcome, err := r.collector.SubmitSelected(r.ctx)
	if err != nil {
		r.notices.ReportError(err)
		return
	}
	r.view = r.view.CloseModal()
	if outcome.Succeeded < outcome.Total {
		r.notices.Error(outcome.String())
	} else {
		r.notices.Success(outcome.String())
	}
}
