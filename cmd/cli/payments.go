package cli

import (
	"fmt"
	"strings"

	"github.com/jmcrae/debitdesk/pkg/ui"
)

func (r *replState) listPayments(line string) {
	parts := strings.Fields(line)
	statusFilter := ""
	if len(parts) > 1 {
		statusFilter = parts[1]
	}

	records, err := r.queries.PaymentRequests(r.ctx, statusFilter)
	if err != nil {
		r.notices.ReportError(err)
		return
	}
	r.view = r.view.SwitchTab(ui.TabPayments)

	if len(records) == 0 {
		fmt.Println("No payment requests found")
		return
	}

	fmt.Printf("Found %d payment requests:\n\n", len(records))
	fmt.Printf("%-12s %-10s %12s %-12s %-12s\n", "ID", "Account", "Amount", "Status", "Submitted")
	fmt.Println(strings.Repeat("-", 64))
	for _, rec := range records {
		fmt.Printf("%-12s %-10s %12s %-12s %-12s\n",
			rec.ID, rec.Account, rec.Amount.ToMoney().Display(), rec.Status, rec.SubmittedAt)
	}
}

func (r *replState) cancelPayment(line string) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		fmt.Println("Usage: cancel <requestId>")
		return
	}

	if err := r.collector.CancelPayment(r.ctx, parts[1]); err != nil {
		r.notices.ReportError(err)
		return
	}
	r.notices.Success(fmt.Sprintf("Cancelled payment request %s", parts[1]))
}

func (r *replState) syncStatuses() {
	updated, err := r.collector.SyncStatuses(r.ctx)
	if err != nil {
		r.notices.ReportError(err)
		return
	}
	r.notices.Success(fmt.Sprintf("Updated %d payment statuses", updated))
}

func (r *replState) showStats() {
	stats, err := r.queries.PaymentStats(r.ctx)
	if err != nil {
		r.notices.ReportError(err)
		return
	}

	fmt.Println("Collection stats:")
	fmt.Printf("  Active mandates:      %d\n", stats.ActiveMandates)
	fmt.Printf("  Unlinked mandates:    %d\n", stats.UnlinkedCount)
	fmt.Printf("  Pending requests:     %d (%s)\n", stats.PendingCount, stats.PendingAmount.ToMoney().Display())
	fmt.Printf("  Collected this month: %s\n", stats.CollectedMonth.ToMoney().Display())
}
