package cli

import (
	"fmt"
	"strings"

	"github.com/jmcrae/debitdesk/pkg/models"
	"github.com/jmcrae/debitdesk/pkg/ui"
	"github.com/jmcrae/debitdesk/pkg/utils"
)

func (r *replState) listMandates(line string) {
	parts := strings.Fields(line)
	unlinkedOnly := len(parts) > 1 && (parts[1] == "unlinked" || parts[1] == "u")

	var mandates []models.Mandate
	var err error
	if unlinkedOnly {
		mandates, err = r.queries.UnlinkedMandates(r.ctx)
	} else {
		mandates, err = r.queries.Mandates(r.ctx)
	}
	if err != nil {
		r.notices.ReportError(err)
		return
	}
	r.view = r.view.SwitchTab(ui.TabMandates)

	if len(mandates) == 0 {
		fmt.Println("No mandates found")
		return
	}

	fmt.Printf("Found %d mandates:\n\n", len(mandates))
	fmt.Printf("%-12s %-30s %-10s %-10s %-10s\n", "ID", "External Name", "Status", "Scheme", "Account")
	fmt.Println(strings.Repeat("-", 78))
	for _, m := range mandates {
		account := m.CustomerAccount
		if account == "" {
			account = "-"
		}
		name := utils.Truncate(utils.Capitalize(m.ExternalName), 30)
		fmt.Printf("%-12s %-30s %-10s %-10s %-10s\n",
			m.ID, name, m.Status, m.Scheme, account)
	}
}

func (r *replState) suggestLinks() {
	suggestions, err := r.linker.SuggestAll(r.ctx)
	if err != nil {
		r.notices.ReportError(err)
		return
	}
	if len(suggestions) == 0 {
		fmt.Println("No unlinked mandates")
		return
	}

	for _, s := range suggestions {
		if s.Customer == nil {
			fmt.Printf("%-12s %-30s -> no match, pick manually with 'link %s <account>'\n",
				s.Mandate.ID, s.Mandate.ExternalName, s.Mandate.ID)
			continue
		}
		source := "matched"
		if s.FromOverride {
			source = "remembered"
		}
		fmt.Printf("%-12s %-30s -> %s (%s, %s)\n",
			s.Mandate.ID, s.Mandate.ExternalName, s.Customer.Account, s.Customer.Name, source)
	}
	fmt.Println("\nConfirm a proposal with 'link <mandateId> <account>'")
}

func (r *replState) linkMandate(line string) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		fmt.Println("Usage: link <mandateId> <account>")
		return
	}
	mandateID, account := parts[1], parts[2]
	r.view = r.view.OpenLinkPicker(mandateID)

	mandate, err := r.findMandate(mandateID)
	if err != nil {
		r.notices.ReportError(err)
		return
	}
	if mandate == nil {
		fmt.Printf("Unknown mandate %q\n", mandateID)
		return
	}

	if err := r.linker.ConfirmLink(r.ctx, *mandate, account); err != nil {
		r.notices.ReportError(err)
		r.view = r.view.CloseModal()
		return
	}
	r.view = r.view.CloseModal()
	r.notices.Success(fmt.Sprintf("Linked mandate %s to %s", mandateID, account))
}

func (r *replState) unlinkMandate(line string) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		fmt.Println("Usage: unlink <mandateId>")
		return
	}
	mandateID := parts[1]

	mandate, err := r.findMandate(mandateID)
	if err != nil {
		r.notices.ReportError(err)
		return
	}
	if mandate == nil {
		fmt.Printf("Unknown mandate %q\n", mandateID)
		return
	}

	if err := r.linker.Unlink(r.ctx, *mandate); err != nil {
		r.notices.ReportError(err)
		return
	}
	r.notices.Success(fmt.Sprintf("Unlinked mandate %s", mandateID))
}

func (r *replState) findMandate(mandateID string) (*models.Mandate, error) {
	mandates, err := r.queries.Mandates(r.ctx)
	if err != nil {
		return nil, err
	}
	for i := range mandates {
		if mandates[i].ID == mandateID {
			return &mandates[i], nil
		}
	}
	return nil, nil
}

func (r *replState) syncMandates() {
	message, err := r.linker.SyncFromProvider(r.ctx)
	if err != nil {
		r.notices.ReportError(err)
		return
	}
	if message == "" {
		message = "Mandates synced"
	}
	r.notices.Success(message)
}

func (r *replState) listCustomers() {
	eligible, err := r.queries.EligibleCustomers(r.ctx)
	if err != nil {
		r.notices.ReportError(err)
		return
	}

	fmt.Printf("Found %d eligible customers (%d with mandate, %d without):\n\n",
		len(eligible.Customers), eligible.WithMandateCount, eligible.WithoutMandateCount)
	for _, c := range eligible.Customers {
		fmt.Printf("  %-10s %-35s%s\n", c.Account, c.Name, mandateMarker(c.HasMandate()))
	}
}
