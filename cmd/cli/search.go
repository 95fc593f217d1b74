package cli

import (
	"fmt"
	"strings"

	"github.com/jmcrae/debitdesk/pkg/models"
)

func (r *replState) searchCustomers(line string) {
	term := strings.TrimSpace(strings.TrimPrefix(line, "search"))
	if term == "" {
		fmt.Println("Usage: search <name>")
		return
	}

	// each invocation is one keystroke event; the debouncer decides when a
	// fetch actually fires and stale results are dropped by generation
	r.search.Type(r.ctx, term)
}

func printSearchResults(term string, customers []models.Customer) {
	if len(customers) == 0 {
		fmt.Printf("\nNo customers matching %q\n", term)
		return
	}
	fmt.Printf("\nCustomers matching %q:\n", term)
	for _, c := range customers {
		fmt.Printf("  %-10s %-35s%s\n", c.Account, c.Name, mandateMarker(c.HasMandate()))
	}
}
