package selection

import (
	"github.com/jmcrae/debitdesk/pkg/models"
)

// Model tracks which invoices are chosen for batch collection. It holds the
// current due-invoice snapshot so customer-level state (tri-state checkbox)
// can be answered per account. Selection is not persisted across runs.
//
// The mandate invariant is enforced at selection time: a key is only added
// when its invoice currently shows a mandate link. Keys are not retroactively
// swept when a link disappears; SelectedInvoices reconciles on read instead,
// so an unlinked stray can never reach submission.
type Model struct {
	selected map[string]struct{}
	// snapshot lookups, rebuilt on SetSnapshot
	invoices  map[string]models.Invoice
	byAccount map[string][]string
	accounts  []string
}

func NewModel() *Model {
	return &Model{
		selected:  make(map[string]struct{}),
		invoices:  make(map[string]models.Invoice),
		byAccount: make(map[string][]string),
	}
}

// SetSnapshot replaces the invoice snapshot the model answers against.
// Existing selections are kept; reconciliation happens on read.
func (m *Model) SetSnapshot(invoices []models.Invoice) {
	m.invoices = make(map[string]models.Invoice, len(invoices))
	m.byAccount = make(map[string][]string)
	m.accounts = m.accounts[:0]
	for _, inv := range invoices {
		key := inv.Key()
		m.invoices[key] = inv
		if _, seen := m.byAccount[inv.Account]; !seen {
			m.accounts = append(m.accounts, inv.Account)
		}
		m.byAccount[inv.Account] = append(m.byAccount[inv.Account], key)
	}
}

// ToggleInvoice flips membership of one invoice key. Adding requires the
// invoice's customer to currently hold a mandate link; removing is always
// allowed.
func (m *Model) ToggleInvoice(key string) {
	if _, ok := m.selected[key]; ok {
		delete(m.selected, key)
		return
	}
	inv, ok := m.invoices[key]
	if !ok || !inv.HasMandate {
		return
	}
	m.selected[key] = struct{}{}
}

// ToggleCustomer implements the tri-state header checkbox: no-op when the
// customer has no mandate link, deselect-all when every invoice of the
// customer is selected, select-all otherwise.
func (m *Model) ToggleCustomer(account string) {
	keys := m.byAccount[account]
	if len(keys) == 0 || !m.customerHasMandate(account) {
		return
	}
	if m.IsFullySelected(account) {
		for _, key := range keys {
			delete(m.selected, key)
		}
		return
	}
	for _, key := range keys {
		m.selected[key] = struct{}{}
	}
}

func (m *Model) customerHasMandate(account string) bool {
	for _, key := range m.byAccount[account] {
		if m.invoices[key].HasMandate {
			return true
		}
	}
	return false
}

// IsFullySelected reports whether every invoice of the account is selected.
func (m *Model) IsFullySelected(account string) bool {
	keys := m.byAccount[account]
	if len(keys) == 0 {
		return false
	}
	for _, key := range keys {
		if _, ok := m.selected[key]; !ok {
			return false
		}
	}
	return true
}

// IsPartiallySelected reports whether some, but not all, invoices of the
// account are selected.
func (m *Model) IsPartiallySelected(account string) bool {
	keys := m.byAccount[account]
	selected := 0
	for _, key := range keys {
		if _, ok := m.selected[key]; ok {
			selected++
		}
	}
	return selected > 0 && selected < len(keys)
}

// SelectAllEligible replaces the selection with every invoice whose customer
// currently has a mandate link. A bulk convenience, not additive.
func (m *Model) SelectAllEligible() {
	m.selected = make(map[string]struct{})
	for _, account := range m.accounts {
		for _, key := range m.byAccount[account] {
			if m.invoices[key].HasMandate {
				m.selected[key] = struct{}{}
			}
		}
	}
}

// Clear empties the selection.
func (m *Model) Clear() {
	m.selected = make(map[string]struct{})
}

// IsSelected reports raw membership without reconciliation.
func (m *Model) IsSelected(key string) bool {
	_, ok := m.selected[key]
	return ok
}

// Count returns the raw selection size.
func (m *Model) Count() int {
	return len(m.selected)
}

// SelectedInvoices returns the selected invoices in snapshot order,
// reconciled against the current snapshot: keys that no longer resolve to an
// invoice with a mandate link are skipped (and left in place; the next
// SetSnapshot or Clear disposes of them).
func (m *Model) SelectedInvoices() []models.Invoice {
	var out []models.Invoice
	for _, account := range m.accounts {
		for _, key := range m.byAccount[account] {
			if _, ok := m.selected[key]; !ok {
				continue
			}
			inv := m.invoices[key]
			if !inv.HasMandate {
				continue
			}
			out = append(out, inv)
		}
	}
	return out
}
