package ui

// Tab is the operator's active view.
type Tab string

const (
	TabInvoices Tab = "invoices"
	TabMandates Tab = "mandates"
	TabPayments Tab = "payments"
)

// Modal is the overlay open above the active tab, if any.
type Modal string

const (
	ModalNone       Modal = ""
	ModalLinkPicker Modal = "link-picker"
	ModalBatch      Modal = "batch-preview"
)

// State is the explicit UI state the render step consumes. Transitions are
// pure value methods, so presentation toggles never leak into the selection
// model or the cache.
type State struct {
	Tab             Tab
	Modal           Modal
	SelectedAccount string
	// PendingMandateID is the mandate being linked while the picker is open.
	PendingMandateID string
}

func Initial() State {
	return State{Tab: TabInvoices}
}

// SwitchTab changes view and drops any open overlay.
func (s State) SwitchTab(tab Tab) State {
	s.Tab = tab
	s.Modal = ModalNone
	s.PendingMandateID = ""
	return s
}

// OpenLinkPicker opens the account picker for a mandate.
func (s State) OpenLinkPicker(mandateID string) State {
	s.Modal = ModalLinkPicker
	s.PendingMandateID = mandateID
	return s
}

// OpenBatchPreview shows the grouped requests before submission.
func (s State) OpenBatchPreview() State {
	s.Modal = ModalBatch
	return s
}

// CloseModal dismisses any overlay.
func (s State) CloseModal() State {
	s.Modal = ModalNone
	s.PendingMandateID = ""
	return s
}

// SelectAccount marks the focused customer row.
func (s State) SelectAccount(account string) State {
	s.SelectedAccount = account
	return s
}
