package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmcrae/debitdesk/pkg/models"
)

func snapshot() []models.Invoice {
	return []models.Invoice{
		{Account: "C1", Reference: "A", Amount: models.Amount{Value: "10.00", Currency: "GBP"}, HasMandate: true},
		{Account: "C1", Reference: "B", Amount: models.Amount{Value: "5.00", Currency: "GBP"}, HasMandate: true},
		{Account: "C1", Reference: "C", Amount: models.Amount{Value: "1.50", Currency: "GBP"}, HasMandate: true},
		{Account: "C2", Reference: "D", Amount: models.Amount{Value: "3.33", Currency: "GBP"}, HasMandate: false},
	}
}

func TestToggleInvoice(t *testing.T) {
	m := NewModel()
	m.SetSnapshot(snapshot())

	key := models.InvoiceKey("C1", "A")
	m.ToggleInvoice(key)
	assert.True(t, m.IsSelected(key))

	m.ToggleInvoice(key)
	assert.False(t, m.IsSelected(key))
}

func TestToggleInvoiceRequiresMandate(t *testing.T) {
	m := NewModel()
	m.SetSnapshot(snapshot())

	m.ToggleInvoice(models.InvoiceKey("C2", "D"))
	assert.Equal(t, 0, m.Count())

	m.ToggleInvoice(models.InvoiceKey("C9", "Z"))
	assert.Equal(t, 0, m.Count())
}

func TestToggleCustomerTriState(t *testing.T) {
	m := NewModel()
	m.SetSnapshot(snapshot())

	// partial: A and B of {A,B,C}
	m.ToggleInvoice(models.InvoiceKey("C1", "A"))
	m.ToggleInvoice(models.InvoiceKey("C1", "B"))
	assert.True(t, m.IsPartiallySelected("C1"))
	assert.False(t, m.IsFullySelected("C1"))

	// partial -> select-all
	m.ToggleCustomer("C1")
	assert.True(t, m.IsFullySelected("C1"))
	assert.False(t, m.IsPartiallySelected("C1"))

	// full -> deselect-all
	m.ToggleCustomer("C1")
	assert.Equal(t, 0, m.Count())
	assert.False(t, m.IsFullySelected("C1"))
}

func TestToggleCustomerWithoutMandateIsNoOp(t *testing.T) {
	m := NewModel()
	m.SetSnapshot(snapshot())

	m.ToggleCustomer("C2")
	assert.Equal(t, 0, m.Count())

	m.ToggleCustomer("UNKNOWN")
	assert.Equal(t, 0, m.Count())
}

func TestSelectAllEligibleReplaces(t *testing.T) {
	m := NewModel()
	m.SetSnapshot(snapshot())

	// pre-existing selection should not survive; the call is a replacement
	m.ToggleInvoice(models.InvoiceKey("C1", "A"))
	m.SelectAllEligible()

	assert.Equal(t, 3, m.Count())
	assert.True(t, m.IsFullySelected("C1"))
	assert.False(t, m.IsSelected(models.InvoiceKey("C2", "D")))
}

func TestClear(t *testing.T) {
	m := NewModel()
	m.SetSnapshot(snapshot())

	m.SelectAllEligible()
	m.Clear()
	assert.Equal(t, 0, m.Count())
}

func TestSelectedInvoicesReconcilesOnRead(t *testing.T) {
	m := NewModel()
	m.SetSnapshot(snapshot())
	m.SelectAllEligible()

	// The mandate behind C1 is unlinked and a fresh snapshot arrives. The
	// stale keys stay in the set but must not be returned.
	refreshed := snapshot()
	for i := range refreshed {
		if refreshed[i].Account == "C1" {
			refreshed[i].HasMandate = false
		}
	}
	m.SetSnapshot(refreshed)

	assert.Equal(t, 3, m.Count())
	assert.Empty(t, m.SelectedInvoices())
}

func TestSelectedInvoicesOrder(t *testing.T) {
	m := NewModel()
	m.SetSnapshot(snapshot())
	m.ToggleInvoice(models.InvoiceKey("C1", "C"))
	m.ToggleInvoice(models.InvoiceKey("C1", "A"))

	selected := m.SelectedInvoices()
	assert.Len(t, selected, 2)
	assert.Equal(t, "A", selected[0].Reference)
	assert.Equal(t, "C", selected[1].Reference)
}
