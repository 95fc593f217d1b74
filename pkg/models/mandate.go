package models

import "fmt"

// MandateStatus is the lifecycle state of a Direct Debit mandate as reported
// by the external provider.
type MandateStatus string

const (
	MandatePending   MandateStatus = "pending"
	MandateActive    MandateStatus = "active"
	MandateCancelled MandateStatus = "cancelled"
	MandateFailed    MandateStatus = "failed"
	MandateExpired   MandateStatus = "expired"
)

// Mandate is an external Direct Debit authorization synced from the payment
// provider. Mandates are never deleted locally; link state is the only part
// mutated by this client.
type Mandate struct {
	ID string `json:"id"`
	// CustomerAccount is the ledger account the mandate is linked to, empty
	// when unlinked.
	CustomerAccount string        `json:"customerAccount"`
	Status          MandateStatus `json:"status"`
	ExternalName    string        `json:"externalName"`
	Scheme          string        `json:"scheme"`
}

func (m *Mandate) IsLinked() bool {
	return m.CustomerAccount != ""
}

// PrintFormatted prints the mandate in a formatted way
func (m *Mandate) PrintFormatted() {
	fmt.Printf("Mandate Details:\n")
	fmt.Printf("	ID: %s\n", m.ID)
	if m.ExternalName != "" {
		fmt.Printf("	External Name: %s\n", m.ExternalName)
	}
	fmt.Printf("	Status: %s\n", m.Status)
	if m.Scheme != "" {
		fmt.Printf("	Scheme: %s\n", m.Scheme)
	}
	if m.CustomerAccount != "" {
		fmt.Printf("	Linked Account: %s\n", m.CustomerAccount)
	}
}
