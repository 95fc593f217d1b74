package match

import (
	"strings"

	"github.com/jmcrae/debitdesk/pkg/models"
)

// FindMatch proposes a ledger customer for an external mandate name. It
// searches the entire candidate set, linked customers included, so operators
// can re-link.
//
// Pass 1 returns the first candidate (in input order) whose normalized name
// equals the normalized external name. Pass 2 accepts containment in either
// direction; because several candidates can contain (or be contained by) the
// external name, the winner is chosen by shortest normalized name, then
// lexicographic name, then account code, so the result does not depend on
// incidental candidate ordering.
//
// Returns nil when the name is empty, the candidate set is empty, or neither
// pass finds anything. Never mutates its inputs and never touches the
// network.
func FindMatch(externalName string, candidates []models.Customer) *models.Customer {
	external := Normalize(externalName)
	if external == "" || len(candidates) == 0 {
		return nil
	}

	for i := range candidates {
		if Normalize(candidates[i].Name) == external {
			return &candidates[i]
		}
	}

	var best *models.Customer
	var bestName string
	for i := range candidates {
		name := Normalize(candidates[i].Name)
		if name == "" {
			continue
		}
		if !strings.Contains(external, name) && !strings.Contains(name, external) {
			continue
		}
		if best == nil || lessCandidate(name, &candidates[i], bestName, best) {
			best = &candidates[i]
			bestName = name
		}
	}
	return best
}

func lessCandidate(aName string, a *models.Customer, bName string, b *models.Customer) bool {
	if len(aName) != len(bName) {
		return len(aName) < len(bName)
	}
	if aName != bName {
		return aName < bName
	}
	return a.Account < b.Account
}
