package services

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jmcrae/debitdesk/pkg/cache"
	"github.com/jmcrae/debitdesk/pkg/match"
	"github.com/jmcrae/debitdesk/pkg/models"
)

const searchKey = "customer-search"

// CustomerSearch is the search-as-you-type surface over eligible customers.
// Keystrokes arm a single-slot 300ms timer; only the final one fires a
// fetch. Results carry the generation that requested them, so a slow fetch
// for an old term can never overwrite a newer one: last write wins on the
// key, not on completion order.
type CustomerSearch struct {
	queries   *Queries
	debouncer *cache.Debouncer
	delay     time.Duration

	generation atomic.Uint64
	onResults  func(term string, customers []models.Customer)
}

func NewCustomerSearch(queries *Queries, onResults func(term string, customers []models.Customer)) *CustomerSearch {
	return &CustomerSearch{
		queries:   queries,
		debouncer: cache.NewDebouncer(),
		delay:     cache.DefaultDebounce,
		onResults: onResults,
	}
}

// Type registers a keystroke's current term.
func (s *CustomerSearch) Type(ctx context.Context, term string) {
	generation := s.generation.Add(1)
	s.debouncer.Arm(searchKey, s.delay, func() {
		s.run(ctx, generation, term)
	})
}

// Cancel drops any pending search.
func (s *CustomerSearch) Cancel() {
	s.generation.Add(1)
	s.debouncer.Cancel(searchKey)
}

func (s *CustomerSearch) run(ctx context.Context, generation uint64, term string) {
	eligible, err := s.queries.EligibleCustomers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("customer search failed")
		return
	}

	filtered := Filter(eligible.Customers, term)
	if s.generation.Load() != generation {
		// a newer term superseded this fetch; its result is irrelevant
		return
	}
	s.onResults(term, filtered)
}

// Filter returns the customers whose normalized name contains the normalized
// term. An empty term matches everything.
func Filter(customers []models.Customer, term string) []models.Customer {
	needle := match.Normalize(term)
	if needle == "" {
		return customers
	}
	var out []models.Customer
	for _, c := range customers {
		if strings.Contains(match.Normalize(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}
