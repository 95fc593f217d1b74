package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcrae/debitdesk/pkg/cache"
	"github.com/jmcrae/debitdesk/pkg/http"
	"github.com/jmcrae/debitdesk/pkg/models"
)

type resultRecorder struct {
	mu    sync.Mutex
	terms []string
	last  []models.Customer
}

func (r *resultRecorder) apply(term string, customers []models.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terms = append(r.terms, term)
	r.last = customers
}

func (r *resultRecorder) snapshot() ([]string, []models.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.terms...), r.last
}

func newSearchFixture(delay time.Duration) (*CustomerSearch, *http.MockBackendClient, *resultRecorder) {
	client := http.NewMockBackendClient()
	client.Eligible = &http.EligibleCustomers{
		Customers: []models.Customer{
			{Account: "C1", Name: "Acme Widgets Ltd"},
			{Account: "C2", Name: "Northern Rail plc"},
			{Account: "C3", Name: "Acme Trading"},
		},
	}
	recorder := &resultRecorder{}
	search := NewCustomerSearch(NewQueries(client, cache.New(nil)), recorder.apply)
	search.delay = delay
	return search, client, recorder
}

func TestSearchDebouncesBursts(t *testing.T) {
	search, _, recorder := newSearchFixture(30 * time.Millisecond)

	// a typing burst: only the final term may fire
	search.Type(context.Background(), "a")
	search.Type(context.Background(), "ac")
	search.Type(context.Background(), "acme")

	require.Eventually(t, func() bool {
		terms, _ := recorder.snapshot()
		return len(terms) == 1
	}, time.Second, 5*time.Millisecond)

	terms, last := recorder.snapshot()
	assert.Equal(t, []string{"acme"}, terms)
	require.Len(t, last, 2)
	assert.Equal(t, "C1", last[0].Account)
	assert.Equal(t, "C3", last[1].Account)

	// no late stragglers
	time.Sleep(100 * time.Millisecond)
	terms, _ = recorder.snapshot()
	assert.Len(t, terms, 1)
}

func TestSearchCancel(t *testing.T) {
	search, _, recorder := newSearchFixture(30 * time.Millisecond)

	search.Type(context.Background(), "acme")
	search.Cancel()

	time.Sleep(100 * time.Millisecond)
	terms, _ := recorder.snapshot()
	assert.Empty(t, terms)
}

func TestFilter(t *testing.T) {
	customers := []models.Customer{
		{Account: "C1", Name: "Acme Widgets Ltd"},
		{Account: "C2", Name: "Northern Rail plc"},
	}

	assert.Len(t, Filter(customers, ""), 2)

	filtered := Filter(customers, "rail")
	require.Len(t, filtered, 1)
	assert.Equal(t, "C2", filtered[0].Account)

	// suffix stripping applies to the haystack too
	filtered = Filter(customers, "widgets")
	require.Len(t, filtered, 1)
	assert.Equal(t, "C1", filtered[0].Account)

	assert.Empty(t, Filter(customers, "zebra"))
}
