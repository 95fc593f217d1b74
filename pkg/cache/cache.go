package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Kind identifies a cached entity family. Parameterised kinds (due-invoices,
// payment-requests) hold one entry per parameter value.
type Kind string

const (
	KindStats             Kind = "stats"
	KindDueInvoices       Kind = "due-invoices"
	KindPaymentRequests   Kind = "payment-requests"
	KindMandates          Kind = "mandates"
	KindUnlinkedMandates  Kind = "unlinked-mandates"
	KindEligibleCustomers Kind = "eligible-customers"
)

// Mutation names a backend write whose completion invalidates dependent
// entries.
type Mutation string

const (
	MutationLinkMandate   Mutation = "link-mandate"
	MutationUnlinkMandate Mutation = "unlink-mandate"
	MutationSyncMandates  Mutation = "sync-mandates"
	MutationSubmitBatch   Mutation = "submit-batch"
	MutationCancelPayment Mutation = "cancel-payment"
	MutationSyncStatuses  Mutation = "sync-statuses"
)

// DefaultSweepInterval is how often the sweeper checks for idle entries.
const DefaultSweepInterval = time.Minute

// Policy tunes one entity kind. StaleAfter is the window after which a read
// still returns the cached value but triggers a background refetch.
// EvictAfter drops an entry unused for that long; zero means never evict.
type Policy struct {
	StaleAfter time.Duration
	EvictAfter time.Duration
}

// DefaultPolicies mirrors the observed per-entity staleness windows.
func DefaultPolicies() map[Kind]Policy {
	return map[Kind]Policy{
		KindStats:             {StaleAfter: 30 * time.Second},
		KindDueInvoices:       {StaleAfter: 2 * time.Minute, EvictAfter: 5 * time.Minute},
		KindPaymentRequests:   {StaleAfter: 60 * time.Second},
		KindMandates:          {StaleAfter: 5 * time.Minute, EvictAfter: 10 * time.Minute},
		KindUnlinkedMandates:  {StaleAfter: 5 * time.Minute, EvictAfter: 10 * time.Minute},
		KindEligibleCustomers: {StaleAfter: 5 * time.Minute, EvictAfter: 10 * time.Minute},
	}
}

// target is one row of the invalidation table: a kind, optionally narrowed
// to entries whose params start with one of the returned prefixes. Prefix
// matching lets a date-scoped row hit keys that carry extra options after
// the date.
type target struct {
	kind Kind
	// prefixes() narrows the invalidation; nil means every entry of the kind.
	prefixes func(now time.Time) []string
}

func allOf(kind Kind) target { return target{kind: kind} }

func currentDate(kind Kind) target {
	return target{kind: kind, prefixes: func(now time.Time) []string {
		return []string{now.Format(time.DateOnly)}
	}}
}

// invalidationTable lists, per mutation, the entries that must be refetched
// before they are trusted again.
var invalidationTable = map[Mutation][]target{
	MutationLinkMandate: {
		allOf(KindMandates), allOf(KindUnlinkedMandates),
		allOf(KindEligibleCustomers), allOf(KindDueInvoices),
	},
	MutationUnlinkMandate: {allOf(KindMandates)},
	MutationSyncMandates: {
		allOf(KindMandates), allOf(KindUnlinkedMandates),
		allOf(KindEligibleCustomers),
	},
	MutationSubmitBatch: {
		allOf(KindPaymentRequests), allOf(KindStats),
		currentDate(KindDueInvoices),
	},
	MutationCancelPayment: {allOf(KindPaymentRequests), allOf(KindStats)},
	MutationSyncStatuses:  {allOf(KindPaymentRequests), allOf(KindStats)},
}

// FetchFunc loads a fresh value for one entry.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value       any
	fetchedAt   time.Time
	lastAccess  time.Time
	invalidated bool
	refreshing  bool
	// gen is bumped on every invalidation so an in-flight refresh that
	// started before the invalidation cannot reinstall pre-mutation data.
	gen uint64
}

// EntityCache is a keyed store of query results with per-kind staleness
// windows and mutation-driven invalidation. Reads of a stale entry return
// the stale value synchronously and refetch in the background; reads of a
// missing or invalidated entry block on the fetch.
type EntityCache struct {
	mu       sync.Mutex
	entries  map[Kind]map[string]*entry
	policies map[Kind]Policy

	// now is swappable for tests.
	now func() time.Time
}

func New(policies map[Kind]Policy) *EntityCache {
	if policies == nil {
		policies = DefaultPolicies()
	}
	return &EntityCache{
		entries:  make(map[Kind]map[string]*entry),
		policies: policies,
		now:      time.Now,
	}
}

// Get returns the cached value for (kind, params), fetching when the entry
// is missing or invalidated. A present-but-stale entry is returned as-is and
// refreshed in the background; only one refresh per entry is in flight at a
// time.
func (c *EntityCache) Get(ctx context.Context, kind Kind, params string, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	e := c.lookup(kind, params)
	if e != nil && !e.invalidated {
		e.lastAccess = c.now()
		value := e.value
		if c.now().Sub(e.fetchedAt) >= c.policies[kind].StaleAfter && !e.refreshing {
			e.refreshing = true
			go c.refresh(kind, params, e.gen, fetch)
		}
		c.mu.Unlock()
		return value, nil
	}
	c.mu.Unlock()

	return c.fetchInto(ctx, kind, params, fetch)
}

// Peek returns the cached value without fetching or refreshing.
func (c *EntityCache) Peek(kind Kind, params string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.lookup(kind, params)
	if e == nil || e.invalidated {
		return nil, false
	}
	return e.value, true
}

func (c *EntityCache) fetchInto(ctx context.Context, kind Kind, params string, fetch FetchFunc) (any, error) {
	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(kind, params, value)
	return value, nil
}

func (c *EntityCache) refresh(kind Kind, params string, gen uint64, fetch FetchFunc) {
	value, err := fetch(context.Background())
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.lookup(kind, params)
	if e == nil || e.gen != gen {
		// the entry was evicted or invalidated while the fetch was in
		// flight; the response predates the change and must not land
		log.Debug().Str("kind", string(kind)).Msg("dropping superseded background refresh")
		return
	}
	if err != nil {
		log.Debug().Err(err).Str("kind", string(kind)).Msg("background refresh failed")
		e.refreshing = false
		return
	}
	c.store(kind, params, value)
}

// store must be called with the mutex held.
func (c *EntityCache) store(kind Kind, params string, value any) {
	byParams := c.entries[kind]
	if byParams == nil {
		byParams = make(map[string]*entry)
		c.entries[kind] = byParams
	}
	var gen uint64
	if old := byParams[params]; old != nil {
		gen = old.gen
	}
	byParams[params] = &entry{
		value:      value,
		fetchedAt:  c.now(),
		lastAccess: c.now(),
		gen:        gen,
	}
}

// lookup must be called with the mutex held.
func (c *EntityCache) lookup(kind Kind, params string) *entry {
	return c.entries[kind][params]
}

// ApplyMutation marks every entry the completed mutation depends on as
// invalid. Invalidation is immediate and set-based: the next read of an
// affected entry blocks on a refetch regardless of staleness.
func (c *EntityCache) ApplyMutation(m Mutation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range invalidationTable[m] {
		if t.prefixes == nil {
			for _, e := range c.entries[t.kind] {
				e.invalidated = true
				e.gen++
			}
			continue
		}
		for _, prefix := range t.prefixes(c.now()) {
			for params, e := range c.entries[t.kind] {
				if strings.HasPrefix(params, prefix) {
					e.invalidated = true
					e.gen++
				}
			}
		}
	}
}

// Invalidate marks one entry invalid.
func (c *EntityCache) Invalidate(kind Kind, params string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.lookup(kind, params); e != nil {
		e.invalidated = true
		e.gen++
	}
}

// Sweep drops entries whose kind has an EvictAfter and that have not been
// read for at least that long.
func (c *EntityCache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for kind, byParams := range c.entries {
		evictAfter := c.policies[kind].EvictAfter
		if evictAfter <= 0 {
			continue
		}
		for params, e := range byParams {
			if now.Sub(e.lastAccess) >= evictAfter {
				delete(byParams, params)
			}
		}
	}
}

// StartSweeper evicts idle entries periodically until ctx is done.
func (c *EntityCache) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}
