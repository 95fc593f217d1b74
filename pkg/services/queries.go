package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jmcrae/debitdesk/pkg/cache"
	"github.com/jmcrae/debitdesk/pkg/http"
	"github.com/jmcrae/debitdesk/pkg/models"
)

// StatsRefreshInterval is how often the dashboard stats are refetched while
// the auto-refresher runs.
const StatsRefreshInterval = 60 * time.Second

// Queries serves every backend read through the entity cache, so staleness
// windows and mutation invalidation apply uniformly.
type Queries struct {
	client http.BackendClientInterface
	cache  *cache.EntityCache
}

func NewQueries(client http.BackendClientInterface, entityCache *cache.EntityCache) *Queries {
	return &Queries{
		client: client,
		cache:  entityCache,
	}
}

func (q *Queries) Cache() *cache.EntityCache {
	return q.cache
}

// dueInvoicesKey keys a snapshot by its advance date first so date-scoped
// invalidation can match by prefix.
func dueInvoicesKey(advanceDate string, mandateCustomersOnly bool) string {
	return fmt.Sprintf("%s|mandateOnly=%t", advanceDate, mandateCustomersOnly)
}

// DueInvoices returns the due-invoice snapshot for the advance date. An
// empty date means today.
func (q *Queries) DueInvoices(ctx context.Context, advanceDate string, mandateCustomersOnly bool) (*http.DueInvoices, error) {
	if advanceDate == "" {
		advanceDate = time.Now().Format(time.DateOnly)
	}
	v, err := q.cache.Get(ctx, cache.KindDueInvoices, dueInvoicesKey(advanceDate, mandateCustomersOnly),
		func(ctx context.Context) (any, error) {
			return q.client.ListDueInvoices(ctx, advanceDate, mandateCustomersOnly)
		})
	if err != nil {
		return nil, err
	}
	return v.(*http.DueInvoices), nil
}

func (q *Queries) Mandates(ctx context.Context) ([]models.Mandate, error) {
	v, err := q.cache.Get(ctx, cache.KindMandates, "", func(ctx context.Context) (any, error) {
		return q.client.ListMandates(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Mandate), nil
}

func (q *Queries) UnlinkedMandates(ctx context.Context) ([]models.Mandate, error) {
	v, err := q.cache.Get(ctx, cache.KindUnlinkedMandates, "", func(ctx context.Context) (any, error) {
		return q.client.ListUnlinkedMandates(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Mandate), nil
}

func (q *Queries) EligibleCustomers(ctx context.Context) (*http.EligibleCustomers, error) {
	v, err := q.cache.Get(ctx, cache.KindEligibleCustomers, "", func(ctx context.Context) (any, error) {
		return q.client.ListEligibleCustomers(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*http.EligibleCustomers), nil
}

func (q *Queries) PaymentRequests(ctx context.Context, statusFilter string) ([]models.PaymentRecord, error) {
	v, err := q.cache.Get(ctx, cache.KindPaymentRequests, statusFilter, func(ctx context.Context) (any, error) {
		return q.client.ListPaymentRequests(ctx, statusFilter)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.PaymentRecord), nil
}

func (q *Queries) PaymentStats(ctx context.Context) (*models.PaymentStats, error) {
	v, err := q.cache.Get(ctx, cache.KindStats, "", func(ctx context.Context) (any, error) {
		return q.client.GetPaymentStats(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.PaymentStats), nil
}

// StartStatsRefresh keeps the stats entry warm: each tick reads through the
// cache, which returns the current value and refetches in the background
// once the staleness window has passed.
func (q *Queries) StartStatsRefresh(ctx context.Context) {
	ticker := time.NewTicker(StatsRefreshInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := q.PaymentStats(ctx); err != nil {
					log.Debug().Err(err).Msg("stats auto-refresh failed")
				}
			}
		}
	}()
}
