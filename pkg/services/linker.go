package services

import (
	"context"
	"fmt"

	"github.com/jmcrae/debitdesk/db"
	"github.com/jmcrae/debitdesk/pkg/cache"
	"github.com/jmcrae/debitdesk/pkg/http"
	"github.com/jmcrae/debitdesk/pkg/match"
	"github.com/jmcrae/debitdesk/pkg/models"
)

// MandateLinker proposes and persists links between external mandates and
// ledger customers. Operator confirmations are remembered locally (keyed by
// normalized external name) and consulted before fuzzy matching, so a
// re-synced mandate lands on the account the operator chose last time.
type MandateLinker struct {
	client  http.BackendClientInterface
	db      db.DBInterface
	queries *Queries
}

func NewMandateLinker(client http.BackendClientInterface, database db.DBInterface, queries *Queries) *MandateLinker {
	return &MandateLinker{
		client:  client,
		db:      database,
		queries: queries,
	}
}

// LinkSuggestion pairs an unlinked mandate with its proposed customer. A nil
// Customer is a normal outcome: the operator has to pick by hand.
type LinkSuggestion struct {
	Mandate  models.Mandate
	Customer *models.Customer
	// FromOverride reports that the proposal came from a remembered operator
	// confirmation rather than the matcher.
	FromOverride bool
}

// SuggestLink proposes a ledger customer for one mandate. The search scope
// is the entire eligible set, linked customers included, so operators can
// re-link.
func (l *MandateLinker) SuggestLink(ctx context.Context, mandate models.Mandate) (*LinkSuggestion, error) {
	eligible, err := l.queries.EligibleCustomers(ctx)
	if err != nil {
		return nil, err
	}

	suggestion := &LinkSuggestion{Mandate: mandate}

	override, err := l.db.GetLinkOverride(match.Normalize(mandate.ExternalName))
	if err != nil {
		return nil, err
	}
	if override != nil {
		for i := range eligible.Customers {
			if eligible.Customers[i].Account == override.Account {
				suggestion.Customer = &eligible.Customers[i]
				suggestion.FromOverride = true
				return suggestion, nil
			}
		}
		// The remembered account is no longer eligible; fall through to the
		// matcher.
	}

	suggestion.Customer = match.FindMatch(mandate.ExternalName, eligible.Customers)
	return suggestion, nil
}

// SuggestAll proposes a customer for every unlinked mandate.
func (l *MandateLinker) SuggestAll(ctx context.Context) ([]LinkSuggestion, error) {
	unlinked, err := l.queries.UnlinkedMandates(ctx)
	if err != nil {
		return nil, err
	}

	suggestions := make([]LinkSuggestion, 0, len(unlinked))
	for _, mandate := range unlinked {
		s, err := l.SuggestLink(ctx, mandate)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, *s)
	}
	return suggestions, nil
}

// ConfirmLink persists the operator's decision: the backend mutation first,
// then the local override, then the dependent cache entries are invalidated.
func (l *MandateLinker) ConfirmLink(ctx context.Context, mandate models.Mandate, account string) error {
	if account == "" {
		return fmt.Errorf("no account selected for mandate %s", mandate.ID)
	}

	if err := l.client.LinkMandate(ctx, account, mandate.ID, mandate.ExternalName); err != nil {
		return err
	}

	if name := match.Normalize(mandate.ExternalName); name != "" {
		if err := l.db.UpsertLinkOverride(&db.LinkOverride{
			ExternalName: name,
			Account:      account,
		}); err != nil {
			return fmt.Errorf("failed to save link override: %w", err)
		}
	}

	l.queries.Cache().ApplyMutation(cache.MutationLinkMandate)
	return nil
}

// Unlink removes the mandate's link and forgets any matching override so a
// stale confirmation cannot resurface on the next sync.
func (l *MandateLinker) Unlink(ctx context.Context, mandate models.Mandate) error {
	if err := l.client.UnlinkMandate(ctx, mandate.ID); err != nil {
		return err
	}

	if mandate.CustomerAccount != "" {
		if err := l.db.RemoveLinkOverridesForAccount(mandate.CustomerAccount); err != nil {
			return fmt.Errorf("failed to remove link overrides: %w", err)
		}
	}

	l.queries.Cache().ApplyMutation(cache.MutationUnlinkMandate)
	return nil
}

// SyncFromProvider asks the backend to pull mandates from the provider, then
// invalidates every listing the sync can change.
func (l *MandateLinker) SyncFromProvider(ctx context.Context) (string, error) {
	message, err := l.client.SyncMandatesFromProvider(ctx)
	if err != nil {
		return "", err
	}

	l.queries.Cache().ApplyMutation(cache.MutationSyncMandates)
	return message, nil
}
