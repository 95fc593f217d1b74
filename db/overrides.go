package db

import (
	"database/sql"
	"fmt"
)

// LinkOverride remembers an operator's confirmed mandate link, keyed by the
// normalized external name. Overrides are client-side memory only; the
// backend holds the authoritative link state.
type LinkOverride struct {
	// ExternalName is the normalized external display name of the mandate.
	ExternalName string
	// Account is the ledger account the operator confirmed.
	Account string
}

func (db *DB) UpsertLinkOverride(o *LinkOverride) error {
	query := `
	INSERT INTO link_overrides (external_name, account)
	VALUES (?, ?)
	ON CONFLICT(external_name) DO UPDATE SET
		account = excluded.account,
		confirmed_at = CURRENT_TIMESTAMP
	`

	_, err := db.Exec(query, o.ExternalName, o.Account)
	if err != nil {
		return fmt.Errorf("failed to upsert link override: %w", err)
	}

	return nil
}

func (db *DB) GetLinkOverride(externalName string) (*LinkOverride, error) {
	query := `
	SELECT
		external_name, account
	FROM link_overrides
	WHERE external_name = ?
	LIMIT 1
	`

	var o LinkOverride
	err := db.QueryRow(query, externalName).Scan(
		&o.ExternalName,
		&o.Account,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get link override: %w", err)
	}

	return &o, nil
}

func (db *DB) RemoveLinkOverride(externalName string) error {
	_, err := db.Exec(`DELETE FROM link_overrides WHERE external_name = ?`, externalName)
	if err != nil {
		return fmt.Errorf("failed to remove link override: %w", err)
	}
	return nil
}

// RemoveLinkOverridesForAccount drops every override pointing at the account,
// used when a mandate is unlinked so a stale confirmation cannot resurface.
func (db *DB) RemoveLinkOverridesForAccount(account string) error {
	_, err := db.Exec(`DELETE FROM link_overrides WHERE account = ?`, account)
	if err != nil {
		return fmt.Errorf("failed to remove link overrides for account: %w", err)
	}
	return nil
}

func (db *DB) ListLinkOverrides() ([]*LinkOverride, error) {
	rows, err := db.Query(`SELECT external_name, account FROM link_overrides ORDER BY external_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list link overrides: %w", err)
	}
	defer rows.Close()

	var overrides []*LinkOverride
	for rows.Next() {
		var o LinkOverride
		if err := rows.Scan(&o.ExternalName, &o.Account); err != nil {
			return nil, fmt.Errorf("failed to scan link override: %w", err)
		}
		overrides = append(overrides, &o)
	}
	return overrides, rows.Err()
}
