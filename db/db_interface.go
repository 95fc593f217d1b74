package db

// DBInterface defines the interface for database operations
type DBInterface interface {
	Initialize() error
	Close() error
	UpsertLinkOverride(o *LinkOverride) error
	GetLinkOverride(externalName string) (*LinkOverride, error)
	RemoveLinkOverride(externalName string) error
	RemoveLinkOverridesForAccount(account string) error
	ListLinkOverrides() ([]*LinkOverride, error)
}

// Ensure DB implements DBInterface
var _ DBInterface = (*DB)(nil)

// Ensure MockDB implements DBInterface
var _ DBInterface = (*MockDB)(nil)
