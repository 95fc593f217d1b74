package db

import "sort"

// MockDB is a mock implementation of the DB for testing
type MockDB struct {
	// Mock data storage
	Overrides map[string]*LinkOverride

	// Error values to return
	UpsertLinkOverrideErr error
	GetLinkOverrideErr    error
	RemoveLinkOverrideErr error
	ListLinkOverridesErr  error
}

// NewMockDB creates a new mock database
func NewMockDB() *MockDB {
	return &MockDB{
		Overrides: make(map[string]*LinkOverride),
	}
}

func (m *MockDB) Initialize() error { return nil }

func (m *MockDB) Close() error { return nil }

func (m *MockDB) UpsertLinkOverride(o *LinkOverride) error {
	if m.UpsertLinkOverrideErr != nil {
		return m.UpsertLinkOverrideErr
	}
	m.Overrides[o.ExternalName] = o
	return nil
}

func (m *MockDB) GetLinkOverride(externalName string) (*LinkOverride, error) {
	if m.GetLinkOverrideErr != nil {
		return nil, m.GetLinkOverrideErr
	}
	return m.Overrides[externalName], nil
}

func (m *MockDB) RemoveLinkOverride(externalName string) error {
	if m.RemoveLinkOverrideErr != nil {
		return m.RemoveLinkOverrideErr
	}
	delete(m.Overrides, externalName)
	return nil
}

func (m *MockDB) RemoveLinkOverridesForAccount(account string) error {
	if m.RemoveLinkOverrideErr != nil {
		return m.RemoveLinkOverrideErr
	}
	for name, o := range m.Overrides {
		if o.Account == account {
			delete(m.Overrides, name)
		}
	}
	return nil
}

func (m *MockDB) ListLinkOverrides() ([]*LinkOverride, error) {
	if m.ListLinkOverridesErr != nil {
		return nil, m.ListLinkOverridesErr
	}
	names := make([]string, 0, len(m.Overrides))
	for name := range m.Overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	overrides := make([]*LinkOverride, 0, len(names))
	for _, name := range names {
		overrides = append(overrides, m.Overrides[name])
	}
	return overrides, nil
}
