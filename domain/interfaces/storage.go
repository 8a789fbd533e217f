package interfaces

// FixtureStore stores test fixtures such as JSON schemas and failure artifacts
type FixtureStore interface {
	// LoadJSON decodes the named JSON fixture into v
	LoadJSON(name string, v interface{}) error

	// SaveJSON encodes v as the named JSON fixture
	SaveJSON(name string, v interface{}) error

	// SaveBytes stores raw bytes under the given name
	SaveBytes(name string, data []byte) error

	// List returns the names of the stored JSON fixtures
	List() ([]string, error)
}
