package driven

// KeyValueStore provides access to the host's persisted settings and
// document state. Implementations handle storage (TOML file, SQLite) and
// must be safe for concurrent use.
//
// Keys in use: the last-edited document text, the active image host
// selector, and one key per image host config variant.
type KeyValueStore interface {
	// Get retrieves a value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) ([]byte, bool)

	// Set stores a value. The value is persisted immediately.
	Set(key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
}
