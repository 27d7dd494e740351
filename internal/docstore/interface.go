package docstore

import "context"

// Store is a document store addressed by slash-separated paths.
// The first segment names a collection, the second a document, and any
// further segments address fields nested inside that document.
type Store interface {
	// Get reads the value at path. A missing value yields a snapshot with Exists() == false.
	Get(ctx context.Context, path string) (Snapshot, error)
	// List returns every document in a collection ordered by document id.
	List(ctx context.Context, collection string) ([]Snapshot, error)
	// Set replaces the value at path.
	Set(ctx context.Context, path string, value any) error
	// Update merges fields into the value at path. Keys may themselves be
	// slash-separated paths; a nil value removes the key. Sibling fields
	// not named in fields are left untouched.
	Update(ctx context.Context, path string, fields map[string]any) error
	// Delete removes the value at path.
	Delete(ctx context.Context, path string) error
	// RunTransaction runs fn atomically. Either every write made through tx
	// is committed or none is. Subscribers are notified after commit.
	RunTransaction(ctx context.Context, fn func(tx Tx) error) error
	// Subscribe calls fn with the current snapshot at path and again after
	// every committed change at or below it. fn must not block.
	Subscribe(path string, fn func(Snapshot)) (cancel func())
}

// Tx is the view of the store available inside RunTransaction.
type Tx interface {
	Get(path string) (Snapshot, error)
	List(collection string) ([]Snapshot, error)
	Set(path string, value any) error
	Update(path string, fields map[string]any) error
	Delete(path string) error
}
