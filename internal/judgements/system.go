package judgements

import "context"

// System defines the judgement store.
type System interface {
	// Create inserts a record atomically and returns it with its assigned ID.
	Create(ctx context.Context, cmd CreateCommand) (*Record, error)
	// List returns every record matching filters in insertion order.
	List(ctx context.Context, filters Filters) ([]Record, error)
	// Find returns the record with id or ErrNotFound.
	Find(ctx context.Context, id int64) (*Record, error)
}
