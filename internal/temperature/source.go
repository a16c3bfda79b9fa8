package temperature

import (
	"context"
)

// Source abstracts where the dataset comes from (remote JSON, local file).
type Source interface {
	Name() string
	Load(ctx context.Context) (Dataset, error)
}

// Store is the contract the in-memory snapshot store satisfies.
type Store interface {
	SaveSnapshot(snapshot Snapshot)
	GetLatest(source string) (Snapshot, error)
	List(source string) ([]Snapshot, error)
}
