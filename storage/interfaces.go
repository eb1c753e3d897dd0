package storage

import (
	"context"
	"io"

	"github.com/rxscan/medsearch/core"
)

// Stats summarizes the current corpus generation.
type Stats struct {
	TotalMedicines int
	Manufacturers  int // distinct non-empty manufacturer names
	Ingredients    int // distinct non-empty ingredient names
}

// Repository provides common storage operations.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// MedicineRepository is the authoritative store of the medicine master.
// The corpus is replaced wholesale per import generation and is
// otherwise read-only.
type MedicineRepository interface {
	Repository

	// ReplaceAll publishes a new corpus generation containing exactly the
	// given records, assigning sequential ids starting at 1. The previous
	// generation remains the active one until the new generation's
	// metadata is committed; a failure at any point leaves it intact.
	// Returns the new generation's metadata.
	ReplaceAll(ctx context.Context, records []*core.MedicineRecord) (*core.Generation, error)

	// CurrentGeneration returns the active generation's metadata.
	// Returns ErrNoGeneration before the first successful import.
	CurrentGeneration(ctx context.Context) (*core.Generation, error)

	// GetMedicine retrieves a single record from the active generation.
	// Returns ErrNotFound if the record doesn't exist.
	GetMedicine(ctx context.Context, id core.ID) (*core.MedicineRecord, error)

	// GetMedicines retrieves multiple records by id.
	// Returns only the records that exist (no error for missing records).
	GetMedicines(ctx context.Context, ids ...core.ID) ([]*core.MedicineRecord, error)

	// AllMedicines returns every record of the active generation in
	// ascending id order. Returns ErrNoGeneration before the first
	// import.
	AllMedicines(ctx context.Context) ([]*core.MedicineRecord, error)

	// Stats computes corpus statistics over the active generation.
	Stats(ctx context.Context) (*Stats, error)

	// Backup streams a full backup of the store to w, typically taken
	// right before a generation replace.
	Backup(ctx context.Context, w io.Writer) error
}
