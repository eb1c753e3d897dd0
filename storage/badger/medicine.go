package badger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rxscan/medsearch/core"
	"github.com/rxscan/medsearch/storage"
)

// replaceBatchSize bounds how many records go into one write
// transaction during a generation replace. Badger limits transaction
// size; the generation pointer flip happens in its own final
// transaction anyway, so batching does not weaken atomicity.
const replaceBatchSize = 500

// medicineRepository implements storage.MedicineRepository on BadgerDB.
type medicineRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.MedicineRepository = (*medicineRepository)(nil)

// NewMedicineRepository creates a medicine repository on an open backend.
func NewMedicineRepository(backend *Backend) (storage.MedicineRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &medicineRepository{
		backend: backend,
		logger:  slog.Default(),
	}, nil
}

func (r *medicineRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

func (r *medicineRepository) Close() error {
	// The backend is shared and closed by its owner.
	return nil
}

// ReplaceAll writes the new generation's records under a fresh
// generation prefix, then publishes it by rewriting the single metadata
// key. Readers of the previous generation are unaffected until the flip;
// any failure before the flip leaves the previous generation active.
// Old generation keys are deleted best-effort after publication.
func (r *medicineRepository) ReplaceAll(ctx context.Context, records []*core.MedicineRecord) (*core.Generation, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if len(records) == 0 {
		return nil, storage.ErrEmptyGeneration
	}

	prev, err := r.CurrentGeneration(ctx)
	if err != nil && !errors.Is(err, storage.ErrNoGeneration) {
		return nil, err
	}
	var newSeq uint64 = 1
	if prev != nil {
		newSeq = prev.Seq + 1
	}

	// Ids are assigned by import position, starting at 1.
	for i, rec := range records {
		if err := core.ValidateMedicineRecord(rec); err != nil {
			return nil, err
		}
		rec.Id = core.ID(i + 1)
	}

	for start := 0; start < len(records); start += replaceBatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+replaceBatchSize, len(records))
		batch := records[start:end]
		err := r.backend.Update(func(tx *badger.Txn) error {
			for _, rec := range batch {
				key := makeMedicineKey(newSeq, rec.Id)
				if err := tx.Set(key, storage.MarshalMedicineRecord(rec)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
		}
	}

	gen := &core.Generation{
		Seq:         newSeq,
		Fingerprint: core.Fingerprint(records),
		Count:       len(records),
		ImportedAt:  time.Now().UTC().UnixMicro(),
	}
	err = r.backend.Update(func(tx *badger.Txn) error {
		return tx.Set(makeGenerationMetaKey(), storage.MarshalGeneration(gen))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}

	r.logger.Info("corpus generation published",
		"generation", gen.Seq, "records", gen.Count)

	if prev != nil {
		if err := r.deleteGeneration(prev.Seq); err != nil {
			r.logger.Warn("failed to clean up previous generation",
				"generation", prev.Seq, "err", err)
		}
	}
	return gen, nil
}

func (r *medicineRepository) CurrentGeneration(ctx context.Context) (*core.Generation, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var gen *core.Generation
	err := r.backend.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeGenerationMetaKey())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNoGeneration
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			g, err := storage.UnmarshalGeneration(val)
			if err != nil {
				return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
			}
			gen = g
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return gen, nil
}

func (r *medicineRepository) GetMedicine(ctx context.Context, id core.ID) (*core.MedicineRecord, error) {
	gen, err := r.CurrentGeneration(ctx)
	if err != nil {
		return nil, err
	}
	var rec *core.MedicineRecord
	err = r.backend.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeMedicineKey(gen.Seq, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			m, err := storage.UnmarshalMedicineRecord(val)
			if err != nil {
				return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
			}
			rec = m
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *medicineRepository) GetMedicines(ctx context.Context, ids ...core.ID) ([]*core.MedicineRecord, error) {
	gen, err := r.CurrentGeneration(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]*core.MedicineRecord, 0, len(ids))
	err = r.backend.View(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := tx.Get(makeMedicineKey(gen.Seq, id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue // missing records are skipped, not errors
			}
			if err != nil {
				return err
			}
			valErr := item.Value(func(val []byte) error {
				m, err := storage.UnmarshalMedicineRecord(val)
				if err != nil {
					return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
				}
				records = append(records, m)
				return nil
			})
			if valErr != nil {
				return valErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicineRepository) AllMedicines(ctx context.Context) ([]*core.MedicineRecord, error) {
	gen, err := r.CurrentGeneration(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]*core.MedicineRecord, 0, gen.Count)
	err = r.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeGenerationPrefix(gen.Seq)
		it := tx.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			valErr := it.Item().Value(func(val []byte) error {
				m, err := storage.UnmarshalMedicineRecord(val)
				if err != nil {
					return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
				}
				records = append(records, m)
				return nil
			})
			if valErr != nil {
				return valErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicineRepository) Stats(ctx context.Context) (*storage.Stats, error) {
	records, err := r.AllMedicines(ctx)
	if err != nil {
		return nil, err
	}
	manufacturers := make(map[string]struct{})
	ingredients := make(map[string]struct{})
	for _, rec := range records {
		if rec.Manufacturer != "" {
			manufacturers[rec.Manufacturer] = struct{}{}
		}
		if rec.IngredientName != "" {
			ingredients[rec.IngredientName] = struct{}{}
		}
	}
	return &storage.Stats{
		TotalMedicines: len(records),
		Manufacturers:  len(manufacturers),
		Ingredients:    len(ingredients),
	}, nil
}

func (r *medicineRepository) Backup(ctx context.Context, w io.Writer) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.backend.BackupTo(w)
}

// deleteGeneration removes every record key of one generation, in
// batches to respect transaction size limits.
func (r *medicineRepository) deleteGeneration(seq uint64) error {
	prefix := makeGenerationPrefix(seq)
	for {
		var keys [][]byte
		err := r.backend.View(func(tx *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = prefix
			opts.PrefetchValues = false
			it := tx.NewIterator(opts)
			defer it.Close()
			for it.Rewind(); it.Valid() && len(keys) < replaceBatchSize; it.Next() {
				keys = append(keys, it.Item().KeyCopy(nil))
			}
			return nil
		})
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			return nil
		}
		err = r.backend.Update(func(tx *badger.Txn) error {
			for _, key := range keys {
				if err := tx.Delete(key); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
}
