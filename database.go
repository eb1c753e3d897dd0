// Copyright 2026 Rxscan Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package medsearch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/rxscan/medsearch/core"
	"github.com/rxscan/medsearch/imports"
	"github.com/rxscan/medsearch/index"
	"github.com/rxscan/medsearch/match"
	"github.com/rxscan/medsearch/search"
	"github.com/rxscan/medsearch/storage"
	"github.com/rxscan/medsearch/storage/badger"
)

// Database wires the record store, the index generation, and the search
// and matching front ends together. It is the explicit handle that
// replaces any process-wide state: multiple Databases (for example test
// fixtures) coexist freely.
type Database struct {
	backend *badger.Backend
	repo    storage.MedicineRepository

	current  atomic.Pointer[index.Index]
	importMu sync.Mutex // one import in flight at a time

	indexOpts []index.Option
	backupDir string
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory  bool
	backupDir string
	indexOpts []index.Option
}

// WithInMemory opens the store in memory, discarding data on Close.
// Intended for tests and previews.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithBackupDir enables a pre-import backup of the store into dir.
func WithBackupDir(dir string) DatabaseOption {
	return func(o *databaseOptions) {
		o.backupDir = dir
	}
}

// WithIndexOptions forwards options to every index build.
func WithIndexOptions(opts ...index.Option) DatabaseOption {
	return func(o *databaseOptions) {
		o.indexOpts = append(o.indexOpts, opts...)
	}
}

// NewDatabase opens (or creates) a medicine database at filePath. If a
// corpus generation is already committed, its index is rebuilt so search
// is available without re-import.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewMedicineRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	db := &Database{
		backend:   backend,
		repo:      repo,
		indexOpts: options.indexOpts,
		backupDir: options.backupDir,
		logger:    slog.Default(),
	}

	if err := db.reload(context.Background()); err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}

	return db, nil
}

func (db *Database) Close() error {
	if err := db.repo.Close(); err != nil {
		db.logger.Error("error closing medicine repository", "err", err)
		return err
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Current returns the active index generation, or nil before the first
// successful import. Implements search.Provider.
func (db *Database) Current() *index.Index {
	return db.current.Load()
}

// MedicineRepository exposes the underlying record store.
func (db *Database) MedicineRepository() storage.MedicineRepository {
	return db.repo
}

// ImportCSV replaces the corpus generation from CSV data, rebuilds the
// index off-line, and atomically switches readers to the new snapshot.
// In-flight queries continue against the previous snapshot until the
// swap. If the rebuild fails after the store has committed the new
// generation, the error is returned and readers keep the previous
// snapshot; the committed generation is picked up on the next reopen.
func (db *Database) ImportCSV(ctx context.Context, r io.Reader) (*core.Generation, error) {
	db.importMu.Lock()
	defer db.importMu.Unlock()

	importer, err := db.newImporter()
	if err != nil {
		return nil, err
	}
	gen, err := importer.Import(ctx, r)
	if err != nil {
		return nil, err
	}
	if err := db.reloadImported(ctx, gen); err != nil {
		return nil, err
	}
	return gen, nil
}

// ImportCSVFile imports from a CSV file on disk.
func (db *Database) ImportCSVFile(ctx context.Context, path string) (*core.Generation, error) {
	db.importMu.Lock()
	defer db.importMu.Unlock()

	importer, err := db.newImporter()
	if err != nil {
		return nil, err
	}
	gen, err := importer.ImportFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := db.reloadImported(ctx, gen); err != nil {
		return nil, err
	}
	return gen, nil
}

// reloadImported rebuilds the index for a generation the store has
// already committed. A failure here means the store and the index have
// diverged until the next successful reload or reopen.
func (db *Database) reloadImported(ctx context.Context, gen *core.Generation) error {
	if err := db.reload(ctx); err != nil {
		db.logger.Error("generation committed but index rebuild failed; queries keep the previous snapshot until reopen",
			"generation", gen.Seq, "err", err)
		return err
	}
	return nil
}

// PreviewCSVFile parses and validates a CSV without committing.
func (db *Database) PreviewCSVFile(ctx context.Context, path string) (*imports.Preview, error) {
	importer, err := db.newImporter()
	if err != nil {
		return nil, err
	}
	return importer.PreviewFile(ctx, path)
}

// NewSearcher creates a query engine bound to this database's current
// generation.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db, opts...)
}

// NewMatcher creates an OCR matcher bound to this database's current
// generation.
func (db *Database) NewMatcher(opts ...match.Option) (*match.Matcher, error) {
	searcher, err := db.NewSearcher()
	if err != nil {
		return nil, err
	}
	return match.NewMatcher(searcher, opts...)
}

// Stats computes corpus statistics over the active generation.
func (db *Database) Stats(ctx context.Context) (*storage.Stats, error) {
	return db.repo.Stats(ctx)
}

func (db *Database) newImporter() (*imports.Importer, error) {
	opts := []imports.Option{imports.WithLogger(db.logger)}
	if db.backupDir != "" {
		opts = append(opts, imports.WithBackupDir(db.backupDir))
	}
	return imports.NewImporter(db.repo, opts...)
}

// reload rebuilds the index from the committed generation and publishes
// it. Before the first import it leaves the current snapshot nil, which
// the query engine reports as ErrIndexUnavailable.
func (db *Database) reload(ctx context.Context) error {
	records, err := db.repo.AllMedicines(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNoGeneration) {
			return nil
		}
		return err
	}
	ix, err := index.Build(records, db.indexOpts...)
	if err != nil {
		return err
	}
	db.current.Store(ix)
	db.logger.Debug("index generation published", "records", ix.Len())
	return nil
}
