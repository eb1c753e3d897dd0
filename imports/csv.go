package imports

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rxscan/medsearch/core"
	"github.com/rxscan/medsearch/jptext"
	"github.com/rxscan/medsearch/storage"
)

// Required CSV columns, matching the medicine master export format.
const (
	columnClassification = "classification"
	columnIngredient     = "ingredient_name"
	columnSpecification  = "specification"
	columnProductName    = "product_name"
	columnManufacturer   = "manufacturer"
	columnPrice          = "price"
)

var requiredColumns = []string{
	columnClassification,
	columnIngredient,
	columnSpecification,
	columnProductName,
	columnManufacturer,
	columnPrice,
}

// Preview is the outcome of a dry-run parse: the records that would be
// imported and the rows that would be unreachable by search.
type Preview struct {
	Records   []*core.MedicineRecord
	Unindexed []int // 1-based row numbers of records with no searchable field
}

// Importer parses medicine master CSVs and replaces the corpus
// generation in the record store.
type Importer struct {
	repo      storage.MedicineRepository
	backupDir string
	logger    *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithBackupDir enables a full store backup into dir before each
// generation replace. Default is no backup.
func WithBackupDir(dir string) Option {
	return func(im *Importer) error {
		im.backupDir = dir
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(im *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		im.logger = logger
		return nil
	}
}

// NewImporter creates a new importer writing to repo.
func NewImporter(repo storage.MedicineRepository, opts ...Option) (*Importer, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	im := &Importer{
		repo:   repo,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(im); err != nil {
			return nil, err
		}
	}

	return im, nil
}

// Preview parses and validates the CSV without committing anything.
func (im *Importer) Preview(ctx context.Context, r io.Reader) (*Preview, error) {
	return im.parse(ctx, r)
}

// Import parses, validates, and atomically replaces the corpus
// generation. The previous generation survives any failure: parsing and
// validation complete before the first write, and the store publishes
// the new generation with a single metadata flip.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*core.Generation, error) {
	preview, err := im.parse(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(preview.Records) == 0 {
		return nil, ErrNoRecords
	}

	for _, row := range preview.Unindexed {
		im.logger.Warn("record has no searchable field and will be unreachable",
			"row", row)
	}

	if im.backupDir != "" {
		if err := im.backup(ctx); err != nil {
			return nil, err
		}
	}

	gen, err := im.repo.ReplaceAll(ctx, preview.Records)
	if err != nil {
		return nil, err
	}
	im.logger.Info("import complete",
		"records", gen.Count, "generation", gen.Seq)
	return gen, nil
}

// ImportFile imports from a CSV file on disk.
func (im *Importer) ImportFile(ctx context.Context, path string) (*core.Generation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return im.Import(ctx, f)
}

// PreviewFile previews a CSV file on disk.
func (im *Importer) PreviewFile(ctx context.Context, path string) (*Preview, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return im.Preview(ctx, f)
}

func (im *Importer) parse(ctx context.Context, r io.Reader) (*Preview, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoRecords
	}
	if err != nil {
		return nil, &RowError{Row: 1, Err: fmt.Errorf("%w: %w", ErrBadRow, err)}
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &RowError{Row: 1, Err: fmt.Errorf("%w: %s", ErrMissingColumn, name)}
		}
	}

	preview := &Preview{}
	row := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, &RowError{Row: row, Err: fmt.Errorf("%w: %w", ErrBadRow, err)}
		}

		price, err := parsePrice(fields[cols[columnPrice]])
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}

		rec := &core.MedicineRecord{
			MedicineName:   strings.TrimSpace(fields[cols[columnProductName]]),
			IngredientName: strings.TrimSpace(fields[cols[columnIngredient]]),
			Specification:  strings.TrimSpace(fields[cols[columnSpecification]]),
			Classification: core.ParseClassification(strings.TrimSpace(fields[cols[columnClassification]])),
			Price:          price,
			Manufacturer:   strings.TrimSpace(fields[cols[columnManufacturer]]),
		}
		if err := core.ValidateMedicineRecord(rec); err != nil {
			return nil, &RowError{Row: row, Err: err}
		}
		if !rec.HasSearchableField() {
			preview.Unindexed = append(preview.Unindexed, row)
		}
		preview.Records = append(preview.Records, rec)
	}

	return preview, nil
}

// parsePrice converts a price cell to a number. Width-folded first so
// full-width digits parse, then comma and space grouping is stripped.
// An empty cell means zero; anything else non-numeric is an error.
func parsePrice(s string) (float64, error) {
	s = jptext.Normalize(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadPrice, s)
	}
	return v, nil
}

// backup snapshots the store before a replace. A store without any
// generation yet has nothing worth backing up.
func (im *Importer) backup(ctx context.Context) error {
	if _, err := im.repo.CurrentGeneration(ctx); err != nil {
		if errors.Is(err, storage.ErrNoGeneration) {
			return nil
		}
		return err
	}

	if err := os.MkdirAll(im.backupDir, 0755); err != nil {
		return err
	}
	name := fmt.Sprintf("medsearch_backup_%s.bak", time.Now().Format("20060102_150405"))
	path := filepath.Join(im.backupDir, name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := im.repo.Backup(ctx, f); err != nil {
		os.Remove(path)
		return err
	}
	im.logger.Info("pre-import backup written", "path", path)
	return nil
}
