package medsearch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rxscan/medsearch/core"
	"github.com/rxscan/medsearch/index"
	"github.com/rxscan/medsearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `classification,ingredient_name,specification,product_name,manufacturer,price
内服,ロキソプロフェンナトリウム水和物,60mg1錠,ロキソニン錠60mg,第一三共,10.10
内服,アセトアミノフェン,300mg1錠,カロナール錠300,あゆみ製薬,7.90
外用,ロキソプロフェンナトリウム水和物,10cm×14cm,ロキソニンテープ100mg,リードケミカル,25.70
`

func newTestDatabase(t *testing.T, opts ...DatabaseOption) *Database {
	t.Helper()
	db, err := NewDatabase("", append(opts, WithInMemory())...)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSearchBeforeImport(t *testing.T) {
	db := newTestDatabase(t)

	searcher, err := db.NewSearcher()
	require.NoError(t, err)

	_, err = searcher.Search(context.Background(), "ロキソ", search.ModePrefix, 10)
	assert.ErrorIs(t, err, search.ErrIndexUnavailable)
}

func TestImportAndSearch(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	gen, err := db.ImportCSV(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, gen.Count)

	searcher, err := db.NewSearcher()
	require.NoError(t, err)

	hits, err := searcher.Search(ctx, "ロキソ", search.ModePrefix, 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "ロキソニン錠60mg", hits[0].Record.MedicineName)
	assert.Equal(t, "ロキソニンテープ100mg", hits[1].Record.MedicineName)
}

func TestImportAndMatch(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	_, err := db.ImportCSV(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	matcher, err := db.NewMatcher()
	require.NoError(t, err)

	cands, err := matcher.Match(ctx, "ロキソニン 60mg", 3)
	require.NoError(t, err)
	require.NotEmpty(t, cands)
	assert.Equal(t, core.ID(1), cands[0].Record.Id)
	assert.GreaterOrEqual(t, cands[0].Confidence, 0.6)
}

func TestReimportSwitchesGeneration(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	_, err := db.ImportCSV(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	replacement := `classification,ingredient_name,specification,product_name,manufacturer,price
内服,イブプロフェン,100mg1錠,ブルフェン錠100,科研製薬,8.90
`
	gen, err := db.ImportCSV(ctx, strings.NewReader(replacement))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), gen.Seq)

	searcher, err := db.NewSearcher()
	require.NoError(t, err)

	// The old corpus is gone, the new one is searchable.
	hits, err := searcher.Search(ctx, "ロキソ", search.ModePrefix, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = searcher.Search(ctx, "ブルフェン", search.ModePrefix, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, core.ID(1), hits[0].Record.Id)
}

func TestFailedImportKeepsIndex(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	_, err := db.ImportCSV(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	bad := `classification,ingredient_name,specification,product_name,manufacturer,price
内服,成分A,1錠,製品A,メーカーA,no-price
`
	_, err = db.ImportCSV(ctx, strings.NewReader(bad))
	require.Error(t, err)

	// Queries keep running against the previous snapshot.
	searcher, err := db.NewSearcher()
	require.NoError(t, err)
	hits, err := searcher.Search(ctx, "ロキソ", search.ModePrefix, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestImportIndexRebuildFailure(t *testing.T) {
	// Rebuild options are applied only at index build time, so an invalid
	// gram size surfaces after the store has already committed the new
	// generation.
	db := newTestDatabase(t, WithIndexOptions(index.WithGramSize(1)))
	ctx := context.Background()

	_, err := db.ImportCSV(ctx, strings.NewReader(sampleCSV))
	require.Error(t, err)
	assert.ErrorIs(t, err, index.ErrInvalidGramSize)

	// The store holds the committed generation, while queries still see
	// no snapshot until a successful rebuild or reopen.
	gen, err := db.MedicineRepository().CurrentGeneration(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gen.Seq)

	searcher, err := db.NewSearcher()
	require.NoError(t, err)
	_, err = searcher.Search(ctx, "ロキソ", search.ModePrefix, 10)
	assert.ErrorIs(t, err, search.ErrIndexUnavailable)
}

func TestReopenRestoresIndex(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := NewDatabase(dir)
	require.NoError(t, err)

	_, err = db.ImportCSV(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening rebuilds the index from the committed generation: search
	// works without a re-import.
	db, err = NewDatabase(dir)
	require.NoError(t, err)
	defer db.Close()

	searcher, err := db.NewSearcher()
	require.NoError(t, err)
	hits, err := searcher.Search(ctx, "カロナール", search.ModePrefix, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "カロナール錠300", hits[0].Record.MedicineName)
}

func TestPreviewCSVFile(t *testing.T) {
	db := newTestDatabase(t)

	path := filepath.Join(t.TempDir(), "master.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	preview, err := db.PreviewCSVFile(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, preview.Records, 3)

	// Previews never commit.
	searcher, err := db.NewSearcher()
	require.NoError(t, err)
	_, err = searcher.Search(context.Background(), "ロキソ", search.ModePrefix, 10)
	assert.ErrorIs(t, err, search.ErrIndexUnavailable)
}

func TestStats(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	_, err := db.ImportCSV(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalMedicines)
	assert.Equal(t, 3, stats.Manufacturers)
	assert.Equal(t, 2, stats.Ingredients)
}
