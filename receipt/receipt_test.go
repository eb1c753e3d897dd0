package receipt

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/rxscan/medsearch/core"
	"github.com/rxscan/medsearch/storage"
	"github.com/rxscan/medsearch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededRepo(t *testing.T) storage.MedicineRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(); backend.Close() })

	_, err = repo.ReplaceAll(context.Background(), []*core.MedicineRecord{
		{
			MedicineName:   "ロキソニン錠60mg",
			IngredientName: "ロキソプロフェンナトリウム水和物",
			Specification:  "60mg1錠",
			Classification: core.ClassificationInternal,
			Price:          10.1,
			Manufacturer:   "第一三共",
		},
		{
			MedicineName:   "カロナール錠300",
			IngredientName: "アセトアミノフェン",
			Specification:  "300mg1錠",
			Classification: core.ClassificationInternal,
			Price:          7.9,
			Manufacturer:   "あゆみ製薬",
		},
	})
	require.NoError(t, err)
	return repo
}

func TestBuild(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	r, err := Build(ctx, repo, []Line{
		{RecordId: 1, Quantity: 3},
		{RecordId: 2, Quantity: 2},
	})
	require.NoError(t, err)

	require.Len(t, r.Items, 2)
	assert.Equal(t, "ロキソニン錠60mg", r.Items[0].Record.MedicineName)
	assert.InDelta(t, 30.3, r.Items[0].Amount, 1e-9)
	assert.InDelta(t, 15.8, r.Items[1].Amount, 1e-9)
	assert.InDelta(t, 46.1, r.Total, 1e-9)
}

func TestBuildErrors(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	t.Run("nil repository", func(t *testing.T) {
		_, err := Build(ctx, nil, nil)
		assert.Equal(t, ErrRepositoryRequired, err)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := Build(ctx, repo, []Line{{RecordId: 1, Quantity: 0}})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("unknown record", func(t *testing.T) {
		_, err := Build(ctx, repo, []Line{{RecordId: 99, Quantity: 1}})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestWriteCSV(t *testing.T) {
	repo := seededRepo(t)

	r, err := Build(context.Background(), repo, []Line{{RecordId: 1, Quantity: 2}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteCSV(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "medicine_name", rows[0][0])
	assert.Equal(t, "ロキソニン錠60mg", rows[1][0])
	assert.Equal(t, "internal", rows[1][3])
	assert.Equal(t, "2", rows[1][6])
	assert.Equal(t, "20.2", rows[1][7])
}
