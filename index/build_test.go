package index

import (
	"testing"

	"github.com/rxscan/medsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureRecords() []*core.MedicineRecord {
	return []*core.MedicineRecord{
		{
			Id:             1,
			MedicineName:   "ロキソニン錠60mg",
			IngredientName: "ロキソプロフェンナトリウム水和物",
			Specification:  "60mg1錠",
			Classification: core.ClassificationInternal,
			Price:          10.1,
			Manufacturer:   "第一三共",
		},
		{
			Id:             2,
			MedicineName:   "カロナール錠300",
			IngredientName: "アセトアミノフェン",
			Specification:  "300mg1錠",
			Classification: core.ClassificationInternal,
			Price:          7.9,
			Manufacturer:   "あゆみ製薬",
		},
		{
			Id:             3,
			MedicineName:   "ロキソニンテープ100mg",
			IngredientName: "ロキソプロフェンナトリウム水和物",
			Specification:  "10cm×14cm",
			Classification: core.ClassificationExternal,
			Price:          25.7,
			Manufacturer:   "リードケミカル",
		},
	}
}

func TestBuild(t *testing.T) {
	ix, err := Build(fixtureRecords())
	require.NoError(t, err)

	assert.Equal(t, 2, ix.GramSize())
	assert.Equal(t, 3, ix.Len())
	assert.Equal(t, []core.ID{1, 2, 3}, ix.IDs())
	assert.Empty(t, ix.Unindexed())

	rec := ix.Record(1)
	require.NotNil(t, rec)
	assert.Equal(t, "ロキソニン錠60mg", rec.MedicineName)
	assert.Nil(t, ix.Record(99))
}

func TestBuildNormalizedFields(t *testing.T) {
	ix, err := Build(fixtureRecords())
	require.NoError(t, err)

	assert.Equal(t, "ろきそにん錠60mg", ix.NormalizedField(1, core.FieldMedicineName))
	assert.Equal(t, "かろなーる錠300", ix.NormalizedField(2, core.FieldMedicineName))
	assert.Equal(t, "あせとあみのふぇん", ix.NormalizedField(2, core.FieldIngredientName))
}

func TestBuildPostings(t *testing.T) {
	ix, err := Build(fixtureRecords())
	require.NoError(t, err)

	// The bigram ろき starts both ロキソニン products' names and their
	// shared ingredient.
	posts := ix.Postings("ろき")
	require.NotEmpty(t, posts)
	ids := map[core.ID]bool{}
	for _, p := range posts {
		ids[p.Id] = true
	}
	assert.Equal(t, map[core.ID]bool{1: true, 3: true}, ids)

	// Postings are sorted by (Id, Field, Pos).
	for i := 1; i < len(posts); i++ {
		a, b := posts[i-1], posts[i]
		less := a.Id < b.Id ||
			(a.Id == b.Id && a.Field < b.Field) ||
			(a.Id == b.Id && a.Field == b.Field && a.Pos < b.Pos)
		assert.True(t, less, "postings out of order at %d", i)
	}

	assert.Nil(t, ix.Postings("zz"))
}

func TestBuildPrefixRefs(t *testing.T) {
	ix, err := Build(fixtureRecords())
	require.NoError(t, err)

	refs := ix.PrefixRefs("ろきそにん")
	ids := map[core.ID]bool{}
	for _, ref := range refs {
		ids[ref.Id] = true
		assert.Contains(t, []core.FieldKind{core.FieldMedicineName}, ref.Field)
	}
	assert.Equal(t, map[core.ID]bool{1: true, 3: true}, ids)

	assert.Empty(t, ix.PrefixRefs("かろなーる錠3000"))
	assert.NotEmpty(t, ix.PrefixRefs("かろなーる"))
}

func TestBuildRebuildEquivalence(t *testing.T) {
	// Building twice from the same records, and once from a reversed
	// slice, yields equivalent indexes: concurrency and input order leave
	// no trace.
	first, err := Build(fixtureRecords())
	require.NoError(t, err)
	second, err := Build(fixtureRecords())
	require.NoError(t, err)

	reversed := fixtureRecords()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	third, err := Build(reversed)
	require.NoError(t, err)

	for _, other := range []*Index{second, third} {
		assert.Equal(t, first.IDs(), other.IDs())
		assert.Equal(t, first.postings, other.postings)
		assert.Equal(t, first.fields, other.fields)
		assert.Equal(t, first.norm, other.norm)
	}
}

func TestBuildUnindexedRecords(t *testing.T) {
	records := append(fixtureRecords(), &core.MedicineRecord{Id: 4, Price: 1.0})
	ix, err := Build(records)
	require.NoError(t, err)

	assert.Equal(t, []core.ID{4}, ix.Unindexed())
	assert.Equal(t, 4, ix.Len())

	// Unindexed records are stored but produce no field refs.
	assert.Equal(t, "", ix.NormalizedField(4, core.FieldMedicineName))
}

func TestBuildDuplicateID(t *testing.T) {
	records := fixtureRecords()
	records[1].Id = 1

	_, err := Build(records)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestBuildInvalidRecord(t *testing.T) {
	records := fixtureRecords()
	records[0].Price = -5

	_, err := Build(records)
	assert.ErrorIs(t, err, core.ErrInvalidRecord)
}

func TestBuildOptions(t *testing.T) {
	t.Run("gram size below two rejected", func(t *testing.T) {
		_, err := Build(fixtureRecords(), WithGramSize(1))
		assert.ErrorIs(t, err, ErrInvalidGramSize)
	})

	t.Run("trigram index", func(t *testing.T) {
		ix, err := Build(fixtureRecords(), WithGramSize(3))
		require.NoError(t, err)
		assert.Equal(t, 3, ix.GramSize())
		assert.NotEmpty(t, ix.Postings("ろきそ"))
		assert.Nil(t, ix.Postings("ろき"))
	})

	t.Run("single worker", func(t *testing.T) {
		ix, err := Build(fixtureRecords(), WithPoolSize(1))
		require.NoError(t, err)
		assert.Equal(t, 3, ix.Len())
	})

	t.Run("empty corpus", func(t *testing.T) {
		ix, err := Build(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, ix.Len())
	})
}
