package storage

import (
	"testing"

	"github.com/rxscan/medsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicineRecordRoundTrip(t *testing.T) {
	record := &core.MedicineRecord{
		Id:             42,
		MedicineName:   "ロキソニン錠60mg",
		IngredientName: "ロキソプロフェンナトリウム水和物",
		Specification:  "60mg1錠",
		Classification: core.ClassificationInternal,
		Price:          10.1,
		Manufacturer:   "第一三共",
	}

	data := MarshalMedicineRecord(record)
	got, err := UnmarshalMedicineRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestGenerationRoundTrip(t *testing.T) {
	gen := &core.Generation{
		Seq:         7,
		Fingerprint: 0xdeadbeefcafe,
		Count:       12345,
		ImportedAt:  1756000000000000,
	}

	data := MarshalGeneration(gen)
	got, err := UnmarshalGeneration(data)
	require.NoError(t, err)
	assert.Equal(t, gen, got)
}

func TestUnmarshalTruncatedData(t *testing.T) {
	record := &core.MedicineRecord{Id: 1, MedicineName: "カロナール錠300"}
	data := MarshalMedicineRecord(record)

	_, err := UnmarshalMedicineRecord(data[:len(data)/2])
	assert.Error(t, err)

	_, err = UnmarshalGeneration(nil)
	assert.Error(t, err)
}

func TestIDRoundTrip(t *testing.T) {
	data := MarshalID(core.ID(300))
	got, err := UnmarshalID(data)
	require.NoError(t, err)
	assert.Equal(t, core.ID(300), got)
}
