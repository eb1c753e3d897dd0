package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the domain types. The schema is small
// and stable enough that generated code would add a build step without
// buying anything.

// IDMUS serializes ID values.
var IDMUS = idMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// MedicineRecordMUS serializes MedicineRecord values. Field order is part
// of the storage format and must not change between releases.
var MedicineRecordMUS = medicineRecordMUS{}

type medicineRecordMUS struct{}

func (s medicineRecordMUS) Marshal(v MedicineRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.MedicineName, bs[n:])
	n += ord.String.Marshal(v.IngredientName, bs[n:])
	n += ord.String.Marshal(v.Specification, bs[n:])
	n += varint.Int.Marshal(int(v.Classification), bs[n:])
	n += raw.Float64.Marshal(v.Price, bs[n:])
	n += ord.String.Marshal(v.Manufacturer, bs[n:])
	return n
}

func (s medicineRecordMUS) Unmarshal(bs []byte) (v MedicineRecord, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.MedicineName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IngredientName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Specification, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var c int
	c, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Classification = Classification(c)
	v.Price, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Manufacturer, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s medicineRecordMUS) Size(v MedicineRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.MedicineName)
	size += ord.String.Size(v.IngredientName)
	size += ord.String.Size(v.Specification)
	size += varint.Int.Size(int(v.Classification))
	size += raw.Float64.Size(v.Price)
	size += ord.String.Size(v.Manufacturer)
	return size
}

func (s medicineRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	for i := 0; i < 3; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

// GenerationMUS serializes Generation metadata.
var GenerationMUS = generationMUS{}

type generationMUS struct{}

func (s generationMUS) Marshal(v Generation, bs []byte) (n int) {
	n = varint.Uint64.Marshal(v.Seq, bs)
	n += varint.Uint64.Marshal(v.Fingerprint, bs[n:])
	n += varint.Int.Marshal(v.Count, bs[n:])
	n += varint.Int64.Marshal(v.ImportedAt, bs[n:])
	return n
}

func (s generationMUS) Unmarshal(bs []byte) (v Generation, n int, err error) {
	var n1 int
	v.Seq, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Fingerprint, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ImportedAt, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s generationMUS) Size(v Generation) (size int) {
	size = varint.Uint64.Size(v.Seq)
	size += varint.Uint64.Size(v.Fingerprint)
	size += varint.Int.Size(v.Count)
	size += varint.Int64.Size(v.ImportedAt)
	return size
}

func (s generationMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = varint.Uint64.Skip(bs)
	if err != nil {
		return
	}
	n1, err = varint.Uint64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return
}
