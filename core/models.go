package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for a medicine record.
// IDs are assigned sequentially at import time and are stable within one
// corpus generation.
type ID uint64

// Classification is the dispensing category of a medicine.
type Classification int

const (
	// ClassificationUnspecified is used when the source data carries no
	// usable category.
	ClassificationUnspecified Classification = iota
	// ClassificationInternal marks orally administered medicines.
	ClassificationInternal
	// ClassificationExternal marks externally applied medicines.
	ClassificationExternal
)

// ParseClassification maps a raw category string to a Classification.
// Both Japanese master-file values and ASCII spellings are accepted.
// Unknown values map to ClassificationUnspecified.
func ParseClassification(s string) Classification {
	switch s {
	case "内服", "内用", "internal":
		return ClassificationInternal
	case "外用", "external":
		return ClassificationExternal
	default:
		return ClassificationUnspecified
	}
}

func (c Classification) String() string {
	switch c {
	case ClassificationInternal:
		return "internal"
	case ClassificationExternal:
		return "external"
	default:
		return "unspecified"
	}
}

// FieldKind identifies one searchable field of a MedicineRecord.
type FieldKind int

const (
	FieldMedicineName FieldKind = iota
	FieldIngredientName
	FieldSpecification
	FieldManufacturer

	// NumSearchableFields is the number of FieldKind values.
	NumSearchableFields = 4
)

func (k FieldKind) String() string {
	switch k {
	case FieldMedicineName:
		return "medicine_name"
	case FieldIngredientName:
		return "ingredient_name"
	case FieldSpecification:
		return "specification"
	case FieldManufacturer:
		return "manufacturer"
	default:
		return "unknown"
	}
}

// MedicineRecord is one row of the medicine master.
// Records are immutable once imported; a re-import replaces the whole
// corpus generation rather than mutating rows in place.
type MedicineRecord struct {
	Id             ID
	MedicineName   string
	IngredientName string
	Specification  string
	Classification Classification
	Price          float64
	Manufacturer   string
}

// SearchableFields returns the record's full-text searchable fields,
// indexed by FieldKind. Classification and price are not searchable.
func (r *MedicineRecord) SearchableFields() [NumSearchableFields]string {
	return [NumSearchableFields]string{
		FieldMedicineName:   r.MedicineName,
		FieldIngredientName: r.IngredientName,
		FieldSpecification:  r.Specification,
		FieldManufacturer:   r.Manufacturer,
	}
}

// HasSearchableField reports whether at least one searchable field is
// non-empty. A record without any is unreachable by search.
func (r *MedicineRecord) HasSearchableField() bool {
	for _, f := range r.SearchableFields() {
		if f != "" {
			return true
		}
	}
	return false
}

// Generation describes one immutable corpus snapshot.
type Generation struct {
	Seq         uint64
	Fingerprint uint64
	Count       int
	ImportedAt  int64 // unix micros
}

// Fingerprint computes a deterministic BLAKE2b content hash over a record
// set. Two corpora with identical records (including IDs and order) have
// identical fingerprints.
func Fingerprint(records []*MedicineRecord) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	for _, r := range records {
		buf := make([]byte, MedicineRecordMUS.Size(*r))
		MedicineRecordMUS.Marshal(*r, buf)
		h.Write(buf)
	}
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// SearchHit is one ranked result from the query engine.
type SearchHit struct {
	Record *MedicineRecord
	Score  float64
}
