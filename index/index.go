package index

import (
	"sort"
	"strings"

	"github.com/rxscan/medsearch/core"
)

// Index is one immutable generation of the inverted index. All methods
// are read-only and safe for concurrent use.
type Index struct {
	gramSize  int
	records   map[core.ID]*core.MedicineRecord
	ids       []core.ID // ascending
	postings  map[string][]Posting
	fields    []FieldRef // sorted by (Text, Id, Field)
	norm      map[core.ID][core.NumSearchableFields]string
	unindexed []core.ID // ascending; records with no searchable field
}

// GramSize returns the n-gram size the index was built with.
func (ix *Index) GramSize() int {
	return ix.gramSize
}

// Len returns the number of records in the generation.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Record returns the record for id, or nil if the generation does not
// contain it.
func (ix *Index) Record(id core.ID) *core.MedicineRecord {
	return ix.records[id]
}

// IDs returns all record ids in ascending order. The returned slice is
// shared and must not be modified.
func (ix *Index) IDs() []core.ID {
	return ix.ids
}

// Postings returns the posting list for one gram, sorted by
// (Id, Field, Pos). The returned slice is shared and must not be
// modified. A gram absent from every record yields nil.
func (ix *Index) Postings(gram string) []Posting {
	return ix.postings[gram]
}

// NormalizedField returns the normalized text of one searchable field.
func (ix *Index) NormalizedField(id core.ID, field core.FieldKind) string {
	return ix.norm[id][field]
}

// PrefixRefs returns every field whose normalized text begins with
// prefix, ordered by (Text, Id, Field). prefix must already be
// normalized.
func (ix *Index) PrefixRefs(prefix string) []FieldRef {
	lo := sort.Search(len(ix.fields), func(i int) bool {
		return ix.fields[i].Text >= prefix
	})
	hi := lo
	for hi < len(ix.fields) && strings.HasPrefix(ix.fields[hi].Text, prefix) {
		hi++
	}
	return ix.fields[lo:hi]
}

// Unindexed returns the ids of records that carry no searchable field
// and are therefore unreachable by any query, in ascending order.
func (ix *Index) Unindexed() []core.ID {
	return ix.unindexed
}
