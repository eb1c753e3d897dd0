package index

import "github.com/rxscan/medsearch/core"

// Posting records a single occurrence of a token: the record it appears
// in, the field, and the rune offset within that field's normalized text.
type Posting struct {
	Id    core.ID
	Field core.FieldKind
	Pos   int
}

// FieldRef identifies one normalized field value of one record, used for
// exact and prefix lookup.
type FieldRef struct {
	Id    core.ID
	Field core.FieldKind
	Text  string
}
