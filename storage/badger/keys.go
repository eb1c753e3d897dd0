package badger

import (
	"encoding/binary"

	"github.com/rxscan/medsearch/core"
)

// Key prefixes for different data types
const (
	medicinePrefix = "medrec"
	generationMeta = "medgen:current"
)

// makeGenerationPrefix generates the key prefix covering every record of
// one generation.
func makeGenerationPrefix(seq uint64) []byte {
	prefix := medicinePrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeMedicineKey generates a composite key for a medicine record.
// Format: prefix:generation:id, BigEndian so iteration order is
// ascending id within a generation.
func makeMedicineKey(seq uint64, id core.ID) []byte {
	genPrefix := makeGenerationPrefix(seq)
	buf := make([]byte, len(genPrefix)+8)
	offset := copy(buf, genPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeGenerationMetaKey generates the key holding the active
// generation's metadata. Flipping this single key publishes a new
// generation.
func makeGenerationMetaKey() []byte {
	return []byte(generationMeta)
}
