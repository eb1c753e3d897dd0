package match

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/rxscan/medsearch/core"
	"github.com/rxscan/medsearch/jptext"
	"github.com/rxscan/medsearch/search"
)

// DefaultConfidenceFloor is the minimum similarity for a candidate to be
// reported. A tunable design parameter, not a contract.
const DefaultConfidenceFloor = 0.6

// defaultSearchLimit bounds the fuzzy candidate list fetched per
// fragment before similarity refinement. The cut is made on the query
// engine's band scores, so hits beyond the limit are never re-scored by
// alignment.
const defaultSearchLimit = 20

// Packaging words that mark a fragment as noise rather than a medicine
// name (kit, set, bag). Stored normalized.
var defaultStopWords = []string{"キット", "セット", "バッグ"}

// Span marks the rune span of the record's normalized medicine name that
// best aligned with the fragment.
type Span struct {
	Start, End int
}

// Candidate is one proposed resolution of an OCR fragment to a record.
type Candidate struct {
	Record     *core.MedicineRecord
	Confidence float64 // in [0, 1]
	Fragment   string  // the raw fragment this candidate was derived from
	Span       Span
	distance   int // alignment edit distance, for tie-breaking
}

// Matcher resolves OCR text fragments to medicine records.
type Matcher struct {
	searcher    *search.Searcher
	floor       float64
	searchLimit int
	stopWords   []string
	logger      *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithConfidenceFloor sets the minimum reported confidence.
// Default is DefaultConfidenceFloor.
func WithConfidenceFloor(floor float64) Option {
	return func(m *Matcher) error {
		if floor < 0 || floor > 1 {
			return ErrInvalidConfidenceFloor
		}
		m.floor = floor
		return nil
	}
}

// WithSearchLimit sets how many fuzzy hits are refined per fragment.
// The limit bounds refinement recall: hits truncated by the query
// engine's band-score ranking are never alignment-scored, even if their
// alignment confidence would have ranked them first. Raise the limit
// for dense corpora where many records fall in the same score band.
func WithSearchLimit(limit int) Option {
	return func(m *Matcher) error {
		if limit < 1 {
			limit = 1
		}
		m.searchLimit = limit
		return nil
	}
}

// WithStopWords replaces the default packaging stop words.
func WithStopWords(words ...string) Option {
	return func(m *Matcher) error {
		m.stopWords = normalizeAll(words)
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMatcher creates a new matcher on top of a query engine.
func NewMatcher(searcher *search.Searcher, opts ...Option) (*Matcher, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	m := &Matcher{
		searcher:    searcher,
		floor:       DefaultConfidenceFloor,
		searchLimit: defaultSearchLimit,
		stopWords:   normalizeAll(defaultStopWords),
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Match segments ocrText on line boundaries (the only structure OCR
// guarantees) and resolves each fragment, returning candidates in
// fragment order, topK per fragment. Fragments with no match above the
// floor contribute nothing; an empty input yields an empty result.
func (m *Matcher) Match(ctx context.Context, ocrText string, topK int) ([]*Candidate, error) {
	var out []*Candidate
	for _, line := range strings.Split(ocrText, "\n") {
		cands, err := m.MatchFragment(ctx, line, topK)
		if err != nil {
			return nil, err
		}
		out = append(out, cands...)
	}
	if out == nil {
		out = []*Candidate{}
	}
	return out, nil
}

// MatchDocument resolves every segment of one OCR pass. Segment
// confidence is not consulted: low-confidence segments are attempted
// like any other.
func (m *Matcher) MatchDocument(ctx context.Context, doc *Document, topK int) ([]*Candidate, error) {
	if doc == nil {
		return []*Candidate{}, nil
	}
	var out []*Candidate
	for _, seg := range doc.Segments {
		cands, err := m.MatchFragment(ctx, seg.Text, topK)
		if err != nil {
			return nil, err
		}
		out = append(out, cands...)
	}
	if out == nil {
		out = []*Candidate{}
	}
	return out, nil
}

// MatchFragment resolves a single OCR fragment. Returns up to topK
// candidates (topK <= 0 means no truncation), highest confidence first,
// ties broken by shorter edit distance then ascending id. An empty or
// unmatchable fragment yields an empty list, never an error.
func (m *Matcher) MatchFragment(ctx context.Context, fragment string, topK int) ([]*Candidate, error) {
	norm := jptext.Normalize(fragment)
	if norm == "" || m.isStopWord(norm) {
		return []*Candidate{}, nil
	}

	hits, err := m.searcher.Search(ctx, fragment, search.ModeFuzzy, m.searchLimit)
	if err != nil {
		return nil, err
	}

	fragLen := jptext.RuneLen(norm)
	candidates := make([]*Candidate, 0, len(hits))
	for _, hit := range hits {
		nameNorm := jptext.Normalize(hit.Record.MedicineName)
		conf, span, dist := align(norm, fragLen, nameNorm)
		if conf < m.floor {
			continue
		}
		candidates = append(candidates, &Candidate{
			Record:     hit.Record,
			Confidence: conf,
			Fragment:   fragment,
			Span:       span,
			distance:   dist,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		return a.Record.Id < b.Record.Id
	})
	if topK > 0 && len(candidates) > topK {
		candidates = candidates[:topK]
	}

	m.logger.Debug("fragment matched",
		"fragment", fragment, "candidates", len(candidates))
	return candidates, nil
}

// align computes the confidence of a fragment against a normalized
// medicine name: the better of whole-name similarity and the similarity
// of the best-aligned span. Span alignment keeps a partial name readable
// as a strong match (a fragment covering the name stem scores on the
// stem, not on the full name with its dosage suffix).
func align(fragNorm string, fragLen int, nameNorm string) (float64, Span, int) {
	whole := jptext.Similarity(fragNorm, nameNorm)

	d, end := jptext.SubstringDistance(fragNorm, nameNorm)
	window := 1 - float64(d)/float64(fragLen)
	if window < 0 {
		window = 0
	}
	start := max(0, end-fragLen)

	if whole > window {
		return whole, Span{Start: 0, End: jptext.RuneLen(nameNorm)}, jptext.Distance(fragNorm, nameNorm)
	}
	return window, Span{Start: start, End: end}, d
}

func (m *Matcher) isStopWord(norm string) bool {
	for _, sw := range m.stopWords {
		if strings.Contains(norm, sw) {
			return true
		}
	}
	return false
}

func normalizeAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if n := jptext.Normalize(w); n != "" {
			out = append(out, n)
		}
	}
	return out
}
