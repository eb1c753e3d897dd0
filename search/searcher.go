package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/rxscan/medsearch/core"
	"github.com/rxscan/medsearch/index"
	"github.com/rxscan/medsearch/jptext"
)

// Mode selects the query strategy.
type Mode int

const (
	// ModePrefix matches records whose normalized field begins with the
	// query.
	ModePrefix Mode = iota + 1
	// ModeSubstring matches records containing the query as a contiguous
	// normalized substring.
	ModeSubstring
	// ModeFuzzy additionally matches records within a bounded edit
	// distance of some span of a field.
	ModeFuzzy
)

// ParseMode maps a mode name ("prefix", "substring", "fuzzy") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "prefix":
		return ModePrefix, nil
	case "substring":
		return ModeSubstring, nil
	case "fuzzy":
		return ModeFuzzy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModePrefix:
		return "prefix"
	case ModeSubstring:
		return "substring"
	case ModeFuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// MinQueryRunes is the incremental-search threshold: queries shorter
// than this many normalized runes return an empty result. This is a UX
// contract enforced here so every caller behaves the same.
const MinQueryRunes = 2

// Score bands. Bands do not overlap, so ordering hits by score descending
// yields exact, then prefix, then substring, then ascending edit
// distance.
const (
	scoreExact     = 1.0
	scorePrefix    = 0.9
	scoreSubstring = 0.8
	fuzzyBand      = 0.7
)

// Provider supplies the current index generation to the query engine.
// Current returns nil while no generation has been imported yet.
type Provider interface {
	Current() *index.Index
}

// Searcher serves ranked full-text queries over the current index
// generation. It holds no mutable state of its own; every call reads one
// immutable snapshot, so a Searcher is safe for unbounded concurrent use.
type Searcher struct {
	provider Provider
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(provider Provider, opts ...Option) (*Searcher, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	s := &Searcher{
		provider: provider,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs one query against the current index snapshot.
// Returns up to limit hits (limit <= 0 means no truncation), ranked over
// the full candidate set before truncation, scores non-increasing, no
// duplicate records. A query below MinQueryRunes yields an empty result,
// never an error; a missing index yields ErrIndexUnavailable.
func (s *Searcher) Search(ctx context.Context, query string, mode Mode, limit int) ([]*core.SearchHit, error) {
	return s.SearchWithMonitor(ctx, query, mode, limit, nil)
}

// SearchWithMonitor runs one query with monitoring. The monitor receives
// callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, mode Mode, limit int, monitor Monitor) ([]*core.SearchHit, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if mode != ModePrefix && mode != ModeSubstring && mode != ModeFuzzy {
		return nil, ErrInvalidMode
	}

	ix := s.provider.Current()
	if ix == nil {
		return nil, ErrIndexUnavailable
	}

	norm := jptext.Normalize(query)
	monitor.Start(query, norm, mode)

	if jptext.RuneLen(norm) < MinQueryRunes {
		s.logger.Debug("query below incremental-search threshold", "query", query)
		empty := []*core.SearchHit{}
		monitor.Finish(empty)
		return empty, nil
	}

	// Phase 1: candidate generation.
	candidates := s.gatherCandidates(ix, norm, mode)
	monitor.AfterCandidateGeneration(candidates)

	// Queries may be cancelled between candidate generation and
	// verification; partial results are discarded, never returned.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 2: verification and scoring over the full candidate set.
	hits := s.verify(ix, norm, mode, candidates)
	monitor.AfterVerification(hits)

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Record.Id < hits[j].Record.Id
	})

	// Truncation happens only after full ranking so the cut line never
	// depends on index order.
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	monitor.Finish(hits)
	return hits, nil
}

// gatherCandidates returns the ids that may satisfy the query, in
// ascending order. The set is a necessary but not sufficient filter;
// verify prunes false positives.
func (s *Searcher) gatherCandidates(ix *index.Index, norm string, mode Mode) []core.ID {
	seen := make(map[core.ID]struct{})

	// Whole-field tokens serve exact and prefix lookups in every mode.
	for _, ref := range ix.PrefixRefs(norm) {
		seen[ref.Id] = struct{}{}
	}

	grams := jptext.NGrams(norm, ix.GramSize())
	if len(grams) == 0 && mode != ModePrefix {
		// The query is shorter than the gram size (possible only with a
		// gram size above 2), so posting lookups cannot narrow the set.
		// Fall back to verifying every record.
		ids := make([]core.ID, len(ix.IDs()))
		copy(ids, ix.IDs())
		return ids
	}
	switch mode {
	case ModePrefix:
		// Prefix candidates come entirely from the field table.
	case ModeSubstring:
		counts, distinct := gramOverlap(ix, grams)
		for id, n := range counts {
			if n == distinct {
				seen[id] = struct{}{}
			}
		}
	case ModeFuzzy:
		// An edit can destroy at most gramSize grams, so any record
		// within the distance bound shares at least distinct-gramSize*maxDist
		// of the query's grams. For short queries that bound reaches zero:
		// a record within edit distance may share no gram at all, so the
		// posting filter cannot narrow the set and every record is verified.
		maxDist := maxEditDistance(jptext.RuneLen(norm))
		counts, distinct := gramOverlap(ix, grams)
		need := distinct - ix.GramSize()*maxDist
		if need < 1 {
			ids := make([]core.ID, len(ix.IDs()))
			copy(ids, ix.IDs())
			return ids
		}
		for id, n := range counts {
			if n >= need {
				seen[id] = struct{}{}
			}
		}
	}

	ids := make([]core.ID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// verify scores each candidate against the query, dropping false
// positives from non-contiguous gram co-occurrence.
func (s *Searcher) verify(ix *index.Index, norm string, mode Mode, candidates []core.ID) []*core.SearchHit {
	maxDist := maxEditDistance(jptext.RuneLen(norm))
	hits := make([]*core.SearchHit, 0, len(candidates))
	for _, id := range candidates {
		best := 0.0
		for kind := 0; kind < core.NumSearchableFields; kind++ {
			text := ix.NormalizedField(id, core.FieldKind(kind))
			if text == "" {
				continue
			}
			score := scoreField(norm, text, mode, maxDist)
			if score > best {
				best = score
			}
		}
		if best > 0 {
			hits = append(hits, &core.SearchHit{Record: ix.Record(id), Score: best})
		}
	}
	return hits
}

// scoreField rates one normalized field against the query. Zero means no
// match under the given mode.
func scoreField(norm, text string, mode Mode, maxDist int) float64 {
	if text == norm {
		return scoreExact
	}
	if strings.HasPrefix(text, norm) {
		return scorePrefix
	}
	if mode == ModePrefix {
		return 0
	}
	if strings.Contains(text, norm) {
		return scoreSubstring
	}
	if mode != ModeFuzzy {
		return 0
	}
	d, _ := jptext.SubstringDistance(norm, text)
	if d > maxDist {
		return 0
	}
	// Monotonically decreasing in the distance, so score order equals
	// ascending edit distance within the fuzzy band.
	return fuzzyBand * (1 - float64(d)/float64(maxDist+1))
}

// maxEditDistance bounds fuzzy matching relative to the query length:
// one edit per four runes, at least one.
func maxEditDistance(queryLen int) int {
	return max(1, (queryLen+3)/4)
}

// gramOverlap counts, per record, how many distinct query grams appear
// in any of its fields. The second return is the number of distinct
// grams in the query.
func gramOverlap(ix *index.Index, grams []jptext.Gram) (map[core.ID]int, int) {
	counts := make(map[core.ID]int)
	seenGram := make(map[string]struct{}, len(grams))
	for _, g := range grams {
		if _, dup := seenGram[g.Text]; dup {
			continue
		}
		seenGram[g.Text] = struct{}{}
		perRecord := make(map[core.ID]struct{})
		for _, p := range ix.Postings(g.Text) {
			perRecord[p.Id] = struct{}{}
		}
		for id := range perRecord {
			counts[id]++
		}
	}
	return counts, len(seenGram)
}
