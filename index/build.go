package index

import (
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/rxscan/medsearch/core"
	"github.com/rxscan/medsearch/jptext"
)

const defaultGramSize = 2

// Option configures a Build call.
type Option func(*builder) error

type builder struct {
	gramSize int
	poolSize int
	logger   *slog.Logger
}

// WithGramSize sets the n-gram size. Default is 2 (bigrams); sizes below
// 2 are rejected.
func WithGramSize(n int) Option {
	return func(b *builder) error {
		if n < 2 {
			return ErrInvalidGramSize
		}
		b.gramSize = n
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent tokenization.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *builder) error {
		if size < 1 {
			size = 1
		}
		b.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// partial is the tokenization output for one record.
type partial struct {
	id        core.ID
	norm      [core.NumSearchableFields]string
	postings  map[string][]Posting
	refs      []FieldRef
	unindexed bool
}

// Build constructs an Index from a record snapshot. It is a pure
// function of the records: the same input always yields an equivalent
// index, regardless of any previously built one. Records are tokenized
// concurrently; the result is fully deterministic because every list is
// sorted before the index is published.
func Build(records []*core.MedicineRecord, opts ...Option) (*Index, error) {
	b := &builder{
		gramSize: defaultGramSize,
		poolSize: max(runtime.NumCPU()/2, 1),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	ix := &Index{
		gramSize: b.gramSize,
		records:  make(map[core.ID]*core.MedicineRecord, len(records)),
		postings: make(map[string][]Posting),
		norm:     make(map[core.ID][core.NumSearchableFields]string, len(records)),
	}

	for _, rec := range records {
		if err := core.ValidateMedicineRecord(rec); err != nil {
			return nil, err
		}
		if _, ok := ix.records[rec.Id]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, rec.Id)
		}
		ix.records[rec.Id] = rec
		ix.ids = append(ix.ids, rec.Id)
	}

	pool, err := ants.NewPool(b.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		partials = make([]*partial, 0, len(records))
	)
	for _, rec := range records {
		wg.Add(1)
		rec := rec
		submitErr := pool.Submit(func() {
			defer wg.Done()
			p := tokenize(rec, b.gramSize)
			mu.Lock()
			partials = append(partials, p)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			return nil, submitErr
		}
	}
	wg.Wait()

	for _, p := range partials {
		ix.norm[p.id] = p.norm
		for gram, posts := range p.postings {
			ix.postings[gram] = append(ix.postings[gram], posts...)
		}
		ix.fields = append(ix.fields, p.refs...)
		if p.unindexed {
			ix.unindexed = append(ix.unindexed, p.id)
			b.logger.Warn("record has no searchable field and is unreachable by search",
				"id", uint64(p.id))
		}
	}

	// Concurrency made insertion order nondeterministic; sorting restores
	// the canonical form so rebuilds are equivalent.
	sort.Slice(ix.ids, func(i, j int) bool { return ix.ids[i] < ix.ids[j] })
	sort.Slice(ix.unindexed, func(i, j int) bool { return ix.unindexed[i] < ix.unindexed[j] })
	for _, posts := range ix.postings {
		sortPostings(posts)
	}
	sort.Slice(ix.fields, func(i, j int) bool {
		a, b := ix.fields[i], ix.fields[j]
		if a.Text != b.Text {
			return a.Text < b.Text
		}
		if a.Id != b.Id {
			return a.Id < b.Id
		}
		return a.Field < b.Field
	})

	return ix, nil
}

func tokenize(rec *core.MedicineRecord, gramSize int) *partial {
	p := &partial{
		id:       rec.Id,
		postings: make(map[string][]Posting),
	}
	indexed := false
	for kind, raw := range rec.SearchableFields() {
		norm := jptext.Normalize(raw)
		p.norm[kind] = norm
		if norm == "" {
			continue
		}
		indexed = true
		field := core.FieldKind(kind)
		p.refs = append(p.refs, FieldRef{Id: rec.Id, Field: field, Text: norm})
		for _, g := range jptext.NGrams(norm, gramSize) {
			p.postings[g.Text] = append(p.postings[g.Text],
				Posting{Id: rec.Id, Field: field, Pos: g.Pos})
		}
	}
	p.unindexed = !indexed
	return p
}

func sortPostings(posts []Posting) {
	sort.Slice(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if a.Id != b.Id {
			return a.Id < b.Id
		}
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		return a.Pos < b.Pos
	})
}
