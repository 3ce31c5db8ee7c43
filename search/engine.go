package search

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	vecsearch "github.com/viant/vec/search"

	"github.com/poiesic/priorart/core"
	"github.com/poiesic/priorart/docstore"
)

const (
	// DefaultField is the text field indexed when a query arrives before
	// any explicit build.
	DefaultField = core.FieldClaims

	// DefaultTopK replaces non-positive result counts.
	DefaultTopK = 5

	// DefaultVocabularySize caps the learned vocabulary.
	DefaultVocabularySize = 3000

	// DefaultMinDocFreq is the minimum number of documents a term must
	// appear in to enter the vocabulary.
	DefaultMinDocFreq = 2
)

// Engine builds and queries a TF-IDF similarity index over one text field
// of a patent collection. The collection is snapshotted at construction,
// so the row-to-document mapping stays valid for the engine's lifetime.
type Engine struct {
	docs docstore.Collection

	mu          sync.RWMutex
	built       bool
	field       string
	vec         *vectorizer
	rows        [][]float32
	mags        []float32
	fingerprint core.Fingerprint

	stale  atomic.Bool
	closed atomic.Bool

	defaultField string
	maxFeatures  int
	minDocFreq   int
	pool         *ants.Pool
	logger       *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for parallel index builds.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if e.pool != nil {
			e.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithDefaultField sets the field an automatic first-query build indexes.
// Default is DefaultField.
func WithDefaultField(field string) Option {
	return func(e *Engine) error {
		if field == "" {
			return ErrFieldRequired
		}
		e.defaultField = field
		return nil
	}
}

// WithVocabularySize caps the learned vocabulary. Non-positive leaves it
// uncapped. Default is DefaultVocabularySize.
func WithVocabularySize(n int) Option {
	return func(e *Engine) error {
		e.maxFeatures = n
		return nil
	}
}

// WithMinDocFreq sets how many documents a term must appear in before it
// enters the vocabulary. Values below 1 clamp to 1. Default is
// DefaultMinDocFreq.
func WithMinDocFreq(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			n = 1
		}
		e.minDocFreq = n
		return nil
	}
}

// NewEngine creates an unbuilt engine over docs. The slice is cloned; the
// records themselves are shared and treated as immutable.
func NewEngine(docs docstore.Collection, opts ...Option) (*Engine, error) {
	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		docs:         append(docstore.Collection{}, docs...),
		defaultField: DefaultField,
		maxFeatures:  DefaultVocabularySize,
		minDocFreq:   DefaultMinDocFreq,
		pool:         pool,
		logger:       slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.pool.Release()
			return nil, err
		}
	}

	return e, nil
}

// Build indexes the given field, replacing any previous index in place.
// Content never fails a build: absent and malformed field values simply
// vectorize as empty documents.
func (e *Engine) Build(field string) error {
	if field == "" {
		return ErrFieldRequired
	}
	if e.closed.Load() {
		return ErrEngineClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buildLocked(field)
}

// buildLocked runs the five build stages. Callers hold the write lock.
func (e *Engine) buildLocked(field string) error {
	start := time.Now()
	e.logger.Info("building index", "field", field, "documents", len(e.docs))

	// Stage 1+2: normalize and tokenize every document, in parallel,
	// results slotted by row so corpus order is preserved.
	texts := make([]string, len(e.docs))
	docTerms := make([][]string, len(e.docs))
	var wg sync.WaitGroup
	for i, doc := range e.docs {
		val, _ := doc.Field(field)
		wg.Add(1)
		if err := e.pool.Submit(func() {
			defer wg.Done()
			texts[i] = normalizeFieldValue(val)
			docTerms[i] = tokenize(texts[i])
		}); err != nil {
			wg.Done()
			wg.Wait()
			return err
		}
	}
	wg.Wait()

	// Stage 3+4: vocabulary selection and idf weighting.
	vec := fitVectorizer(docTerms, e.maxFeatures, e.minDocFreq)

	// Stage 5: weigh and normalize every document vector, in parallel.
	rows := make([][]float32, len(docTerms))
	mags := make([]float32, len(docTerms))
	for i, terms := range docTerms {
		wg.Add(1)
		if err := e.pool.Submit(func() {
			defer wg.Done()
			row := vec.transform(terms)
			rows[i] = row
			mags[i] = vecsearch.Float32s(row).Magnitude()
		}); err != nil {
			wg.Done()
			wg.Wait()
			return err
		}
	}
	wg.Wait()

	e.vec = vec
	e.rows = rows
	e.mags = mags
	e.field = field
	e.fingerprint = core.FingerprintFromContent(append([]string{field}, texts...)...)
	e.built = true
	e.stale.Store(false)

	e.logger.Info("indexed patents",
		"count", len(e.docs),
		"field", field,
		"vocabulary", len(vec.terms),
		"fingerprint", e.fingerprint.String(),
		"elapsed", time.Since(start))
	return nil
}

// ensureBuilt makes an index available, building over the default field on
// first use.
func (e *Engine) ensureBuilt() error {
	e.mu.RLock()
	built := e.built
	e.mu.RUnlock()
	if built {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.built {
		return nil
	}
	e.logger.Info("index not built, building from default field", "field", e.defaultField)
	return e.buildLocked(e.defaultField)
}

// Built reports whether an index is currently available.
func (e *Engine) Built() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.built
}

// Field returns the indexed field name, empty while unbuilt.
func (e *Engine) Field() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.field
}

// VocabularySize returns the number of learned terms, 0 while unbuilt.
func (e *Engine) VocabularySize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.vec == nil {
		return 0
	}
	return len(e.vec.terms)
}

// Vocabulary returns a copy of the learned terms in column order.
func (e *Engine) Vocabulary() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.vec == nil {
		return nil
	}
	terms := make([]string, len(e.vec.terms))
	copy(terms, e.vec.terms)
	return terms
}

// Fingerprint identifies the indexed snapshot, 0 while unbuilt. Identical
// corpora indexed over the same field always produce the same value.
func (e *Engine) Fingerprint() core.Fingerprint {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fingerprint
}

// DocumentCount returns the size of the engine's corpus snapshot.
func (e *Engine) DocumentCount() int {
	return len(e.docs)
}

// MarkStale flags that the source data changed after the last build.
// Queries keep serving the built index; rebuilding stays an explicit call.
func (e *Engine) MarkStale() {
	e.stale.Store(true)
}

// Stale reports whether the source data changed since the last build.
func (e *Engine) Stale() bool {
	return e.stale.Load()
}

// Close releases the build pool. The engine must not be used after Close.
func (e *Engine) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	e.pool.Release()
	return nil
}
