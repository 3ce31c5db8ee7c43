package search

import (
	"fmt"
	"math"
	"sort"
	"time"

	vecsearch "github.com/viant/vec/search"

	"github.com/poiesic/priorart/core"
)

// hybridPoolFactor sizes the ranked candidate pool a hybrid search filters
// from.
const hybridPoolFactor = 3

// scoredDoc pairs a corpus row with its similarity score.
type scoredDoc struct {
	index int
	score float64
}

// SearchText returns the topK patents most similar to a free-text query.
// A non-positive topK falls back to DefaultTopK and a topK beyond the
// corpus returns every document. Queries sharing no vocabulary with the
// corpus rank everything at zero rather than failing.
func (e *Engine) SearchText(query string, topK int) ([]core.SearchResult, error) {
	return e.SearchTextWithMonitor(query, topK, nil)
}

// SearchTextWithMonitor runs SearchText with stage callbacks.
func (e *Engine) SearchTextWithMonitor(query string, topK int, monitor Monitor) ([]core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	if err := e.ensureBuilt(); err != nil {
		return nil, err
	}
	if topK < 1 {
		topK = DefaultTopK
	}

	monitor.Start(query)

	e.mu.RLock()
	defer e.mu.RUnlock()

	terms := tokenize(normalizeText(query))
	matched, total := e.vec.known(terms)
	monitor.QueryProjected(matched, total)

	scored := e.scoreAll(e.vec.transform(terms))
	monitor.Scored(len(scored))

	results := e.collectResults(scored, topK)
	monitor.Finish(results)
	return results, nil
}

// FindSimilar returns the topK patents most similar to the one identified
// by patentID, never including that patent itself. An unknown id yields
// exactly one result carrying core.ErrPatentNotFound; the error return is
// reserved for engine failures.
func (e *Engine) FindSimilar(patentID string, topK int) ([]core.SearchResult, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	if err := e.ensureBuilt(); err != nil {
		return nil, err
	}
	if topK < 1 {
		topK = DefaultTopK
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	_, ref, ok := e.docs.FindByID(patentID)
	if !ok {
		e.logger.Warn("patent not found", "patentID", patentID)
		return []core.SearchResult{{
			PatentID: patentID,
			Err:      fmt.Errorf("%w: %s", core.ErrPatentNotFound, patentID),
		}}, nil
	}

	// The stored row is exactly what transforming the reference text again
	// would produce, so reuse it as the query vector.
	scored := e.scoreAll(e.rows[ref])

	results := make([]core.SearchResult, 0, topK)
	for _, sd := range scored {
		if e.docs[sd.index].ID() == patentID {
			continue
		}
		results = append(results, e.resultFor(sd))
		if len(results) == topK {
			break
		}
	}
	return results, nil
}

// HybridSearch ranks by text similarity, then narrows the ranked pool with
// metadata filters. The pool holds hybridPoolFactor times topK candidates,
// so heavy filtering can legitimately return fewer than topK hits. The
// first result carries the wall-clock duration of the whole search in
// milliseconds.
func (e *Engine) HybridSearch(query string, filters Filters, topK int) ([]core.SearchResult, error) {
	start := time.Now()

	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	if err := e.ensureBuilt(); err != nil {
		return nil, err
	}
	if topK < 1 {
		topK = DefaultTopK
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	scored := e.scoreAll(e.vec.transform(tokenize(normalizeText(query))))

	pool := topK * hybridPoolFactor
	if pool > len(scored) {
		pool = len(scored)
	}

	results := make([]core.SearchResult, 0, topK)
	for _, sd := range scored[:pool] {
		if !filters.Match(e.docs[sd.index]) {
			continue
		}
		results = append(results, e.resultFor(sd))
		if len(results) == topK {
			break
		}
	}

	if len(results) > 0 {
		elapsed := float64(time.Since(start).Microseconds()) / 1000
		results[0].SearchTimeMS = math.Round(elapsed*100) / 100
	}
	return results, nil
}

// scoreAll computes the cosine similarity of qv against every indexed row
// and ranks the corpus by score descending, corpus order breaking ties.
// Callers hold at least the read lock.
func (e *Engine) scoreAll(qv []float32) []scoredDoc {
	q := vecsearch.Float32s(qv)
	qmag := q.Magnitude()

	scored := make([]scoredDoc, len(e.rows))
	for i, row := range e.rows {
		s := 0.0
		if qmag != 0 && e.mags[i] != 0 {
			s = float64(1 - q.CosineDistanceWithMagnitude(row, qmag, e.mags[i]))
			switch {
			case math.IsNaN(s), s < 0:
				s = 0
			case s > 1:
				s = 1
			}
		}
		scored[i] = scoredDoc{index: i, score: s}
	}

	sort.Slice(scored, func(a, b int) bool {
		if scored[a].score != scored[b].score {
			return scored[a].score > scored[b].score
		}
		return scored[a].index < scored[b].index
	})
	return scored
}

// collectResults materializes the top ranked hits.
func (e *Engine) collectResults(scored []scoredDoc, topK int) []core.SearchResult {
	if topK > len(scored) {
		topK = len(scored)
	}
	results := make([]core.SearchResult, 0, topK)
	for _, sd := range scored[:topK] {
		results = append(results, e.resultFor(sd))
	}
	return results
}

// resultFor builds one hit. Records without a document number report as
// Unknown, matching how lookups treat them.
func (e *Engine) resultFor(sd scoredDoc) core.SearchResult {
	doc := e.docs[sd.index]
	id := doc.ID()
	if id == "" {
		id = "Unknown"
	}
	return core.SearchResult{
		PatentID: id,
		Title:    doc.Title(),
		Score:    sd.score,
		Risk:     core.RiskFromScore(sd.score),
	}
}
