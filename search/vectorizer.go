package search

import (
	"math"
	"sort"
)

// vectorizer is the fitted vocabulary of a built index: term columns and
// their inverse document frequency weights.
type vectorizer struct {
	vocab map[string]int
	terms []string
	idf   []float64
}

// fitVectorizer learns a vocabulary from tokenized documents. A term must
// appear in at least minDocFreq documents to qualify; when more terms
// qualify than maxFeatures allows, candidates are ranked by document
// frequency, then total occurrence count, then term text, and the tail is
// cut. Columns are assigned in sorted term order, so identical corpora
// always produce identical layouts. A non-positive maxFeatures leaves the
// vocabulary uncapped.
func fitVectorizer(docTerms [][]string, maxFeatures, minDocFreq int) *vectorizer {
	docFreq := make(map[string]int)
	termFreq := make(map[string]int)
	for _, terms := range docTerms {
		seen := make(map[string]bool, len(terms))
		for _, t := range terms {
			termFreq[t]++
			if !seen[t] {
				seen[t] = true
				docFreq[t]++
			}
		}
	}

	candidates := make([]string, 0, len(docFreq))
	for t, n := range docFreq {
		if n >= minDocFreq {
			candidates = append(candidates, t)
		}
	}

	if maxFeatures > 0 && len(candidates) > maxFeatures {
		sort.Slice(candidates, func(i, j int) bool {
			a, b := candidates[i], candidates[j]
			if docFreq[a] != docFreq[b] {
				return docFreq[a] > docFreq[b]
			}
			if termFreq[a] != termFreq[b] {
				return termFreq[a] > termFreq[b]
			}
			return a < b
		})
		candidates = candidates[:maxFeatures]
	}
	sort.Strings(candidates)

	v := &vectorizer{
		vocab: make(map[string]int, len(candidates)),
		terms: candidates,
		idf:   make([]float64, len(candidates)),
	}
	n := float64(len(docTerms))
	for col, t := range candidates {
		v.vocab[t] = col
		v.idf[col] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}
	return v
}

// transform projects tokenized terms onto the vocabulary: raw term counts
// weighted by idf, then L2-normalized. Terms outside the vocabulary
// contribute nothing; a projection with no known terms is the zero vector.
func (v *vectorizer) transform(terms []string) []float32 {
	vec := make([]float32, len(v.terms))
	if len(v.terms) == 0 || len(terms) == 0 {
		return vec
	}

	weights := make([]float64, len(v.terms))
	hit := false
	for _, t := range terms {
		if col, ok := v.vocab[t]; ok {
			weights[col]++
			hit = true
		}
	}
	if !hit {
		return vec
	}

	var sum float64
	for col, w := range weights {
		if w == 0 {
			continue
		}
		w *= v.idf[col]
		weights[col] = w
		sum += w * w
	}
	norm := math.Sqrt(sum)
	for col, w := range weights {
		if w != 0 {
			vec[col] = float32(w / norm)
		}
	}
	return vec
}

// known reports how many unique terms the vocabulary covers, along with
// the unique term count itself.
func (v *vectorizer) known(terms []string) (matched, total int) {
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		if seen[t] {
			continue
		}
		seen[t] = true
		total++
		if _, ok := v.vocab[t]; ok {
			matched++
		}
	}
	return matched, total
}
