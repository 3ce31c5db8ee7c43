package docstore

import (
	"sort"

	"github.com/poiesic/priorart/core"
)

// Collection is an ordered set of patent records. Order is load order:
// files sorted by name, records in file order within each file.
type Collection []core.Document

// FindByID returns the first record whose document number equals id, along
// with its position. An empty id never matches, even when the collection
// holds records without document numbers.
func (c Collection) FindByID(id string) (core.Document, int, bool) {
	if id == "" {
		return nil, -1, false
	}
	for i, doc := range c {
		if doc.ID() == id {
			return doc, i, true
		}
	}
	return nil, -1, false
}

// FilterComplete returns the records that populate every critical field,
// plus the count of records dropped.
func (c Collection) FilterComplete() (Collection, int) {
	kept := make(Collection, 0, len(c))
	for _, doc := range c {
		if core.HasCriticalFields(doc) {
			kept = append(kept, doc)
		}
	}
	return kept, len(c) - len(kept)
}

// Coverage reports how many records populate each field seen anywhere in
// the collection. A field counts as populated when its value coerces to a
// non-empty string.
type Coverage struct {
	Total  int
	Counts map[string]int
}

// Coverage scans the whole collection once.
func (c Collection) Coverage() Coverage {
	cov := Coverage{
		Total:  len(c),
		Counts: make(map[string]int),
	}
	for _, doc := range c {
		for field := range doc {
			if _, seen := cov.Counts[field]; !seen {
				cov.Counts[field] = 0
			}
			if doc.StringField(field) != "" {
				cov.Counts[field]++
			}
		}
	}
	return cov
}

// Fields returns every observed field name in sorted order.
func (cov Coverage) Fields() []string {
	fields := make([]string, 0, len(cov.Counts))
	for field := range cov.Counts {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Percent returns the share of records populating field, in percent.
func (cov Coverage) Percent(field string) float64 {
	if cov.Total == 0 {
		return 0
	}
	return float64(cov.Counts[field]) / float64(cov.Total) * 100
}
