package search

import "github.com/poiesic/priorart/core"

// Monitor provides hooks to observe the stages of a text search.
// Implement this interface to trace query projection and scoring.
type Monitor interface {
	Start(query string)
	QueryProjected(matched, total int)
	Scored(documents int)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)               {}
func (n *noopMonitor) QueryProjected(_, _ int)      {}
func (n *noopMonitor) Scored(_ int)                 {}
func (n *noopMonitor) Finish(_ []core.SearchResult) {}
