package search

import "github.com/rxscan/medsearch/core"

// Monitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type Monitor interface {
	Start(query, normalized string, mode Mode)
	AfterCandidateGeneration(ids []core.ID)
	AfterVerification(hits []*core.SearchHit)
	Finish(hits []*core.SearchHit)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string, _ Mode)             {}
func (n *noopMonitor) AfterCandidateGeneration(_ []core.ID)  {}
func (n *noopMonitor) AfterVerification(_ []*core.SearchHit) {}
func (n *noopMonitor) Finish(_ []*core.SearchHit)            {}
