package search

import "github.com/poiesic/recipit/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterLoad(recipes []*core.Recipe)
	Matched(recipe *core.Recipe)
	Finish(results []*core.Recipe)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)             {}
func (n *noopMonitor) AfterLoad(_ []*core.Recipe) {}
func (n *noopMonitor) Matched(_ *core.Recipe)     {}
func (n *noopMonitor) Finish(_ []*core.Recipe)    {}
