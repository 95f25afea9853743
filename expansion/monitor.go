package expansion

import "github.com/poiesic/skosexpand/core"

// Monitor provides hooks to observe an expansion.
// Implement this interface to trace seed resolution and traversal.
type Monitor interface {
	Start(req Request)
	Seeds(uris []string)
	Visit(uri string, via core.RelationKind, hop int)
	Finish(result Result)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Request) {}
func (n *noopMonitor) Seeds(_ []string) {}
func (n *noopMonitor) Visit(_ string, _ core.RelationKind, _ int) {}
func (n *noopMonitor) Finish(_ Result) {}
