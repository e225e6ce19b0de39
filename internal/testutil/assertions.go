package testutil

import (
	"testing"

	"github.com/specialistvlad/framegrid/internal/app"
	"github.com/stretchr/testify/require"
)

// RequireNode returns the node with the given ID from a successful run.
func RequireNode(t *testing.T, result *HarnessResult, id string) app.NodeView {
	t.Helper()
	require.NoError(t, result.Err)
	require.NotNil(t, result.Document)
	for _, n := range result.Document.Nodes {
		if n.ID == id {
			return n
		}
	}
	require.Failf(t, "node not found", "no node %q in the result", id)
	return app.NodeView{}
}

// AssertChain checks the chain a node resolved for one of its needs.
func AssertChain(t *testing.T, result *HarnessResult, id, need, want string) {
	t.Helper()
	n := RequireNode(t, result, id)
	require.Contains(t, n.Chains, need, "node %s resolved no chain for %s", id, need)
	require.Equal(t, want, n.Chains[need])
}

// ProducerIDs lists the producer nodes of a successful run in order.
func ProducerIDs(t *testing.T, result *HarnessResult) []string {
	t.Helper()
	require.NoError(t, result.Err)
	var ids []string
	for _, n := range result.Document.Nodes {
		if n.Producer {
			ids = append(ids, n.ID)
		}
	}
	return ids
}
