package rbmerkle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderDotGraph(t *testing.T) {
	tree := New[int64](OrderedKey[int64]{})
	require.NotEmpty(t, RenderDotGraph(tree))

	insertAll(t, tree, 2, 1, 3)
	out := RenderDotGraph(tree)
	require.Contains(t, out, "K:2")
	require.Contains(t, out, "C:red")
	require.Contains(t, out, "->")
}
