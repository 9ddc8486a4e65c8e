package rbmerkle

import (
	"fmt"

	"github.com/emicklei/dot"
)

// RenderDotGraph renders the tree in Graphviz dot format, labeling each node
// with its key, color and a digest prefix.
func RenderDotGraph[K any](t *Tree[K]) string {
	graph := dot.NewGraph(dot.Directed)
	if t.root == nilHandle {
		return graph.String()
	}

	var traverse func(h handle, parent *dot.Node, direction string)
	traverse = func(h handle, parent *dot.Node, direction string) {
		if h == nilHandle {
			return
		}
		nd := t.nodes[h]
		label := fmt.Sprintf("K:%s C:%s D:%s", t.codec.Canonical(nd.key), nd.color, nd.digest[:8])
		n := graph.Node(label)
		if nd.color == Red {
			n.Attr("color", "red")
		}
		if parent != nil {
			parent.Edge(n, direction)
		}
		traverse(nd.left, &n, "l")
		traverse(nd.right, &n, "r")
	}
	traverse(t.root, nil, "")

	return graph.String()
}
