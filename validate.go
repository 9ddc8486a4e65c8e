package rbmerkle

import "fmt"

// Validate checks the red-black invariants and the digest invariant over
// every node reachable from the root. It is O(n) and intended for tests and
// debugging harnesses.
func (t *Tree[K]) Validate() error {
	if t.root == nilHandle {
		return nil
	}
	if t.nodes[t.root].color != Black {
		return fmt.Errorf("root %q is not black", t.codec.Canonical(t.nodes[t.root].key))
	}
	if t.nodes[t.root].parent != nilHandle {
		return fmt.Errorf("root %q has a parent", t.codec.Canonical(t.nodes[t.root].key))
	}
	_, err := t.validateNode(t.root)
	return err
}

// validateNode returns the black-height of the subtree rooted at h, counting
// the sentinel level as one.
func (t *Tree[K]) validateNode(h handle) (int, error) {
	if h == nilHandle {
		return 1, nil
	}
	n := t.nodes[h]
	name := t.codec.Canonical(n.key)

	if n.color == Red {
		if t.nodes[n.left].color == Red || t.nodes[n.right].color == Red {
			return 0, fmt.Errorf("red node %q has a red child", name)
		}
	}
	if n.left != nilHandle && t.nodes[n.left].parent != h {
		return 0, fmt.Errorf("left child of %q has a broken parent link", name)
	}
	if n.right != nilHandle && t.nodes[n.right].parent != h {
		return 0, fmt.Errorf("right child of %q has a broken parent link", name)
	}

	leftHeight, err := t.validateNode(n.left)
	if err != nil {
		return 0, err
	}
	rightHeight, err := t.validateNode(n.right)
	if err != nil {
		return 0, err
	}
	if leftHeight != rightHeight {
		return 0, fmt.Errorf("black-height mismatch at %q: %d != %d", name, leftHeight, rightHeight)
	}

	want := computeDigest(name, t.childDigest(n.left), t.childDigest(n.right))
	if n.digest != want {
		return 0, fmt.Errorf("stale digest at %q: have %s, want %s", name, n.digest, want)
	}

	if n.color == Black {
		leftHeight++
	}
	return leftHeight, nil
}
