package rbmerkle

import (
	"errors"
	"fmt"
)

// ErrInvalidKey reports an insertion with an absent key.
var ErrInvalidKey = errors.New("invalid key")

// Tree is a red-black tree that maintains, at every node, a digest over the
// node's canonical key and its children's digests. The root digest
// fingerprints the whole tree's content and shape, so two trees can be
// compared in O(1) without traversal.
//
// Nodes live in an arena indexed by integer handles; slot 0 is the sentinel.
// Nodes are created at insertion and never destroyed; there is no deletion.
// A Tree is not safe for concurrent mutation.
type Tree[K any] struct {
	codec KeyCodec[K]
	nodes []node[K]
	root  handle
}

// New returns an empty tree using codec for key ordering and canonical
// rendering.
func New[K any](codec KeyCodec[K]) *Tree[K] {
	return &Tree[K]{
		codec: codec,
		// the sentinel occupies slot 0: BLACK, fixed digest, never mutated
		nodes: []node[K]{{color: Black, digest: EmptyDigest}},
		root:  nilHandle,
	}
}

// Size returns the number of real nodes in the tree.
func (t *Tree[K]) Size() int64 {
	return int64(len(t.nodes)) - 1
}

// Insert adds key to the tree, rebalances, and recomputes the digests of
// every node whose subtree content changed. Duplicate keys are permitted and
// are placed in the right subtree of an equal-keyed node. The only failure
// is an absent key as judged by the codec.
func (t *Tree[K]) Insert(key K) error {
	if err := t.codec.Validate(key); err != nil {
		return fmt.Errorf("inserting key: %w", err)
	}

	// BST placement: strictly-less goes left, ties go right.
	parent := nilHandle
	cur := t.root
	for cur != nilHandle {
		parent = cur
		if t.codec.Compare(key, t.nodes[cur].key) < 0 {
			cur = t.nodes[cur].left
		} else {
			cur = t.nodes[cur].right
		}
	}

	n := t.newNode(key, parent)
	switch {
	case parent == nilHandle:
		t.root = n
	case t.codec.Compare(key, t.nodes[parent].key) < 0:
		t.nodes[parent].left = n
	default:
		t.nodes[parent].right = n
	}

	t.fixInsert(n)
	t.propagateDigests(n)
	return nil
}

func (t *Tree[K]) newNode(key K, parent handle) handle {
	h := handle(len(t.nodes))
	t.nodes = append(t.nodes, node[K]{
		key:    key,
		color:  Red,
		parent: parent,
		digest: computeDigest(t.codec.Canonical(key), "", ""),
	})
	return h
}

// fixInsert restores the red-black invariants after x was attached RED.
// The sentinel's BLACK color terminates the loop when x reaches the root.
func (t *Tree[K]) fixInsert(x handle) {
	for t.nodes[t.nodes[x].parent].color == Red {
		parent := t.nodes[x].parent
		grand := t.nodes[parent].parent
		if parent == t.nodes[grand].left {
			uncle := t.nodes[grand].right
			if t.nodes[uncle].color == Red {
				t.nodes[parent].color = Black
				t.nodes[uncle].color = Black
				t.nodes[grand].color = Red
				x = grand
				continue
			}
			if x == t.nodes[parent].right {
				// triangle: straighten into a line first
				x = parent
				t.rotateLeft(x)
				parent = t.nodes[x].parent
				grand = t.nodes[parent].parent
			}
			t.nodes[parent].color = Black
			t.nodes[grand].color = Red
			t.rotateRight(grand)
		} else {
			uncle := t.nodes[grand].left
			if t.nodes[uncle].color == Red {
				t.nodes[parent].color = Black
				t.nodes[uncle].color = Black
				t.nodes[grand].color = Red
				x = grand
				continue
			}
			if x == t.nodes[parent].left {
				x = parent
				t.rotateRight(x)
				parent = t.nodes[x].parent
				grand = t.nodes[parent].parent
			}
			t.nodes[parent].color = Black
			t.nodes[grand].color = Red
			t.rotateLeft(grand)
		}
	}
	t.nodes[t.root].color = Black
}

// rotateLeft rotates x down to the left; its right child takes its place.
// Exactly x and the child change child sets, so both digests are recomputed
// here, x first since it ends up below.
func (t *Tree[K]) rotateLeft(x handle) {
	y := t.nodes[x].right
	t.nodes[x].right = t.nodes[y].left
	if t.nodes[y].left != nilHandle {
		t.nodes[t.nodes[y].left].parent = x
	}
	t.nodes[y].parent = t.nodes[x].parent
	switch {
	case t.nodes[x].parent == nilHandle:
		t.root = y
	case x == t.nodes[t.nodes[x].parent].left:
		t.nodes[t.nodes[x].parent].left = y
	default:
		t.nodes[t.nodes[x].parent].right = y
	}
	t.nodes[y].left = x
	t.nodes[x].parent = y

	t.updateDigest(x)
	t.updateDigest(y)
}

// rotateRight is the mirror image of rotateLeft.
func (t *Tree[K]) rotateRight(x handle) {
	y := t.nodes[x].left
	t.nodes[x].left = t.nodes[y].right
	if t.nodes[y].right != nilHandle {
		t.nodes[t.nodes[y].right].parent = x
	}
	t.nodes[y].parent = t.nodes[x].parent
	switch {
	case t.nodes[x].parent == nilHandle:
		t.root = y
	case x == t.nodes[t.nodes[x].parent].left:
		t.nodes[t.nodes[x].parent].left = y
	default:
		t.nodes[t.nodes[x].parent].right = y
	}
	t.nodes[y].right = x
	t.nodes[x].parent = y

	t.updateDigest(x)
	t.updateDigest(y)
}

func (t *Tree[K]) updateDigest(h handle) {
	n := &t.nodes[h]
	n.digest = computeDigest(t.codec.Canonical(n.key), t.childDigest(n.left), t.childDigest(n.right))
}

func (t *Tree[K]) childDigest(h handle) string {
	if h == nilHandle {
		return ""
	}
	return t.nodes[h].digest
}

// propagateDigests walks from h up to the root recomputing each node's
// digest from its children. Rotations already recomputed the two nodes they
// relinked, and every other node with changed subtree content lies on this
// path, so after the walk no stale digest remains anywhere in the tree. The
// walk is strictly bottom-up: a node is recomputed only after its children
// are final.
func (t *Tree[K]) propagateDigests(h handle) {
	for h != nilHandle {
		t.updateDigest(h)
		h = t.nodes[h].parent
	}
}

// RootDigest returns the digest of the root node, or EmptyDigest if the tree
// has no real nodes.
func (t *Tree[K]) RootDigest() string {
	if t.root == nilHandle {
		return EmptyDigest
	}
	return t.nodes[t.root].digest
}

// Equal reports whether both trees have the same root digest. Trees built by
// inserting the same keys in the same order are equal; the same key set
// inserted in a different order may settle into a different shape and
// compare unequal, since shape participates in the digest.
func (t *Tree[K]) Equal(other *Tree[K]) bool {
	return t.RootDigest() == other.RootDigest()
}

// BlackHeight returns the number of BLACK nodes on a path from the root to a
// sentinel, excluding the root. Uniform across all paths by invariant.
func (t *Tree[K]) BlackHeight() int {
	height := 0
	for h := t.root; h != nilHandle; h = t.nodes[h].left {
		if t.nodes[h].color == Black {
			height++
		}
	}
	if t.root != nilHandle && t.nodes[t.root].color == Black {
		height--
	}
	return height
}
