package rbmerkle

// Entry is one (key, color, digest) triple produced by the ordered
// traversal.
type Entry[K any] struct {
	Key    K
	Color  Color
	Digest string
}

// EntriesEqual reports node equality: the keys compare equal and the digests
// match. The digest check is redundant with structural equality but is kept
// as an independent confirmation.
func EntriesEqual[K any](codec KeyCodec[K], a, b Entry[K]) bool {
	return codec.Compare(a.Key, b.Key) == 0 && a.Digest == b.Digest
}

// Iterator walks the tree in ascending key order, one Entry per real node.
// It is lazy and finite; obtain a fresh iterator from Tree.Iterator to
// restart. The tree must not be mutated while an iterator is in use.
type Iterator[K any] struct {
	tree  *Tree[K]
	stack []handle
	cur   handle
}

// Iterator returns a new in-order iterator positioned on the smallest key.
func (t *Tree[K]) Iterator() *Iterator[K] {
	it := &Iterator[K]{tree: t}
	it.pushLeft(t.root)
	it.advance()
	return it
}

func (it *Iterator[K]) pushLeft(h handle) {
	for h != nilHandle {
		it.stack = append(it.stack, h)
		h = it.tree.nodes[h].left
	}
}

func (it *Iterator[K]) advance() {
	if len(it.stack) == 0 {
		it.cur = nilHandle
		return
	}
	it.cur = it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
}

// Valid reports whether the iterator is positioned on a node.
func (it *Iterator[K]) Valid() bool {
	return it.cur != nilHandle
}

// Next moves to the node with the next key in ascending order.
func (it *Iterator[K]) Next() {
	if it.cur == nilHandle {
		return
	}
	it.pushLeft(it.tree.nodes[it.cur].right)
	it.advance()
}

// Entry returns the current node's triple. Only call when Valid.
func (it *Iterator[K]) Entry() Entry[K] {
	n := &it.tree.nodes[it.cur]
	return Entry[K]{Key: n.key, Color: n.color, Digest: n.digest}
}

// Close releases the iterator's walk state. It never fails; the error return
// matches the usual iterator contract.
func (it *Iterator[K]) Close() error {
	it.stack = nil
	it.cur = nilHandle
	return nil
}
