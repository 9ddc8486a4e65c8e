package rbmerkle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
	"pgregory.net/rapid"
)

func insertAll(t *testing.T, tree *Tree[int64], keys ...int64) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, tree.Insert(k))
		require.NoError(t, tree.Validate(), "invariants broken after inserting %d", k)
	}
}

func treeKeys[K any](tree *Tree[K]) []K {
	var keys []K
	for it := tree.Iterator(); it.Valid(); it.Next() {
		keys = append(keys, it.Entry().Key)
	}
	return keys
}

func TestSameSequenceEqual(t *testing.T) {
	x := New[int64](OrderedKey[int64]{})
	y := New[int64](OrderedKey[int64]{})
	seq := []int64{10, 20, 15, 30, 25}
	insertAll(t, x, seq...)
	insertAll(t, y, seq...)

	require.True(t, x.Equal(y))
	require.Equal(t, x.RootDigest(), y.RootDigest())

	// one more insert into x diverges the fingerprint
	before := x.RootDigest()
	require.NoError(t, x.Insert(5))
	require.NotEqual(t, before, x.RootDigest())
	require.False(t, x.Equal(y))
}

func TestAscendingInsert(t *testing.T) {
	tree := New[int64](OrderedKey[int64]{})
	insertAll(t, tree, 1, 2, 3, 4, 5, 6, 7)

	require.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7}, treeKeys(tree))
	require.Equal(t, int64(7), tree.Size())
}

func TestOrderSensitivity(t *testing.T) {
	x := New[int64](OrderedKey[int64]{})
	y := New[int64](OrderedKey[int64]{})
	insertAll(t, x, 1, 2, 3, 4)
	insertAll(t, y, 4, 3, 2, 1)

	// same key set, different shapes
	require.Equal(t, treeKeys(x), treeKeys(y))
	require.False(t, x.Equal(y))
	require.NotEqual(t, x.RootDigest(), y.RootDigest())
}

func TestDuplicateKeysGoRight(t *testing.T) {
	tree := New[int64](OrderedKey[int64]{})
	require.NoError(t, tree.Insert(5))
	require.NoError(t, tree.Insert(5))

	root := tree.nodes[tree.root]
	require.Equal(t, nilHandle, root.left)
	require.NotEqual(t, nilHandle, root.right)

	require.NoError(t, tree.Insert(5))
	require.NoError(t, tree.Validate())
	require.Equal(t, []int64{5, 5, 5}, treeKeys(tree))
	require.Equal(t, int64(3), tree.Size())
}

func TestInvalidKey(t *testing.T) {
	tree := New[[]byte](BytesKey{})
	err := tree.Insert(nil)
	require.ErrorIs(t, err, ErrInvalidKey)
	require.Equal(t, int64(0), tree.Size())
	require.Equal(t, EmptyDigest, tree.RootDigest())

	// empty keys are valid, only absent ones are not
	require.NoError(t, tree.Insert([]byte{}))
	require.Equal(t, int64(1), tree.Size())
}

// findNode returns the handle of the first real node with the given key.
func findNode(tree *Tree[int64], key int64) handle {
	for h := 1; h < len(tree.nodes); h++ {
		if tree.nodes[h].key == key {
			return handle(h)
		}
	}
	return nilHandle
}

func TestColorExcludedFromDigest(t *testing.T) {
	x := New[int64](OrderedKey[int64]{})
	y := New[int64](OrderedKey[int64]{})
	insertAll(t, x, 1, 2, 3, 4, 5)
	insertAll(t, y, 1, 2, 3, 4, 5)
	// insertion settles on 2B(1B, 4B(3R, 5R)); the alternative coloring
	// 2B(1B, 4R(3B, 5B)) is also a valid red-black tree of the same shape
	y.nodes[findNode(y, 4)].color = Red
	y.nodes[findNode(y, 3)].color = Black
	y.nodes[findNode(y, 5)].color = Black

	require.NoError(t, y.Validate())
	require.True(t, x.Equal(y), "colors must not participate in the digest")
}

func TestEntriesEqual(t *testing.T) {
	codec := OrderedKey[int64]{}
	x := New[int64](codec)
	y := New[int64](codec)
	insertAll(t, x, 3, 1, 2)
	insertAll(t, y, 3, 1, 2)

	itX, itY := x.Iterator(), y.Iterator()
	for itX.Valid() {
		require.True(t, itY.Valid())
		require.True(t, EntriesEqual[int64](codec, itX.Entry(), itY.Entry()))
		itX.Next()
		itY.Next()
	}
	require.False(t, itY.Valid())

	a := Entry[int64]{Key: 1, Color: Red, Digest: "AA"}
	b := Entry[int64]{Key: 1, Color: Black, Digest: "AA"}
	c := Entry[int64]{Key: 1, Color: Red, Digest: "BB"}
	require.True(t, EntriesEqual[int64](codec, a, b))
	require.False(t, EntriesEqual[int64](codec, a, c))
}

func TestRandomInsertInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	tree := New[int64](OrderedKey[int64]{})
	var model []int64
	for i := 0; i < 2000; i++ {
		k := r.Int63n(500) // small range to exercise duplicates
		require.NoError(t, tree.Insert(k))
		model = append(model, k)
		if i%97 == 0 {
			require.NoError(t, tree.Validate())
		}
	}
	require.NoError(t, tree.Validate())

	slices.Sort(model)
	require.Equal(t, model, treeKeys(tree))
	require.Equal(t, int64(len(model)), tree.Size())
}

func TestTreeSims(t *testing.T) {
	rapid.Check(t, testTreeSims)
}

func testTreeSims(t *rapid.T) {
	sim := &simMachine{
		tree: New[string](OrderedKey[string]{}),
		twin: New[string](OrderedKey[string]{}),
	}
	t.Repeat(map[string]func(*rapid.T){
		"":        sim.Check,
		"InsertN": sim.InsertN,
	})
}

type simMachine struct {
	tree *Tree[string]
	twin *Tree[string]
	// model holds every inserted key, duplicates included
	model []string
}

func (s *simMachine) InsertN(t *rapid.T) {
	n := rapid.IntRange(1, 50).Draw(t, "n")
	for i := 0; i < n; i++ {
		key := rapid.StringOfN(rapid.RuneFrom([]rune("abcdefgh")), 1, 6, -1).Draw(t, "key")
		require.NoError(t, s.tree.Insert(key))
		require.NoError(t, s.twin.Insert(key))
		s.model = append(s.model, key)
	}
}

func (s *simMachine) Check(t *rapid.T) {
	require.NoError(t, s.tree.Validate())
	require.NoError(t, s.twin.Validate())
	require.True(t, s.tree.Equal(s.twin), "same insertion sequence must yield equal digests")
	require.Equal(t, s.tree.RootDigest(), s.twin.RootDigest())

	sorted := slices.Clone(s.model)
	slices.Sort(sorted)
	if len(sorted) == 0 {
		require.Equal(t, EmptyDigest, s.tree.RootDigest())
		return
	}
	require.Equal(t, sorted, treeKeys(s.tree))
}
