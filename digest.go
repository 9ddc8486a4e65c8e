package rbmerkle

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"sync"
)

// Node digests are SHA-256 over the UTF-8 bytes of
// canonicalKey || leftDigest || rightDigest, rendered as uppercase hex.
// A sentinel child contributes the empty string. Color is deliberately not
// part of the framing: the digest fingerprints content and shape, not
// balance state.

var hashPool = &sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// EmptyDigest is the root digest of a tree with no real nodes: SHA-256 of
// the empty string. It is independent of the tree's key codec.
var EmptyDigest = computeDigest("", "", "")

func computeDigest(canonicalKey, leftDigest, rightDigest string) string {
	h := hashPool.Get().(hash.Hash)
	h.Reset()
	io.WriteString(h, canonicalKey)
	io.WriteString(h, leftDigest)
	io.WriteString(h, rightDigest)
	sum := h.Sum(nil)
	hashPool.Put(h)
	return fmt.Sprintf("%X", sum)
}
