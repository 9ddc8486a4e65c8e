package rbmerkle

import (
	"bytes"
	"fmt"

	"golang.org/x/exp/constraints"
)

// KeyCodec defines ordering and canonical rendering for a key type.
// Compare must be a total order. Canonical must be deterministic: it is the
// exact string hashed into node digests, so two implementations are
// digest-compatible only if their canonical forms match byte for byte.
type KeyCodec[K any] interface {
	Compare(a, b K) int
	Canonical(k K) string
	// Validate reports whether k may be inserted. Key types with no absent
	// form always return nil.
	Validate(k K) error
}

// OrderedKey orders any primitive ordered type with < and renders it with
// fmt.Sprint, which is minimal decimal for Go integer types.
type OrderedKey[K constraints.Ordered] struct{}

func (OrderedKey[K]) Compare(a, b K) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (OrderedKey[K]) Canonical(k K) string { return fmt.Sprint(k) }

func (OrderedKey[K]) Validate(K) error { return nil }

// BytesKey orders []byte keys lexicographically and treats the raw bytes as
// the canonical form. Nil keys are invalid; empty keys are not.
type BytesKey struct{}

func (BytesKey) Compare(a, b []byte) int { return bytes.Compare(a, b) }

func (BytesKey) Canonical(k []byte) string { return string(k) }

func (BytesKey) Validate(k []byte) error {
	if k == nil {
		return ErrInvalidKey
	}
	return nil
}

var (
	_ KeyCodec[int64]  = OrderedKey[int64]{}
	_ KeyCodec[string] = OrderedKey[string]{}
	_ KeyCodec[[]byte] = BytesKey{}
)
