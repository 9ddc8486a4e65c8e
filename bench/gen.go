package bench

import (
	"fmt"
	"math/rand"
)

// KeyGenerator produces a deterministic stream of pseudo-random keys. The
// same configuration always yields the same stream, so runs are reproducible
// and two trees fed the same stream finish with identical root digests.
type KeyGenerator struct {
	Seed      int64
	KeyMean   int
	KeyStdDev int
}

func (g KeyGenerator) Stream() (*KeyStream, error) {
	if g.KeyMean < 1 {
		return nil, fmt.Errorf("key mean must be at least 1")
	}
	return &KeyStream{
		gen:  g,
		rand: rand.New(rand.NewSource(g.Seed)),
	}, nil
}

// KeyStream emits keys one at a time. Key lengths follow a normal
// distribution around the generator's mean, clamped to at least one byte.
type KeyStream struct {
	gen  KeyGenerator
	rand *rand.Rand
}

func (s *KeyStream) Next() []byte {
	size := int(s.rand.NormFloat64()*float64(s.gen.KeyStdDev) + float64(s.gen.KeyMean))
	if size < 1 {
		size = 1
	}
	key := make([]byte, size)
	s.rand.Read(key)
	return key
}
