package rbmerkle

// Color is the red-black color tag of a node.
type Color uint8

const (
	Red Color = iota
	Black
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// handle indexes a node in the tree's arena. Handle 0 is the sentinel slot,
// which stands in for absent children and for the root's absent parent, so
// parent/left/right links never form ownership cycles.
type handle int32

const nilHandle handle = 0

type node[K any] struct {
	key    K
	digest string
	parent handle
	left   handle
	right  handle
	color  Color
}
