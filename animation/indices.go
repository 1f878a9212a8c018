package animation

// Indices is an inclusive, zero-based range of atlas frames.
type Indices struct {
	First int
	Last  int
}

func (r Indices) Len() int {
	return r.Last - r.First + 1
}

func (r Indices) Contains(i int) bool {
	return i >= r.First && i <= r.Last
}

func (r Indices) Clamp(i int) int {
	if i < r.First {
		return r.First
	}
	if i > r.Last {
		return r.Last
	}
	return i
}

// Next returns the frame after i, wrapping from Last back to First. An index
// below First jumps to First.
func (r Indices) Next(i int) int {
	switch {
	case i < r.First:
		return r.First
	case i < r.Last:
		return i + 1
	default:
		return r.First
	}
}
