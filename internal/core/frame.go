package core

// Update is a single cell assignment inside a Frame.
type Update struct {
	Index int
	Spec  VisualSpec
}

// Frame is an ordered set of cell updates produced by one game step.
// Setting the same index twice keeps the first position and the last spec,
// so a frame never causes more than one write per cell.
type Frame struct {
	order []int
	specs map[int]VisualSpec
}

// NewFrame creates an empty frame.
func NewFrame() Frame {
	return Frame{specs: make(map[int]VisualSpec)}
}

// Set assigns spec to the cell at index.
func (f *Frame) Set(index int, spec VisualSpec) {
	if f.specs == nil {
		f.specs = make(map[int]VisualSpec)
	}
	if _, ok := f.specs[index]; !ok {
		f.order = append(f.order, index)
	}
	f.specs[index] = spec
}

// Fill assigns the same spec to every listed cell.
func (f *Frame) Fill(indices []int, spec VisualSpec) {
	for _, idx := range indices {
		f.Set(idx, spec)
	}
}

// Get returns the spec assigned to index, if any.
func (f Frame) Get(index int) (VisualSpec, bool) {
	spec, ok := f.specs[index]
	return spec, ok
}

// Len returns the number of distinct cells updated.
func (f Frame) Len() int {
	return len(f.order)
}

// Empty reports whether the frame carries no updates.
func (f Frame) Empty() bool {
	return len(f.order) == 0
}

// Updates returns the updates in first-set order.
func (f Frame) Updates() []Update {
	out := make([]Update, 0, len(f.order))
	for _, idx := range f.order {
		out = append(out, Update{Index: idx, Spec: f.specs[idx]})
	}
	return out
}

// Merge applies every update of other on top of f.
func (f *Frame) Merge(other Frame) {
	for _, idx := range other.order {
		f.Set(idx, other.specs[idx])
	}
}
