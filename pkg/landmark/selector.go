package landmark

import "fmt"

// Selection is an ordered choice of landmark groups. Output layout follows
// the order the caller listed the groups in, not the canonical vector order.
type Selection struct {
	groups []Group
	width  int
}

// NewSelection validates the given group names. Unknown names and empty
// selections are configuration errors and fail eagerly with
// ErrInvalidSelection. Duplicates are collapsed, first occurrence wins.
func NewSelection(names ...string) (Selection, error) {
	if len(names) == 0 {
		return Selection{}, fmt.Errorf("%w: no groups selected", ErrInvalidSelection)
	}

	seen := make(map[Group]bool, len(names))
	sel := Selection{}

	for _, name := range names {
		g := Group(name)
		if _, ok := groupSpans[g]; !ok {
			return Selection{}, fmt.Errorf("%w: unknown group %q", ErrInvalidSelection, name)
		}
		if seen[g] {
			continue
		}
		seen[g] = true
		sel.groups = append(sel.groups, g)
		sel.width += g.Width()
	}

	return sel, nil
}

// Groups returns the selected groups in selection order.
func (s Selection) Groups() []Group {
	return s.groups
}

// Width is the per-frame feature count of the selected groups combined.
func (s Selection) Width() int {
	return s.width
}

// Select rebuilds every frame of seq from the selected groups' fixed ranges.
// Any frame that is not exactly TotalFeatures wide rejects the whole sequence
// with ErrFeatureCountMismatch; the caller decides whether that skips the file
// or aborts the run.
func Select(seq [][]float32, sel Selection) ([][]float32, error) {
	if sel.width == 0 {
		return nil, fmt.Errorf("%w: no groups selected", ErrInvalidSelection)
	}

	out := make([][]float32, 0, len(seq))

	for i, frame := range seq {
		if len(frame) != TotalFeatures {
			return nil, fmt.Errorf("%w: frame %d has %d features, expected %d",
				ErrFeatureCountMismatch, i, len(frame), TotalFeatures)
		}

		selected := make([]float32, 0, sel.width)
		for _, g := range sel.groups {
			sp := groupSpans[g]
			selected = append(selected, frame[sp.start:sp.end]...)
		}
		out = append(out, selected)
	}

	return out, nil
}
