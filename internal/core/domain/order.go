package domain

import (
	"cmp"
	"slices"
	"strings"
)

// compareElements orders two elements of the same kind the way they are
// listed to users. Ties are broken by ID so the order is total.
func compareElements(a, b Element) int {
	if c := compareContent(a, b); c != 0 {
		return c
	}
	return cmp.Compare(a.Ref().ID, b.Ref().ID)
}

func compareContent(a, b Element) int {
	switch x := a.(type) {
	case *Observer:
		y := b.(*Observer)
		return cmp.Or(
			strings.Compare(strings.ToLower(x.Surname), strings.ToLower(y.Surname)),
			strings.Compare(strings.ToLower(x.Name), strings.ToLower(y.Name)),
		)
	case *Session:
		return x.Begin.Compare(b.(*Session).Begin)
	case *Observation:
		return x.Begin.Compare(b.(*Observation).Begin)
	default:
		// Targets and sites by name, equipment by vendor and model.
		return strings.Compare(strings.ToLower(a.DisplayName()), strings.ToLower(b.DisplayName()))
	}
}

func sortElements[T Element](els []T) {
	slices.SortFunc(els, func(a, b T) int {
		if a.Ref().Kind != b.Ref().Kind {
			return cmp.Compare(a.Ref().Kind, b.Ref().Kind)
		}
		return compareElements(a, b)
	})
}
