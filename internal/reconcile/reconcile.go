// Package reconcile computes the keyed enter/update/exit join between the
// dots on screen and a freshly generated batch.
package reconcile

import "github.com/san-kum/dotsim/internal/dots"

type Diff struct {
	Entering   []dots.Dot
	Persisting []dots.Dot
	Exiting    []dots.Dot
}

// Reconcile joins next against prev by dots.Key. Entering and Persisting
// follow next order and carry next's descriptors; Exiting follows prev
// order. Repeated keys in next collapse onto their first occurrence.
func Reconcile(prev, next []dots.Dot) Diff {
	onScreen := make(map[string]bool, len(prev))
	for _, d := range prev {
		onScreen[dots.Key(d)] = true
	}

	var diff Diff
	bound := make(map[string]bool, len(next))
	for _, d := range next {
		k := dots.Key(d)
		if bound[k] {
			continue
		}
		bound[k] = true
		if onScreen[k] {
			diff.Persisting = append(diff.Persisting, d)
		} else {
			diff.Entering = append(diff.Entering, d)
		}
	}

	for _, d := range prev {
		if !bound[dots.Key(d)] {
			diff.Exiting = append(diff.Exiting, d)
		}
	}
	return diff
}
