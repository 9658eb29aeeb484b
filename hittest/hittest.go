// Package hittest maps a pointer click back to the measurement the user
// meant to select.
package hittest

import (
	"fmt"
	"math"

	"github.com/bloodmagesoftware/arspace/plan"
	"github.com/bloodmagesoftware/arspace/view"
)

// DefaultThreshold is the pick radius in room-space units. It is applied
// after inverting the view transform, so the on-screen radius grows with zoom.
const DefaultThreshold = 10.0

// Policy decides which candidate wins when several measurements are under the threshold.
type Policy int

const (
	// FirstMatch selects the earliest measurement in list order that is under the threshold.
	FirstMatch Policy = iota
	// Closest selects the measurement with the smallest distance; ties go to the earlier one.
	Closest
)

func (p Policy) String() string {
	switch p {
	case FirstMatch:
		return "first"
	case Closest:
		return "closest"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps "first" or "closest" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "first":
		return FirstMatch, nil
	case "closest":
		return Closest, nil
	}
	return FirstMatch, fmt.Errorf("unknown hit-test policy %q (want first or closest)", s)
}

// Picker finds the measurement under a click.
type Picker struct {
	Threshold float64
	Policy    Policy
}

// NewPicker returns a first-match picker with the default threshold.
func NewPicker() Picker {
	return Picker{Threshold: DefaultThreshold, Policy: FirstMatch}
}

// Hit is one measurement under the pick radius.
type Hit struct {
	ID       string
	Index    int
	Distance float64
}

// Pick maps screen to room space through v and returns the selected
// linear measurement. Other kinds are never hit-tested.
func (p Picker) Pick(measurements []plan.Measurement, v view.State, screen plan.Vec2) (Hit, bool) {
	point := v.ScreenToRoom(screen)

	best := Hit{Index: -1, Distance: math.Inf(1)}
	for i, m := range measurements {
		if m.Kind != plan.KindLinear || m.Start == nil || m.End == nil {
			continue
		}

		dist := SegmentDistance(point, *m.Start, *m.End)
		if !(dist < p.Threshold) {
			continue
		}

		if p.Policy == FirstMatch {
			return Hit{ID: m.ID, Index: i, Distance: dist}, true
		}
		if dist < best.Distance {
			best = Hit{ID: m.ID, Index: i, Distance: dist}
		}
	}

	if best.Index < 0 {
		return Hit{}, false
	}
	return best, true
}

// SegmentDistance returns the Euclidean distance from p to the closest
// point of segment a-b. The projection parameter is clamped to [0, 1],
// so points beyond either end measure to that endpoint.
func SegmentDistance(p, a, b plan.Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Sub(a).Len()
	}

	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))

	closest := a.Add(ab.Scale(t))
	return p.Sub(closest).Len()
}
