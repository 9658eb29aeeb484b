package plan

import (
	"fmt"
	"strings"
)

// wallJoinTolerance is how far apart consecutive wall endpoints may be
// while still counting as joined.
const wallJoinTolerance = 1e-6

// ValidationError describes a single malformed field in a room or measurement.
type ValidationError struct {
	Subject string // which record has the problem, e.g. "measurement 3" or "room wall 2"
	Message string // human-readable description
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Subject, e.Message)
}

// ValidationErrors is every finding from one validation pass.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d validation error(s): %s", len(errs), strings.Join(msgs, "; "))
}

// orNil keeps a nil slice from turning into a non-nil error interface.
func (errs ValidationErrors) orNil() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks that the room is a closed, non-degenerate polygon with
// finite coordinates and positive fixture dimensions.
func (r Room) Validate() error {
	return r.validate().orNil()
}

func (r Room) validate() ValidationErrors {
	var errs ValidationErrors

	if len(r.Walls) < 3 {
		errs = append(errs, ValidationError{
			Subject: "room",
			Message: fmt.Sprintf("needs at least 3 walls to enclose an area, has %d", len(r.Walls)),
		})
	}

	for i, w := range r.Walls {
		subject := fmt.Sprintf("room wall %d", i+1)
		if !w.Start.Finite() || !w.End.Finite() {
			errs = append(errs, ValidationError{Subject: subject, Message: "coordinates must be finite"})
			continue
		}
		next := r.Walls[(i+1)%len(r.Walls)]
		if w.End.Sub(next.Start).Len() > wallJoinTolerance {
			errs = append(errs, ValidationError{
				Subject: subject,
				Message: fmt.Sprintf("ends at (%g, %g) but the next wall starts at (%g, %g)", w.End.X, w.End.Y, next.Start.X, next.Start.Y),
			})
		}
	}

	if len(errs) == 0 && SignedArea(r.Outline()) == 0 {
		errs = append(errs, ValidationError{Subject: "room", Message: "walls enclose zero area"})
	}

	for i, d := range r.Doors {
		subject := fmt.Sprintf("room door %d", i+1)
		if !d.Position.Finite() {
			errs = append(errs, ValidationError{Subject: subject, Message: "position must be finite"})
		}
		if !(d.Width > 0) || !finite(d.Width) {
			errs = append(errs, ValidationError{Subject: subject, Message: fmt.Sprintf("width is %g, must be positive", d.Width)})
		}
	}

	for i, w := range r.Windows {
		subject := fmt.Sprintf("room window %d", i+1)
		if !w.Position.Finite() {
			errs = append(errs, ValidationError{Subject: subject, Message: "position must be finite"})
		}
		if !(w.Width > 0) || !finite(w.Width) {
			errs = append(errs, ValidationError{Subject: subject, Message: fmt.Sprintf("width is %g, must be positive", w.Width)})
		}
		if !(w.Height > 0) || !finite(w.Height) {
			errs = append(errs, ValidationError{Subject: subject, Message: fmt.Sprintf("height is %g, must be positive", w.Height)})
		}
	}

	for i, o := range r.Outlets {
		if !o.Position.Finite() {
			errs = append(errs, ValidationError{Subject: fmt.Sprintf("room outlet %d", i+1), Message: "position must be finite"})
		}
	}

	return errs
}

// Validate checks that the measurement carries the geometry its kind needs
// and that its value is a positive finite number.
func (m Measurement) Validate() error {
	return m.validate().orNil()
}

func (m Measurement) validate() ValidationErrors {
	var errs ValidationErrors

	subject := "measurement " + m.ID
	if m.ID == "" {
		subject = "measurement"
		errs = append(errs, ValidationError{Subject: subject, Message: "id is required"})
	}

	add := func(format string, args ...any) {
		errs = append(errs, ValidationError{Subject: subject, Message: fmt.Sprintf(format, args...)})
	}

	if !(m.Value > 0) || !finite(m.Value) {
		add("value is %g, must be positive", m.Value)
	}
	if m.Unit == "" {
		add("unit is required")
	}

	switch m.Kind {
	case KindLinear:
		if m.Start == nil || m.End == nil {
			add("linear measurement needs start and end")
		} else if !m.Start.Finite() || !m.End.Finite() {
			add("start and end must be finite")
		}
	case KindArea:
		if m.Bounds == nil {
			add("area measurement needs bounds")
		} else {
			b := *m.Bounds
			if !finite(b.X) || !finite(b.Y) {
				add("bounds origin must be finite")
			}
			if !(b.Width > 0) || !finite(b.Width) || !(b.Height > 0) || !finite(b.Height) {
				add("bounds are %gx%g, both dimensions must be positive", b.Width, b.Height)
			}
		}
	case KindHeight, KindAngle, KindDoorway:
		if m.Position == nil {
			add("%s measurement needs a position", m.Kind)
		} else if !m.Position.Finite() {
			add("position must be finite")
		}
	default:
		add("unknown type %q", m.Kind)
	}

	return errs
}

// ValidateMeasurements validates every measurement and checks that IDs are
// unique within the list.
func ValidateMeasurements(ms []Measurement) error {
	var errs ValidationErrors
	seen := make(map[string]int, len(ms))
	for i, m := range ms {
		errs = append(errs, m.validate()...)
		if m.ID == "" {
			continue
		}
		if first, ok := seen[m.ID]; ok {
			errs = append(errs, ValidationError{
				Subject: "measurement " + m.ID,
				Message: fmt.Sprintf("duplicate id (entries %d and %d)", first+1, i+1),
			})
			continue
		}
		seen[m.ID] = i
	}
	return errs.orNil()
}
