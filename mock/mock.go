// Package mock simulates the slow parts of an AR measuring session: scanning
// a room and verifying measurement accuracy. Nothing here talks to a camera;
// the results are fixtures delivered after a delay. Every task is bound to a
// context so a caller that goes away stops waiting.
package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/bloodmagesoftware/arspace/plan"
)

const (
	// DefaultScanDelay is how long a simulated scan takes.
	DefaultScanDelay = 2 * time.Second
	// DefaultVerifyDelay is how long a simulated accuracy check takes.
	DefaultVerifyDelay = 1500 * time.Millisecond
)

// wait blocks for d or until ctx is done, whichever comes first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Scan pretends to capture a room and returns the fixture room with its
// measurements after delay. Each scanned measurement gets a fresh ID.
func Scan(ctx context.Context, delay time.Duration) (plan.Room, []plan.Measurement, error) {
	if err := wait(ctx, delay); err != nil {
		return plan.Room{}, nil, err
	}

	ms := plan.DefaultMeasurements()
	for i := range ms {
		ms[i].ID = plan.NewID()
	}
	return plan.DefaultRoom(), ms, nil
}

// Accuracy is the simulated verification result for one measurement.
type Accuracy struct {
	ID string `yaml:"id"`
	// Confidence is in [0, 1].
	Confidence float64 `yaml:"confidence"`
	// Tolerance is the +/- error bound in the measurement's unit.
	Tolerance float64 `yaml:"tolerance"`
	Unit      string  `yaml:"unit"`
}

func (a Accuracy) String() string {
	return fmt.Sprintf("%s: %.0f%% confidence, ±%g %s", a.ID, a.Confidence*100, a.Tolerance, a.Unit)
}

// Verify pretends to check the accuracy of ms and reports one Accuracy per
// measurement, in order, after delay. Results depend only on the kind and value.
func Verify(ctx context.Context, delay time.Duration, ms []plan.Measurement) ([]Accuracy, error) {
	if err := wait(ctx, delay); err != nil {
		return nil, err
	}

	out := make([]Accuracy, 0, len(ms))
	for _, m := range ms {
		out = append(out, accuracyOf(m))
	}
	return out, nil
}

func accuracyOf(m plan.Measurement) Accuracy {
	a := Accuracy{ID: m.ID, Unit: m.Unit}
	switch m.Kind {
	case plan.KindLinear:
		a.Confidence = 0.98
		a.Tolerance = m.Value * 0.01
	case plan.KindArea:
		a.Confidence = 0.95
		a.Tolerance = m.Value * 0.02
	case plan.KindAngle:
		a.Confidence = 0.92
		a.Tolerance = 1
	default:
		a.Confidence = 0.9
		a.Tolerance = m.Value * 0.03
	}
	return a
}

// Task runs fn in the background under its own cancellable context.
// Cancel stops it; Wait blocks until fn has returned.
type Task[T any] struct {
	cancel context.CancelFunc
	done   chan struct{}
	result T
	err    error
}

// Start launches fn. Cancelling parent also cancels the task.
func Start[T any](parent context.Context, fn func(context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(parent)
	t := &Task[T]{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		defer cancel()
		t.result, t.err = fn(ctx)
	}()
	return t
}

// Cancel asks the task to stop. It is safe to call more than once.
func (t *Task[T]) Cancel() {
	t.cancel()
}

// Done is closed once the task has finished.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes and returns its result.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	return t.result, t.err
}
