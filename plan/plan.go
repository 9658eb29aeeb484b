package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Plan pairs one room with the measurements recorded over it.
// It is the unit stored in a plan fixture file.
type Plan struct {
	Name         string        `yaml:"name"`
	Room         Room          `yaml:"room"`
	Measurements []Measurement `yaml:"measurements"`
}

// New validates room and measurements and returns a plan holding them.
// Malformed input is rejected with a ValidationErrors value.
func New(name string, room Room, measurements []Measurement) (*Plan, error) {
	p := &Plan{
		Name:         name,
		Room:         room,
		Measurements: measurements,
	}
	if p.Measurements == nil {
		p.Measurements = make([]Measurement, 0)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate runs room and measurement validation and reports every finding.
func (p *Plan) Validate() error {
	errs := p.Room.validate()

	var merrs ValidationErrors
	if err := ValidateMeasurements(p.Measurements); errors.As(err, &merrs) {
		errs = append(errs, merrs...)
	}

	return errs.orNil()
}

// Find returns the measurement with the given id.
func (p *Plan) Find(id string) (Measurement, bool) {
	for _, m := range p.Measurements {
		if m.ID == id {
			return m, true
		}
	}
	return Measurement{}, false
}

// NewID returns a fresh session-unique measurement id.
func NewID() string {
	return uuid.NewString()
}

// AssignIDs gives every measurement without an id a fresh one.
// Existing ids are left untouched so they stay stable across the session.
func AssignIDs(ms []Measurement) {
	for i := range ms {
		if ms[i].ID == "" {
			ms[i].ID = NewID()
		}
	}
}

// Load reads a plan fixture, assigns ids to measurements that have none,
// and validates the result.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var p Plan
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if p.Name == "" {
		p.Name = trimExt(filepath.Base(path))
	}
	if p.Measurements == nil {
		p.Measurements = make([]Measurement, 0)
	}
	AssignIDs(p.Measurements)

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return &p, nil
}

// Save writes the plan as YAML, creating parent directories as needed.
func (p *Plan) Save(path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	defer encoder.Close()
	encoder.SetIndent(4)

	return encoder.Encode(p)
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
