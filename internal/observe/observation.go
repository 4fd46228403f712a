// Package observe defines the observation data model and the
// observer adapters that collect snapshots of external state for
// verification: static fixtures, JSON files, and subprocess output.
package observe

import (
	"fmt"
	"strings"

	"proviso/internal/jsonval"
)

// Observation holds the objects collected during one verification
// attempt, plus any errors encountered while collecting them. An
// Observation is built fresh for each attempt and is write-once:
// verifiers never mutate it.
type Observation struct {
	objects []jsonval.Value
	errors  []error
}

// NewObservation creates an empty observation.
func NewObservation() *Observation {
	return &Observation{}
}

// Objects returns the observed objects in collection order.
func (o *Observation) Objects() []jsonval.Value { return o.objects }

// Errors returns the collection errors in occurrence order.
func (o *Observation) Errors() []error { return o.errors }

// AddObject appends an observed object.
func (o *Observation) AddObject(obj jsonval.Value) {
	o.objects = append(o.objects, obj)
}

// AddAllObjects appends each element of objs as its own object.
func (o *Observation) AddAllObjects(objs []jsonval.Value) {
	o.objects = append(o.objects, objs...)
}

// AddError records an error encountered while observing.
func (o *Observation) AddError(err error) {
	o.errors = append(o.errors, err)
}

// Extend merges another observation's objects and errors into this
// one, preserving order.
func (o *Observation) Extend(other *Observation) {
	o.objects = append(o.objects, other.objects...)
	o.errors = append(o.errors, other.errors...)
}

func (o *Observation) String() string {
	rendered := make([]string, len(o.objects))
	for i, obj := range o.objects {
		rendered[i] = jsonval.Canonical(obj)
	}
	msgs := make([]string, len(o.errors))
	for i, err := range o.errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("objects=[%s] errors=[%s]",
		strings.Join(rendered, ","), strings.Join(msgs, ","))
}
