// Package form tracks the values, touched flags, errors, and busy state of an
// input form and drives validation on blur, change, and submit.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Veraticus/coinpurse/internal/common"
)

// ErrBusy is returned when a submission is attempted while another one from
// the same form is still in flight.
var ErrBusy = errors.New("form is busy")

// Values is a snapshot of a form's field values.
type Values[F comparable] map[F]string

// Schema describes the fields of a form and how they are validated.
type Schema[F comparable] struct {
	// Validate returns an error message for value, or "" when it is valid.
	Validate func(field F, value string, lookup func(F) string) string
	// Dependents lists fields to re-check when the given field changes.
	Dependents func(F) []F
	// Active narrows Fields given the current values. Nil means all Fields.
	Active func(lookup func(F) string) []F
	// Name is the key used for a field in a ValidationError.
	Name   func(F) string
	Fields []F
}

// Controller owns the state of one form instance. It is safe for concurrent
// use, so a submission can run on a background goroutine while the UI reads
// its state.
type Controller[F comparable] struct {
	schema  Schema[F]
	values  map[F]string
	touched map[F]bool
	errors  map[F]string
	mu      sync.Mutex
	busy    bool
}

// New creates a controller for the given schema.
func New[F comparable](schema Schema[F]) *Controller[F] {
	if schema.Name == nil {
		schema.Name = func(f F) string { return fmt.Sprint(f) }
	}
	return &Controller[F]{
		schema:  schema,
		values:  make(map[F]string),
		touched: make(map[F]bool),
		errors:  make(map[F]string),
	}
}

// Fields returns the fields currently taking part in validation.
func (c *Controller[F]) Fields() []F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeFields()
}

// Value returns the current value of field.
func (c *Controller[F]) Value(field F) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[field]
}

// Values returns a snapshot of all values.
func (c *Controller[F]) Values() Values[F] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Load sets initial values without touching or validating them.
func (c *Controller[F]) Load(values map[F]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for f, v := range values {
		c.values[f] = v
	}
}

// OnChange updates a value. The field is re-validated only if it was already
// touched, and any touched dependents are re-checked against the new value.
// Changes are ignored while a submission is in flight.
func (c *Controller[F]) OnChange(field F, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return
	}
	c.values[field] = value
	if c.touched[field] {
		c.validate(field)
	}
	if c.schema.Dependents == nil {
		return
	}
	for _, dep := range c.schema.Dependents(field) {
		if c.touched[dep] {
			c.validate(dep)
		}
	}
}

// OnBlur marks field as touched and validates it.
func (c *Controller[F]) OnBlur(field F) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return
	}
	c.touched[field] = true
	c.validate(field)
}

// Clear resets a field's value, touched flag, and error.
func (c *Controller[F]) Clear(field F) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, field)
	delete(c.touched, field)
	delete(c.errors, field)
}

// Reset empties the whole form.
func (c *Controller[F]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = make(map[F]string)
	c.touched = make(map[F]bool)
	c.errors = make(map[F]string)
}

// Touched reports whether field has been blurred or submitted.
func (c *Controller[F]) Touched(field F) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touched[field]
}

// Error returns the stored error for field.
func (c *Controller[F]) Error(field F) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors[field]
}

// Errors returns all non-empty field errors.
func (c *Controller[F]) Errors() map[F]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[F]string, len(c.errors))
	for f, msg := range c.errors {
		if msg != "" {
			out[f] = msg
		}
	}
	return out
}

// Busy reports whether a submission is in flight. Inputs and the submit
// action are disabled while it is true.
func (c *Controller[F]) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Submit touches and validates every active field. If any field is invalid it
// returns a *common.ValidationError and fn is never called. Otherwise the form
// is marked busy for the duration of fn, which receives a snapshot of the
// values; busy is cleared on every exit path.
func (c *Controller[F]) Submit(ctx context.Context, fn func(context.Context, Values[F]) error) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}

	invalid := make(map[string]string)
	active := c.activeFields()
	inactive := make(map[F]bool, len(c.errors))
	for f := range c.errors {
		inactive[f] = true
	}
	for _, f := range active {
		delete(inactive, f)
		c.touched[f] = true
		if msg := c.validate(f); msg != "" {
			invalid[c.schema.Name(f)] = msg
		}
	}
	for f := range inactive {
		delete(c.errors, f)
	}
	if len(invalid) > 0 {
		c.mu.Unlock()
		return &common.ValidationError{Fields: invalid}
	}

	c.busy = true
	values := c.snapshot()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	return fn(ctx, values)
}

// validate must be called with mu held.
func (c *Controller[F]) validate(field F) string {
	if c.schema.Validate == nil {
		return ""
	}
	msg := c.schema.Validate(field, c.values[field], c.lookup)
	if msg == "" {
		delete(c.errors, field)
	} else {
		c.errors[field] = msg
	}
	return msg
}

func (c *Controller[F]) lookup(field F) string {
	return c.values[field]
}

func (c *Controller[F]) activeFields() []F {
	if c.schema.Active != nil {
		return c.schema.Active(c.lookup)
	}
	out := make([]F, len(c.schema.Fields))
	copy(out, c.schema.Fields)
	return out
}

func (c *Controller[F]) snapshot() Values[F] {
	out := make(Values[F], len(c.values))
	for f, v := range c.values {
		out[f] = v
	}
	return out
}
