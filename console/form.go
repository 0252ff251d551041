package console

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// Form is an edit form over a payload struct. Validation is delegated to the
// payload's validate tags; Reset returns the form to its blank state, which
// the resource stores call after every mutating operation regardless of
// outcome.
type Form[T any] struct {
	mu        sync.Mutex
	initial   T
	values    T
	fieldErrs map[string]string
	validate  *validator.Validate
}

// NewForm creates a form whose blank state is initial.
func NewForm[T any](initial T) *Form[T] {
	return &Form[T]{
		initial:  initial,
		values:   initial,
		validate: validator.New(),
	}
}

// Set mutates the form values.
func (f *Form[T]) Set(mutate func(*T)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mutate(&f.values)
}

// Values returns the current form values.
func (f *Form[T]) Values() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Validate checks the current values against their validate tags, recording
// per-field messages.
func (f *Form[T]) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fieldErrs = nil
	err := f.validate.Struct(f.values)
	if err == nil {
		return nil
	}

	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		f.fieldErrs = make(map[string]string, len(fieldErrors))
		for _, fe := range fieldErrors {
			f.fieldErrs[fe.Field()] = fe.Field() + " failed on " + fe.Tag()
		}
	}
	return err
}

// FieldErrors returns the per-field messages recorded by the last Validate.
func (f *Form[T]) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fieldErrs))
	for k, v := range f.fieldErrs {
		out[k] = v
	}
	return out
}

// Reset returns the form to its blank state and clears field errors.
func (f *Form[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = f.initial
	f.fieldErrs = nil
}

// Dialog is an edit dialog's open/closed state. The resource stores close it
// after every mutating operation.
type Dialog struct {
	mu   sync.Mutex
	open bool
}

// Open marks the dialog open.
func (d *Dialog) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
}

// Close marks the dialog closed.
func (d *Dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
}

// IsOpen reports whether the dialog is open.
func (d *Dialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}
