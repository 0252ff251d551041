package store

// Resettable is an edit form that can return to its blank state.
type Resettable interface {
	Reset()
}

// Closable is an open edit dialog.
type Closable interface {
	Close()
}

// Hooks carries the view-layer obligations of a mutating operation. Form
// reset and dialog close always run, success or not; After runs only on a
// confirmed success (typically a re-fetch of the list).
type Hooks struct {
	Form   Resettable
	Dialog Closable
	After  func()
}

func (h Hooks) cleanup() {
	if h.Form != nil {
		h.Form.Reset()
	}
	if h.Dialog != nil {
		h.Dialog.Close()
	}
}
