// Package component defines the component capability consumed by the
// designer command core, the builtin widget set, and the serialized Spec
// used to reconstruct components across delete/undo and add/redo.
package component

// Component is a placed UI element as seen by the command core. The core
// manipulates components only through this generic name/property surface;
// it never knows concrete widget types.
type Component interface {
	// Name returns the widget type name (e.g. "Button").
	Name() string

	// Property returns the named property value.
	Property(name string) (string, bool)

	// SetProperty sets a property, returning false if the widget does not
	// have a property with that name. A false return means nothing changed.
	SetProperty(name, value string) bool

	// Properties returns a snapshot of all property values.
	Properties() map[string]string
}

// widget is the shared implementation behind the builtin widget set.
// Each widget declares its property names up front; SetProperty rejects
// anything else.
type widget struct {
	name  string
	props map[string]string
}

func newWidget(name string, props map[string]string) *widget {
	return &widget{name: name, props: props}
}

func (w *widget) Name() string {
	return w.name
}

func (w *widget) Property(name string) (string, bool) {
	v, ok := w.props[name]
	return v, ok
}

func (w *widget) SetProperty(name, value string) bool {
	if _, ok := w.props[name]; !ok {
		return false
	}
	w.props[name] = value
	return true
}

func (w *widget) Properties() map[string]string {
	out := make(map[string]string, len(w.props))
	for k, v := range w.props {
		out[k] = v
	}
	return out
}
