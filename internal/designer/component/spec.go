package component

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Errors returned by Spec and Registry operations.
var (
	ErrInvalidSpec = errors.New("invalid component spec")
	ErrUnknownType = errors.New("unknown component type")
)

// Spec is the serialized form of a component: its widget type plus a
// property map. Delete commands capture a Spec so a later undo can
// reconstruct the component; Add commands carry one for the same reason
// on redo.
type Spec struct {
	Type       string
	Properties map[string]string
}

// NewSpec creates a spec for a widget type with the given properties.
func NewSpec(widgetType string, props map[string]string) Spec {
	if props == nil {
		props = make(map[string]string)
	}
	return Spec{Type: widgetType, Properties: props}
}

// SpecOf captures the serialized form of a live component.
func SpecOf(c Component) Spec {
	return Spec{Type: c.Name(), Properties: c.Properties()}
}

// Encode renders the spec as a JSON blob:
//
//	{"type":"Button","properties":{"text":"OK"}}
func (s Spec) Encode() ([]byte, error) {
	if s.Type == "" {
		return nil, fmt.Errorf("%w: empty type", ErrInvalidSpec)
	}
	out, err := sjson.SetBytes([]byte(`{}`), "type", s.Type)
	if err != nil {
		return nil, fmt.Errorf("encoding spec type: %w", err)
	}
	if len(s.Properties) == 0 {
		out, err = sjson.SetRawBytes(out, "properties", []byte(`{}`))
		if err != nil {
			return nil, fmt.Errorf("encoding spec properties: %w", err)
		}
		return out, nil
	}
	for _, name := range sortedKeys(s.Properties) {
		out, err = sjson.SetBytes(out, "properties."+name, s.Properties[name])
		if err != nil {
			return nil, fmt.Errorf("encoding spec property %q: %w", name, err)
		}
	}
	return out, nil
}

// DecodeSpec parses a JSON blob produced by Encode.
func DecodeSpec(data []byte) (Spec, error) {
	if !gjson.ValidBytes(data) {
		return Spec{}, fmt.Errorf("%w: malformed JSON", ErrInvalidSpec)
	}
	typeName := gjson.GetBytes(data, "type")
	if !typeName.Exists() || typeName.String() == "" {
		return Spec{}, fmt.Errorf("%w: missing type", ErrInvalidSpec)
	}

	spec := Spec{
		Type:       typeName.String(),
		Properties: make(map[string]string),
	}
	gjson.GetBytes(data, "properties").ForEach(func(key, value gjson.Result) bool {
		spec.Properties[key.String()] = value.String()
		return true
	})
	return spec, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Factory constructs a live component from a spec.
type Factory func(Spec) Component

// Registry maps widget type names to factories. The command core uses a
// registry to rebuild components when redoing an Add or undoing a Delete.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces the factory for a widget type.
func (r *Registry) Register(widgetType string, factory Factory) {
	r.factories[widgetType] = factory
}

// Types returns the registered widget type names in sorted order.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New constructs a component from a spec. Unknown widget types are an
// error; the caller decides how to surface it.
func (r *Registry) New(spec Spec) (Component, error) {
	factory, ok := r.factories[spec.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, spec.Type)
	}
	c := factory(spec)
	// Apply any remaining spec properties the factory did not consume.
	for name, value := range spec.Properties {
		c.SetProperty(name, value)
	}
	return c, nil
}

// Builtin returns a registry with the builtin widget set.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(TypeButton, func(s Spec) Component {
		return NewButton(propOr(s, "text", "Button"))
	})
	r.Register(TypeLabel, func(s Spec) Component {
		return NewLabel(propOr(s, "text", "Label"))
	})
	r.Register(TypeTextBox, func(s Spec) Component {
		return NewTextBox(propOr(s, "text", ""))
	})
	r.Register(TypeCheckbox, func(s Spec) Component {
		return NewCheckbox(propOr(s, "text", "Checkbox"), propOr(s, "checked", "false") == "true")
	})
	r.Register(TypeSlider, func(s Spec) Component {
		return NewSlider(propOr(s, "value", "0"), propOr(s, "min", "0"), propOr(s, "max", "100"))
	})
	return r
}

func propOr(s Spec, name, fallback string) string {
	if v, ok := s.Properties[name]; ok {
		return v
	}
	return fallback
}
