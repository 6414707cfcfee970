// Package palette describes the widgets a designer offers for
// placement: their type, display label, default geometry, and default
// properties. Palettes load from YAML files; a builtin palette covers
// the standard widgets.
package palette

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/formstorm/internal/designer/component"
	"github.com/dshills/formstorm/internal/designer/layout"
)

// Entry is one placeable widget in the palette.
type Entry struct {
	// Type is the widget type name, e.g. "Button".
	Type string `yaml:"type"`

	// Label is the display name shown in the palette UI.
	Label string `yaml:"label"`

	// Width and Height are the default size for new instances. Zero
	// falls back to the widget's standard size.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Properties are the default property values for new instances.
	Properties map[string]string `yaml:"properties"`
}

// Size returns the entry's default size, falling back to the widget
// standard for zero dimensions.
func (e Entry) Size() layout.Size {
	std := layout.WidgetDefaultSize(e.Type)
	sz := layout.Sz(e.Width, e.Height)
	if sz.Width <= 0 {
		sz.Width = std.Width
	}
	if sz.Height <= 0 {
		sz.Height = std.Height
	}
	return sz
}

// Spec builds a component spec from the entry's defaults.
func (e Entry) Spec() component.Spec {
	return component.NewSpec(e.Type, e.Properties)
}

// Palette is an ordered list of placeable widgets.
type Palette struct {
	entries []Entry
	byType  map[string]int
}

// New builds a palette from entries, rejecting duplicates and entries
// with no type.
func New(entries []Entry) (*Palette, error) {
	p := &Palette{byType: make(map[string]int, len(entries))}
	for _, e := range entries {
		if e.Type == "" {
			return nil, fmt.Errorf("palette entry %q has no type", e.Label)
		}
		if _, dup := p.byType[e.Type]; dup {
			return nil, fmt.Errorf("duplicate palette entry for type %s", e.Type)
		}
		if e.Label == "" {
			e.Label = e.Type
		}
		p.byType[e.Type] = len(p.entries)
		p.entries = append(p.entries, e)
	}
	return p, nil
}

// Entries returns the entries in palette order.
func (p *Palette) Entries() []Entry {
	return p.entries
}

// Lookup returns the entry for a widget type.
func (p *Palette) Lookup(widgetType string) (Entry, bool) {
	idx, ok := p.byType[widgetType]
	if !ok {
		return Entry{}, false
	}
	return p.entries[idx], true
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	return len(p.entries)
}

// paletteFile is the YAML document layout.
type paletteFile struct {
	Widgets []Entry `yaml:"widgets"`
}

// Parse decodes a YAML palette document.
func Parse(data []byte) (*Palette, error) {
	var file paletteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing palette: %w", err)
	}
	if len(file.Widgets) == 0 {
		return nil, fmt.Errorf("palette defines no widgets")
	}
	return New(file.Widgets)
}

// Load reads a YAML palette file. An empty path selects the builtin
// palette.
func Load(path string) (*Palette, error) {
	if path == "" {
		return Builtin(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading palette %s: %w", path, err)
	}
	return Parse(data)
}

// Builtin returns the standard widget palette.
func Builtin() *Palette {
	p, err := New([]Entry{
		{Type: component.TypeButton, Label: "Button", Properties: map[string]string{"text": "Button"}},
		{Type: component.TypeLabel, Label: "Label", Properties: map[string]string{"text": "Label"}},
		{Type: component.TypeTextBox, Label: "Text Box"},
		{Type: component.TypeCheckbox, Label: "Checkbox", Properties: map[string]string{"checked": "false"}},
		{Type: component.TypeSlider, Label: "Slider", Properties: map[string]string{"value": "0", "min": "0", "max": "100"}},
	})
	if err != nil {
		panic(err)
	}
	return p
}
