package component

import (
	"errors"
	"reflect"
	"testing"
)

func TestWidgetProperties(t *testing.T) {
	b := NewButton("OK")
	if b.Name() != TypeButton {
		t.Errorf("Name() = %q", b.Name())
	}
	if v, ok := b.Property("text"); !ok || v != "OK" {
		t.Errorf("Property(text) = %q, %v", v, ok)
	}
	if !b.SetProperty("text", "Cancel") {
		t.Error("SetProperty(text) rejected")
	}
	if v, _ := b.Property("text"); v != "Cancel" {
		t.Errorf("text after set = %q", v)
	}
	if b.SetProperty("no_such_prop", "x") {
		t.Error("SetProperty should reject unknown properties")
	}
}

func TestPropertiesSnapshot(t *testing.T) {
	c := NewCheckbox("Agree", true)
	props := c.Properties()
	props["checked"] = "false"
	if v, _ := c.Property("checked"); v != "true" {
		t.Error("Properties() snapshot leaked into the widget")
	}
}

func TestSpecEncodeDecode(t *testing.T) {
	spec := NewSpec(TypeButton, map[string]string{"text": "New", "enabled": "true"})
	data, err := spec.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := DecodeSpec(data)
	if err != nil {
		t.Fatalf("DecodeSpec: %v", err)
	}
	if decoded.Type != TypeButton {
		t.Errorf("Type = %q", decoded.Type)
	}
	if !reflect.DeepEqual(decoded.Properties, spec.Properties) {
		t.Errorf("Properties = %v, want %v", decoded.Properties, spec.Properties)
	}
}

func TestSpecDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"type":`},
		{"missing type", `{"properties":{}}`},
		{"empty type", `{"type":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeSpec([]byte(tt.data)); !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("err = %v, want ErrInvalidSpec", err)
			}
		})
	}
}

func TestRegistryNew(t *testing.T) {
	r := Builtin()

	c, err := r.New(NewSpec(TypeButton, map[string]string{"text": "Go"}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if v, _ := c.Property("text"); v != "Go" {
		t.Errorf("text = %q", v)
	}

	if _, err := r.New(NewSpec("Hologram", nil)); !errors.Is(err, ErrUnknownType) {
		t.Errorf("err = %v, want ErrUnknownType", err)
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	r := Builtin()
	for _, widgetType := range r.Types() {
		t.Run(widgetType, func(t *testing.T) {
			original, err := r.New(NewSpec(widgetType, nil))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			original.SetProperty("text", "customized")

			data, err := SpecOf(original).Encode()
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			spec, err := DecodeSpec(data)
			if err != nil {
				t.Fatalf("DecodeSpec: %v", err)
			}
			rebuilt, err := r.New(spec)
			if err != nil {
				t.Fatalf("New (rebuilt): %v", err)
			}
			if !reflect.DeepEqual(rebuilt.Properties(), original.Properties()) {
				t.Errorf("rebuilt = %v, want %v", rebuilt.Properties(), original.Properties())
			}
		})
	}
}

func TestSliderSpec(t *testing.T) {
	r := Builtin()
	c, err := r.New(NewSpec(TypeSlider, map[string]string{"value": "42", "min": "10", "max": "50"}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for prop, want := range map[string]string{"value": "42", "min": "10", "max": "50"} {
		if v, _ := c.Property(prop); v != want {
			t.Errorf("%s = %q, want %q", prop, v, want)
		}
	}
}
