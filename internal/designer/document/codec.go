package document

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/formstorm/internal/designer/component"
	"github.com/dshills/formstorm/internal/designer/layout"
)

// ErrInvalidForm is returned when a form document cannot be decoded.
var ErrInvalidForm = errors.New("invalid form document")

// Encode renders the document as a JSON form file: each component's
// spec plus its geometry, in insertion order.
//
//	{"components":[{"type":"Button","properties":{"text":"OK"},
//	                "x":50,"y":50,"width":100,"height":32}]}
//
// Selection and history are not part of the form file.
func (d *Document) Encode() ([]byte, error) {
	out := []byte(`{"components":[]}`)
	for i := 0; i < d.Len(); i++ {
		comp, _ := d.Component(i)
		raw, err := component.SpecOf(comp).Encode()
		if err != nil {
			return nil, fmt.Errorf("encoding component %d: %w", i, err)
		}
		path := fmt.Sprintf("components.%d", i)
		out, err = sjson.SetRawBytes(out, path, raw)
		if err != nil {
			return nil, fmt.Errorf("encoding component %d: %w", i, err)
		}
		if pos, ok := d.Layout.Position(i); ok {
			out, _ = sjson.SetBytes(out, path+".x", pos.X)
			out, _ = sjson.SetBytes(out, path+".y", pos.Y)
		}
		if size, ok := d.Layout.Size(i); ok {
			out, _ = sjson.SetBytes(out, path+".width", size.Width)
			out, _ = sjson.SetBytes(out, path+".height", size.Height)
		}
	}
	return out, nil
}

// Decode parses a form file produced by Encode, rebuilding components
// through the factory.
func Decode(data []byte, factory *component.Registry) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidForm)
	}
	comps := gjson.GetBytes(data, "components")
	if !comps.Exists() || !comps.IsArray() {
		return nil, fmt.Errorf("%w: missing components array", ErrInvalidForm)
	}

	d := New()
	var decodeErr error
	comps.ForEach(func(_, item gjson.Result) bool {
		spec, err := component.DecodeSpec([]byte(item.Raw))
		if err != nil {
			decodeErr = fmt.Errorf("component %d: %w", d.Len(), err)
			return false
		}
		comp, err := factory.New(spec)
		if err != nil {
			decodeErr = fmt.Errorf("component %d: %w", d.Len(), err)
			return false
		}
		idx := d.Len()
		if err := d.Insert(idx, comp); err != nil {
			decodeErr = err
			return false
		}
		if item.Get("x").Exists() {
			d.Layout.SetPosition(idx, layout.Pos(item.Get("x").Float(), item.Get("y").Float()))
		}
		if item.Get("width").Exists() {
			d.Layout.SetSize(idx, layout.Sz(item.Get("width").Float(), item.Get("height").Float()))
		}
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return d, nil
}
