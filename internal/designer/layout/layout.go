// Package layout manages component geometry for the design canvas.
//
// Positions and sizes are keyed by component index — the index of the
// component in the document's ordered list. Structural edits (insert or
// remove of a component) renumber every entry at or above the affected
// index; ShiftAfterInsert and ShiftAfterRemove are the single home for
// that renumbering logic.
package layout

// Grid defaults for components placed without an explicit position.
const (
	DefaultColumns  = 3
	DefaultSpacingX = 150
	DefaultSpacingY = 60
	DefaultStartX   = 50
	DefaultStartY   = 50
)

// Manager holds the index-keyed geometry of the design document.
type Manager struct {
	positions map[int]Position
	sizes     map[int]Size

	// Grid settings for default placement.
	columns  int
	spacingX float64
	spacingY float64
	startX   float64
	startY   float64
}

// NewManager creates an empty layout manager with default grid settings.
func NewManager() *Manager {
	return &Manager{
		positions: make(map[int]Position),
		sizes:     make(map[int]Size),
		columns:   DefaultColumns,
		spacingX:  DefaultSpacingX,
		spacingY:  DefaultSpacingY,
		startX:    DefaultStartX,
		startY:    DefaultStartY,
	}
}

// SetGrid configures the default placement grid.
// Non-positive values leave the corresponding setting unchanged.
func (m *Manager) SetGrid(columns int, spacingX, spacingY, startX, startY float64) {
	if columns > 0 {
		m.columns = columns
	}
	if spacingX > 0 {
		m.spacingX = spacingX
	}
	if spacingY > 0 {
		m.spacingY = spacingY
	}
	if startX > 0 {
		m.startX = startX
	}
	if startY > 0 {
		m.startY = startY
	}
}

// Position returns the stored position for the given index.
func (m *Manager) Position(idx int) (Position, bool) {
	p, ok := m.positions[idx]
	return p, ok
}

// Size returns the stored size for the given index.
func (m *Manager) Size(idx int) (Size, bool) {
	s, ok := m.sizes[idx]
	return s, ok
}

// SetPosition stores the position for the given index.
func (m *Manager) SetPosition(idx int, p Position) {
	m.positions[idx] = p
}

// SetSize stores the size for the given index.
func (m *Manager) SetSize(idx int, s Size) {
	m.sizes[idx] = s
}

// Remove drops the position and size entries for the given index.
// It does not renumber other entries; see ShiftAfterRemove.
func (m *Manager) Remove(idx int) {
	delete(m.positions, idx)
	delete(m.sizes, idx)
}

// Len returns the number of positioned entries.
func (m *Manager) Len() int {
	return len(m.positions)
}

// ShiftAfterInsert renumbers entries for an insertion at idx: every entry
// keyed at idx or above moves up by one, freeing the slot at idx.
func (m *Manager) ShiftAfterInsert(idx int) {
	m.positions = shiftUp(m.positions, idx)
	m.sizes = shiftUp(m.sizes, idx)
}

// ShiftAfterRemove renumbers entries for a removal at idx: every entry
// keyed above idx moves down by one. The entry at idx itself must already
// have been removed.
func (m *Manager) ShiftAfterRemove(idx int) {
	m.positions = shiftDown(m.positions, idx)
	m.sizes = shiftDown(m.sizes, idx)
}

func shiftUp[V any](entries map[int]V, idx int) map[int]V {
	out := make(map[int]V, len(entries))
	for k, v := range entries {
		if k >= idx {
			out[k+1] = v
		} else {
			out[k] = v
		}
	}
	return out
}

func shiftDown[V any](entries map[int]V, idx int) map[int]V {
	out := make(map[int]V, len(entries))
	for k, v := range entries {
		switch {
		case k > idx:
			out[k-1] = v
		case k < idx:
			out[k] = v
		}
		// k == idx is dropped; the caller removed that entry.
	}
	return out
}

// DefaultPosition computes the grid position for a component index that
// has no stored position, stores it, and returns it.
func (m *Manager) DefaultPosition(idx int) Position {
	if p, ok := m.positions[idx]; ok {
		return p
	}
	col := idx % m.columns
	row := idx / m.columns
	p := Position{
		X: m.startX + float64(col)*m.spacingX,
		Y: m.startY + float64(row)*m.spacingY,
	}
	m.positions[idx] = p
	return p
}

// DefaultSize returns the conventional size for a widget type, storing it
// for the index if no size is present.
func (m *Manager) DefaultSize(idx int, widget string) Size {
	if s, ok := m.sizes[idx]; ok {
		return s
	}
	s := WidgetDefaultSize(widget)
	m.sizes[idx] = s
	return s
}

// WidgetDefaultSize returns the conventional canvas size for a widget type.
func WidgetDefaultSize(widget string) Size {
	switch widget {
	case "Button":
		return Size{Width: 100, Height: 32}
	case "Label":
		return Size{Width: 80, Height: 24}
	case "TextBox":
		return Size{Width: 140, Height: 28}
	case "Checkbox":
		return Size{Width: 120, Height: 24}
	case "Slider":
		return Size{Width: 140, Height: 24}
	case "Dropdown":
		return Size{Width: 120, Height: 28}
	default:
		return Size{Width: 100, Height: 32}
	}
}

// Clone creates a deep copy of the manager.
func (m *Manager) Clone() *Manager {
	out := &Manager{
		positions: make(map[int]Position, len(m.positions)),
		sizes:     make(map[int]Size, len(m.sizes)),
		columns:   m.columns,
		spacingX:  m.spacingX,
		spacingY:  m.spacingY,
		startX:    m.startX,
		startY:    m.startY,
	}
	for k, v := range m.positions {
		out.positions[k] = v
	}
	for k, v := range m.sizes {
		out.sizes[k] = v
	}
	return out
}

// Equal reports whether two managers hold the same geometry entries.
// Grid settings are not compared.
func (m *Manager) Equal(other *Manager) bool {
	if other == nil {
		return false
	}
	if len(m.positions) != len(other.positions) || len(m.sizes) != len(other.sizes) {
		return false
	}
	for k, v := range m.positions {
		if ov, ok := other.positions[k]; !ok || ov != v {
			return false
		}
	}
	for k, v := range m.sizes {
		if ov, ok := other.sizes[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
