// Package script hosts Lua automation for the form designer. Scripts
// drive the same command machinery as interactive edits, so everything
// a script does is undoable; a whole script run collapses into a single
// history entry.
//
// The `form` module is exposed to scripts. Component indices are
// 1-based on the Lua side:
//
//	form.add("Button")
//	form.move(1, 100, 40)
//	form.set_property(1, "text", "Run")
package script

import (
	"errors"
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/formstorm/internal/designer"
	"github.com/dshills/formstorm/internal/designer/command"
	"github.com/dshills/formstorm/internal/designer/layout"
)

// ErrHostClosed is returned when a closed host is reused.
var ErrHostClosed = errors.New("script host is closed")

// Host runs Lua scripts against a designer.
//
// gopher-lua states are not goroutine-safe; the host serializes script
// runs with a mutex, and the designer it drives must not be mutated
// concurrently from Go while a script runs.
type Host struct {
	mu     sync.Mutex
	L      *lua.LState
	d      *designer.Designer
	closed bool
}

// NewHost creates a sandboxed Lua host bound to a designer. The io, os,
// and debug libraries are not opened.
func NewHost(d *designer.Designer) *Host {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	h := &Host{L: L, d: d}
	h.register()
	return h
}

// register installs the form module.
func (h *Host) register() {
	mod := h.L.NewTable()
	h.L.SetField(mod, "add", h.L.NewFunction(h.add))
	h.L.SetField(mod, "move", h.L.NewFunction(h.move))
	h.L.SetField(mod, "resize", h.L.NewFunction(h.resize))
	h.L.SetField(mod, "set_property", h.L.NewFunction(h.setProperty))
	h.L.SetField(mod, "property", h.L.NewFunction(h.property))
	h.L.SetField(mod, "delete", h.L.NewFunction(h.delete))
	h.L.SetField(mod, "select", h.L.NewFunction(h.selectComponent))
	h.L.SetField(mod, "clear_selection", h.L.NewFunction(h.clearSelection))
	h.L.SetField(mod, "count", h.L.NewFunction(h.count))
	h.L.SetField(mod, "position", h.L.NewFunction(h.position))
	h.L.SetGlobal("form", mod)
}

// Run executes a script inside one history batch named after the
// script. A script error rolls back every edit the script applied.
func (h *Host) Run(name, code string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}

	res := h.d.Transaction(name, func() command.Result {
		if err := h.L.DoString(code); err != nil {
			return command.Errorf("script %s: %v", name, err)
		}
		return command.Success()
	})
	if res.IsError() {
		return fmt.Errorf("%s", res.Message)
	}
	return nil
}

// RunFile executes a script file via Run.
func (h *Host) RunFile(path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script %s: %w", path, err)
	}
	return h.Run(path, string(code))
}

// Close releases the Lua state. It is safe to call more than once.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.L.Close()
}

// check raises a Lua error for failed command results, aborting the
// script so the surrounding batch rolls back.
func (h *Host) check(L *lua.LState, op string, res command.Result) {
	if !res.OK() {
		L.RaiseError("%s: %s", op, res.Message)
	}
}

// index converts a 1-based Lua index argument to a document index.
func index(L *lua.LState, arg int) int {
	return L.CheckInt(arg) - 1
}

// add(type) -> index
func (h *Host) add(L *lua.LState) int {
	widgetType := L.CheckString(1)
	h.check(L, "add", h.d.Add(widgetType))
	L.Push(lua.LNumber(h.d.Len()))
	return 1
}

// move(index, x, y)
func (h *Host) move(L *lua.LState) int {
	idx := index(L, 1)
	x := float64(L.CheckNumber(2))
	y := float64(L.CheckNumber(3))
	h.check(L, "move", h.d.Move([]int{idx}, []layout.Position{layout.Pos(x, y)}))
	return 0
}

// resize(index, width, height)
func (h *Host) resize(L *lua.LState) int {
	idx := index(L, 1)
	w := float64(L.CheckNumber(2))
	ht := float64(L.CheckNumber(3))
	h.check(L, "resize", h.d.Resize(idx, layout.Sz(w, ht), nil))
	return 0
}

// set_property(index, name, value)
func (h *Host) setProperty(L *lua.LState) int {
	idx := index(L, 1)
	name := L.CheckString(2)
	value := L.CheckString(3)
	h.check(L, "set_property", h.d.SetProperty(idx, name, value))
	return 0
}

// property(index, name) -> string | nil
func (h *Host) property(L *lua.LState) int {
	idx := index(L, 1)
	name := L.CheckString(2)
	comp, ok := h.d.Component(idx)
	if !ok {
		L.RaiseError("property: component %d does not exist", idx+1)
		return 0
	}
	value, ok := comp.Property(name)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(value))
	return 1
}

// delete(index, ...)
func (h *Host) delete(L *lua.LState) int {
	n := L.GetTop()
	indices := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		indices = append(indices, index(L, i))
	}
	h.check(L, "delete", h.d.Delete(indices))
	return 0
}

// select(index)
func (h *Host) selectComponent(L *lua.LState) int {
	idx := index(L, 1)
	if !h.d.Select(idx) {
		L.RaiseError("select: component %d does not exist", idx+1)
	}
	return 0
}

// clear_selection()
func (h *Host) clearSelection(L *lua.LState) int {
	h.d.ClearSelection()
	return 0
}

// count() -> number
func (h *Host) count(L *lua.LState) int {
	L.Push(lua.LNumber(h.d.Len()))
	return 1
}

// position(index) -> x, y
func (h *Host) position(L *lua.LState) int {
	idx := index(L, 1)
	pos, ok := h.d.Document().Layout.Position(idx)
	if !ok {
		L.RaiseError("position: component %d has no position", idx+1)
		return 0
	}
	L.Push(lua.LNumber(pos.X))
	L.Push(lua.LNumber(pos.Y))
	return 2
}
