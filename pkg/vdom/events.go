package vdom

import "strings"

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" and capitalized ("click" becomes "onClick").
// An empty name yields a zero EventHandler, which builders ignore.
func event(name string, handler any) EventHandler {
	prop := handlerProp(name)
	if prop == "" {
		return EventHandler{}
	}
	return EventHandler{Event: prop, Handler: handler}
}

// handlerProp maps an event type to its prop name, or "" for an empty type.
func handlerProp(name string) string {
	if name == "" {
		return ""
	}
	return "on" + strings.ToUpper(name[:1]) + name[1:]
}

// On binds handler to an arbitrary lower-case event type.
func On(name string, handler any) EventHandler { return event(name, handler) }

// Mouse events

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) EventHandler { return event("dblclick", handler) }

// OnMouseDown handles mousedown events.
func OnMouseDown(handler any) EventHandler { return event("mousedown", handler) }

// OnMouseUp handles mouseup events.
func OnMouseUp(handler any) EventHandler { return event("mouseup", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) EventHandler { return event("keydown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler any) EventHandler { return event("keyup", handler) }

// Form events

// OnInput handles input events (fired when value changes).
func OnInput(handler any) EventHandler { return event("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// Focus events

// OnFocus handles focus events.
func OnFocus(handler any) EventHandler { return event("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) EventHandler { return event("blur", handler) }
