// Package mapfn holds the interaction functions a map frame hosts (pan, zoom,
// select, identify, keyboard navigation, overlay glyphs) and the registry that
// arbitrates which of them own each input channel.
package mapfn

import "strings"

// YieldStyle is the set of input channels a function claims. LeftButton,
// RightButton, Scroll and Keyboard are exclusive: activating a function
// deactivates every other active function sharing one of them. AlwaysOn
// functions bypass arbitration and see every event.
type YieldStyle uint8

const (
	LeftButton YieldStyle = 1 << iota
	RightButton
	Scroll
	Keyboard
	AlwaysOn
)

// Exclusive returns the arbitrated channels of y.
func (y YieldStyle) Exclusive() YieldStyle { return y &^ AlwaysOn }

// IsAlwaysOn reports whether y bypasses arbitration.
func (y YieldStyle) IsAlwaysOn() bool { return y&AlwaysOn != 0 }

// Conflicts reports whether two styles compete for a channel.
func (y YieldStyle) Conflicts(o YieldStyle) bool {
	if y.IsAlwaysOn() || o.IsAlwaysOn() {
		return false
	}
	return y.Exclusive()&o.Exclusive() != 0
}

func (y YieldStyle) String() string {
	if y == 0 {
		return "none"
	}
	var parts []string
	for _, c := range []struct {
		bit  YieldStyle
		name string
	}{
		{LeftButton, "left"},
		{RightButton, "right"},
		{Scroll, "scroll"},
		{Keyboard, "keyboard"},
		{AlwaysOn, "always"},
	} {
		if y&c.bit != 0 {
			parts = append(parts, c.name)
		}
	}
	return strings.Join(parts, "|")
}

// Function is one interaction mode. Handlers receive events by pointer so
// they can set Handled; dispatch continues regardless.
type Function interface {
	Name() string
	YieldStyle() YieldStyle

	Init(h Host)
	Unload()

	Activate()
	Deactivate()
	IsActive() bool
	// Observe registers fn to run after every activation state change.
	Observe(fn func(active bool))

	OnMouseDown(e *MouseEvent)
	OnMouseUp(e *MouseEvent)
	OnMouseMove(e *MouseEvent)
	OnMouseWheel(e *MouseEvent)
	OnKeyDown(e *KeyEvent)
	OnKeyUp(e *KeyEvent)

	// Draw renders transient overlays such as drag rectangles.
	Draw(args DrawArgs)
}

// Base implements the lifecycle half of Function and no-op handlers.
// Variants embed it and override the handlers they need.
type Base struct {
	name      string
	style     YieldStyle
	host      Host
	active    bool
	observers []func(bool)
}

// NewBase returns an inactive base.
func NewBase(name string, style YieldStyle) Base {
	return Base{name: name, style: style}
}

func (b *Base) Name() string           { return b.name }
func (b *Base) YieldStyle() YieldStyle { return b.style }
func (b *Base) Host() Host             { return b.host }
func (b *Base) IsActive() bool         { return b.active }

func (b *Base) Init(h Host) { b.host = h }
func (b *Base) Unload()     { b.host = nil }

func (b *Base) Observe(fn func(active bool)) {
	if fn != nil {
		b.observers = append(b.observers, fn)
	}
}

// Activate is a no-op on an active function.
func (b *Base) Activate() {
	if b.active {
		return
	}
	b.active = true
	b.notify()
}

// Deactivate is a no-op on an inactive function.
func (b *Base) Deactivate() {
	if !b.active {
		return
	}
	b.active = false
	b.notify()
}

func (b *Base) notify() {
	for _, fn := range b.observers {
		fn(b.active)
	}
}

func (b *Base) OnMouseDown(*MouseEvent)  {}
func (b *Base) OnMouseUp(*MouseEvent)    {}
func (b *Base) OnMouseMove(*MouseEvent)  {}
func (b *Base) OnMouseWheel(*MouseEvent) {}
func (b *Base) OnKeyDown(*KeyEvent)      {}
func (b *Base) OnKeyUp(*KeyEvent)        {}
func (b *Base) Draw(DrawArgs)            {}
