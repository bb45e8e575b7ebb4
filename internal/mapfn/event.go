package mapfn

import (
	"geoview/internal/geom"
	"geoview/internal/layer"
	"geoview/internal/view"
)

// Button identifies a mouse button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	Shift Modifiers = 1 << iota
	Ctrl
	Alt
)

// SelectionMode maps held modifiers onto a selection policy: Shift appends,
// Ctrl inverts, anything else replaces.
func (m Modifiers) SelectionMode() layer.SelectionMode {
	switch {
	case m&Ctrl != 0:
		return layer.Invert
	case m&Shift != 0:
		return layer.Append
	}
	return layer.Replace
}

// MouseEvent is a mouse event resolved against the view.
type MouseEvent struct {
	Pixel geom.Point
	Geo   geom.Coordinate
	// Button is the button pressed or released; for a move it is the button
	// held, if any.
	Button    Button
	Modifiers Modifiers
	// Delta is the wheel step count, positive away from the user.
	Delta int
	// InView is false when the pointer is outside the map client area.
	InView  bool
	Handled bool
}

// Channel returns the channel the event is dispatched on. A move with no
// button held reaches both button channels so hover feedback works in
// every mode. The middle button has no channel and only reaches AlwaysOn
// functions.
func (e *MouseEvent) Channel() YieldStyle {
	if e.Delta != 0 {
		return Scroll
	}
	switch e.Button {
	case ButtonLeft:
		return LeftButton
	case ButtonRight:
		return RightButton
	case ButtonNone:
		return LeftButton | RightButton
	}
	return 0
}

// KeyEvent is a key press or release. Key uses bubbletea key names such as
// "left", "ctrl+c" or "+".
type KeyEvent struct {
	Key       string
	Modifiers Modifiers
	Handled   bool
}

// Canvas is the overlay surface handed to Draw. Coordinates are client pixels.
type Canvas interface {
	Line(a, b geom.Point)
	Rect(r geom.Rectangle)
	Text(p geom.Point, s string)
}

// DrawArgs is passed to every active function once per redraw.
type DrawArgs struct {
	Canvas    Canvas
	Transform view.Transform
}
