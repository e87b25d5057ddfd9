package picsearch

import "strings"

// Event is a raw input event delivered by a host.
type Event interface {
	isEvent()
}

// PointerRelease is a mouse button or touch release at horizontal position X.
type PointerRelease struct {
	X int
}

// Key is a key press, named "left", "right", etc.
type Key struct {
	Name string
}

// DoubleClick is a double click or double tap anywhere on the surface.
type DoubleClick struct{}

func (PointerRelease) isEvent() {}
func (Key) isEvent()            {}
func (DoubleClick) isEvent()    {}

// Handle maps an input event to a viewer operation. It returns false for
// events that did not change what is shown.
func (v *Viewer) Handle(e Event) (bool, error) {
	switch e := e.(type) {
	case PointerRelease:
		w, _ := v.surface.Size()
		if e.X > w/2 {
			return v.Advance(Next)
		}
		return v.Advance(Previous)
	case Key:
		switch strings.ToLower(e.Name) {
		case "right", "arrowright":
			return v.Advance(Next)
		case "left", "arrowleft":
			return v.Advance(Previous)
		}
		return false, nil
	case DoubleClick:
		v.ToggleFullscreen()
		return true, nil
	}
	return false, nil
}
