package picsearch

import (
	"fmt"
	"image"

	"k8s.io/klog/v2"
)

// Direction selects which way Advance moves through the picture set.
type Direction int

const (
	Next Direction = iota
	Previous
)

// Surface is where a Viewer draws. It is owned by the hosting window.
type Surface interface {
	// Size returns the current display size.
	Size() (width, height int)
	// Show replaces the displayed raster. A nil image clears the surface.
	Show(img image.Image)
	SetTitle(title string)
	SetFullscreen(on bool)
}

// Viewer shows one picture of a set at a time, scaled to its surface.
// It is not safe for concurrent use.
type Viewer struct {
	surface Surface
	decode  Decoder

	pictures []string
	index    int

	// cached is the raw raster for pictures[index]; decoded is set once a
	// decode was attempted for that index, and decodeErr holds its failure.
	cached    image.Image
	decoded   bool
	decodeErr error

	fullscreen bool
}

// NewViewer returns a viewer drawing onto s. A nil decoder uses Decode.
func NewViewer(s Surface, d Decoder) *Viewer {
	if d == nil {
		d = Decode
	}
	return &Viewer{surface: s, decode: d}
}

// LoadSet replaces the picture set and rewinds to the first picture.
// Nothing is decoded until the next Render.
func (v *Viewer) LoadSet(paths []string) {
	v.pictures = append([]string(nil), paths...)
	v.index = 0
	v.invalidate()
	klog.V(1).Infof("loaded %d pictures", len(v.pictures))
}

// Len returns the number of pictures in the set.
func (v *Viewer) Len() int { return len(v.pictures) }

// Index returns the position of the current picture.
func (v *Viewer) Index() int { return v.index }

// Current returns the path of the current picture.
func (v *Viewer) Current() (string, bool) {
	if len(v.pictures) == 0 {
		return "", false
	}
	return v.pictures[v.index], true
}

// Fullscreen reports the presentation mode.
func (v *Viewer) Fullscreen() bool { return v.fullscreen }

// Title returns the position label for the current picture.
func (v *Viewer) Title() string {
	return fmt.Sprintf("Picture-%d", v.index+1)
}

// Render draws the current picture. It returns false when there is nothing
// to show. A picture that fails to decode still counts as shown: the
// surface is cleared, the title updated and the decode error returned on
// every render until the index changes.
func (v *Viewer) Render() (bool, error) {
	if len(v.pictures) == 0 {
		return false, nil
	}

	if !v.decoded {
		path := v.pictures[v.index]
		img, err := v.decode(path)
		if err != nil {
			klog.Warningf("unable to decode %s: %v", path, err)
			v.decodeErr = fmt.Errorf("decode %s: %w", path, err)
			img = nil
		}
		v.cached = img
		v.decoded = true
	}

	serr := v.draw()
	v.surface.SetTitle(v.Title())
	if v.decodeErr != nil {
		return true, v.decodeErr
	}
	return true, serr
}

// Advance moves to the next or previous picture, wrapping at either end,
// and renders it. It returns false when the set is empty.
func (v *Viewer) Advance(d Direction) (bool, error) {
	n := len(v.pictures)
	if n == 0 {
		return false, nil
	}

	switch d {
	case Next:
		v.index = (v.index + 1) % n
	case Previous:
		v.index = (v.index - 1 + n) % n
	default:
		return false, fmt.Errorf("unknown direction %d", d)
	}

	v.invalidate()
	return v.Render()
}

// Resized rescales the cached picture to the surface's new size without
// decoding it again. It does nothing if no picture has been decoded.
func (v *Viewer) Resized() error {
	if v.cached == nil {
		return nil
	}
	return v.draw()
}

// ToggleFullscreen switches between fullscreen and normal display.
func (v *Viewer) ToggleFullscreen() {
	v.fullscreen = !v.fullscreen
	v.surface.SetFullscreen(v.fullscreen)
}

func (v *Viewer) invalidate() {
	v.cached = nil
	v.decoded = false
	v.decodeErr = nil
}

func (v *Viewer) draw() error {
	if v.cached == nil {
		v.surface.Show(nil)
		return nil
	}

	w, h := v.surface.Size()
	img, err := Scale(v.cached, w, h)
	if err != nil {
		v.surface.Show(nil)
		return fmt.Errorf("scale: %w", err)
	}
	v.surface.Show(img)
	return nil
}
