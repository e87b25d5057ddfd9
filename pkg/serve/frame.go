package serve

import "image"

// frame is an in-memory display surface.
type frame struct {
	width      int
	height     int
	img        image.Image
	title      string
	fullscreen bool
}

func (f *frame) Size() (int, int)      { return f.width, f.height }
func (f *frame) Show(img image.Image)  { f.img = img }
func (f *frame) SetTitle(title string) { f.title = title }
func (f *frame) SetFullscreen(on bool) { f.fullscreen = on }
