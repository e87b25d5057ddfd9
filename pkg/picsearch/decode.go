package picsearch

import (
	"fmt"
	"image"

	// Decoders available to Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/anthonynsimon/bild/imgio"
	"k8s.io/klog/v2"
)

// Decoder turns a picture path into a raster.
type Decoder func(path string) (image.Image, error)

// Decode reads and decodes the picture at path.
func Decode(path string) (image.Image, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imgio.Open: %w", err)
	}
	klog.V(1).Infof("decoded %s: %v", path, img.Bounds())
	return img, nil
}
