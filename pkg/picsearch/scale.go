package picsearch

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"k8s.io/klog/v2"
)

// Filter is the resampling mode used when scaling a picture.
type Filter int

const (
	// LinearFilter interpolates between source pixels; used when enlarging.
	LinearFilter Filter = iota
	// AreaFilter averages source pixels; used when shrinking.
	AreaFilter
)

func (f Filter) String() string {
	if f == AreaFilter {
		return "area"
	}
	return "linear"
}

func (f Filter) resample() transform.ResampleFilter {
	if f == AreaFilter {
		return transform.Box
	}
	return transform.Linear
}

// FitScale maps a source size into a box, preserving the aspect ratio.
// The longer box dimension is matched exactly, so the other output
// dimension may exceed the box when aspect ratios differ widely.
func FitScale(sw, sh, bw, bh int) (int, int, Filter) {
	if sw <= 0 || sh <= 0 || bw <= 0 || bh <= 0 {
		return 0, 0, LinearFilter
	}

	k := float64(sw) / float64(sh)
	var w, h int
	if bw > bh {
		h = bh
		w = int(math.Round(float64(bh) * k))
	} else {
		w = bw
		h = int(math.Round(float64(bw) / k))
	}

	if w*h < sw*sh {
		return w, h, AreaFilter
	}
	return w, h, LinearFilter
}

// Scale resizes img to fit a bw x bh box using FitScale.
func Scale(img image.Image, bw, bh int) (image.Image, error) {
	b := img.Bounds()
	w, h, f := FitScale(b.Dx(), b.Dy(), bw, bh)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("cannot fit %dx%d into %dx%d", b.Dx(), b.Dy(), bw, bh)
	}

	klog.V(2).Infof("scaling %dx%d -> %dx%d (%s)", b.Dx(), b.Dy(), w, h, f)
	return transform.Resize(img, w, h, f.resample()), nil
}
