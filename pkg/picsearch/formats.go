package picsearch

import (
	"fmt"
	"strings"
)

var (
	jpegExts     = []string{".jpeg", ".jpg", ".jpe", ".jp2"}
	pngExts      = []string{".png"}
	bmpExts      = []string{".bmp", ".dib"}
	webpExts     = []string{".webp"}
	extendedExts = []string{".gif", ".tif", ".tiff"}
)

// Formats selects which picture formats a search matches.
type Formats struct {
	JPEG     bool `toml:"jpeg"`
	PNG      bool `toml:"png"`
	BMP      bool `toml:"bmp"`
	WebP     bool `toml:"webp"`
	All      bool `toml:"all"`
	Extended bool `toml:"extended"`
}

// DefaultFormats returns JPEG and PNG.
func DefaultFormats() Formats {
	return Formats{JPEG: true, PNG: true}
}

// ParseFormats builds Formats from a comma-separated list such as "jpeg,png".
func ParseFormats(s string) (Formats, error) {
	f := Formats{}
	for _, name := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
		case "jpeg", "jpg":
			f.JPEG = true
		case "png":
			f.PNG = true
		case "bmp":
			f.BMP = true
		case "webp":
			f.WebP = true
		case "all":
			f.All = true
		case "extended":
			f.Extended = true
		default:
			return Formats{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
		}
	}
	return f, nil
}

// Extensions returns the file suffixes matched by f, in a stable order.
func (f Formats) Extensions() []string {
	exts := []string{}
	if f.All || f.JPEG {
		exts = append(exts, jpegExts...)
	}
	if f.All || f.PNG {
		exts = append(exts, pngExts...)
	}
	if f.All || f.BMP {
		exts = append(exts, bmpExts...)
	}
	if f.All || f.WebP {
		exts = append(exts, webpExts...)
	}
	if f.Extended {
		exts = append(exts, extendedExts...)
	}
	return exts
}

// Match reports whether name ends with one of exts. Matching is case-sensitive.
func Match(name string, exts []string) bool {
	for _, e := range exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}
