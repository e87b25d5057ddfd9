package picsearch

import (
	"fmt"
	"time"

	"github.com/barasher/go-exiftool"
	"k8s.io/klog/v2"
)

var exifDate = "2006:01:02 15:04:05"

// Info is the metadata shown for a picture.
type Info struct {
	Path   string
	Make   string
	Model  string
	Width  int64
	Height int64
	// Taken is zero when the picture carries no original timestamp.
	Taken time.Time
}

// ReadInfo extracts picture metadata with exiftool. Dimensions are
// required; camera and date fields are filled in when present.
func ReadInfo(et *exiftool.Exiftool, path string) (Info, error) {
	i := Info{Path: path}
	fis := et.ExtractMetadata(path)
	if len(fis) == 0 {
		return i, fmt.Errorf("no metadata for %q", path)
	}
	fi := fis[0]
	if fi.Err != nil {
		return i, fmt.Errorf("extract %q: %w", path, fi.Err)
	}

	var err error
	if i.Width, err = fi.GetInt("ImageWidth"); err != nil {
		return i, fmt.Errorf("get ImageWidth: %w", err)
	}
	if i.Height, err = fi.GetInt("ImageHeight"); err != nil {
		return i, fmt.Errorf("get ImageHeight: %w", err)
	}

	optional := map[string]*string{"Make": &i.Make, "Model": &i.Model}
	for k, dst := range optional {
		if v, err := fi.GetString(k); err == nil {
			*dst = v
		}
	}

	ds, err := fi.GetString("DateTimeOriginal")
	if err != nil {
		klog.V(2).Infof("%s has no DateTimeOriginal", path)
		return i, nil
	}
	if i.Taken, err = time.Parse(exifDate, ds); err != nil {
		return i, fmt.Errorf("parse time %q: %w", ds, err)
	}
	return i, nil
}
