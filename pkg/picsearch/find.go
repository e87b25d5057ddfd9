package picsearch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// Result is the outcome of a search.
type Result struct {
	// Paths is the picture set in discovery order.
	Paths   []string
	Elapsed time.Duration
	// Stopped is set when the search was cancelled before it finished.
	Stopped bool
}

// Find walks c.Dir and returns every file matching c.Formats.
// Cancelling ctx stops the walk and returns what was found so far.
func Find(ctx context.Context, c *Config) (*Result, error) {
	start := time.Now()
	root, err := filepath.Abs(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("abs: %w", err)
	}

	st, err := os.Stat(root)
	if err != nil || !st.IsDir() {
		return nil, fmt.Errorf("%s: %w", c.Dir, ErrNotDir)
	}

	exts := c.Formats.Extensions()
	klog.Infof("searching %s for %s", root, strings.Join(exts, " "))

	found := []string{}
	err = godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if c.SkipHidden && path != root && strings.HasPrefix(de.Name(), ".") {
				return godirwalk.SkipThis
			}

			if de.IsDir() {
				return nil
			}

			if Match(de.Name(), exts) {
				klog.V(1).Infof("found %s", path)
				found = append(found, path)
			}
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			if ctx.Err() != nil {
				return godirwalk.Halt
			}
			klog.Warningf("skipping %s: %v", path, err)
			return godirwalk.SkipNode
		},
	})

	r := &Result{Paths: found, Elapsed: time.Since(start)}
	if ctx.Err() != nil {
		r.Stopped = true
		klog.Infof("search stopped after %s with %d pictures", r.Elapsed, len(found))
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}

	klog.Infof("found %d pictures in %s", len(found), r.Elapsed)
	return r, nil
}
