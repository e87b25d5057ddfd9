// picsearch finds pictures under a directory and browses them.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/barasher/go-exiftool"
	"github.com/fsnotify/fsnotify"
	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"

	"github.com/tstromberg/picsearch/pkg/picsearch"
	"github.com/tstromberg/picsearch/pkg/serve"
)

var (
	dirFlag    = flag.String("dir", "", "directory to search")
	configPath = flag.String("config", "", "path to TOML configuration file")
	formats    = flag.String("formats", "", "comma-separated formats: jpeg,png,bmp,webp,all,extended")
	skipHidden = flag.Bool("skip-hidden", false, "skip files and directories starting with a dot")
	list       = flag.Bool("list", false, "print found pictures")
	info       = flag.Bool("info", false, "print exif metadata for found pictures (requires exiftool)")
	snapshot   = flag.String("snapshot", "", "write the first picture, scaled to --width x --height, to this path")
	width      = flag.Int("width", 0, "display width")
	height     = flag.Int("height", 0, "display height")
	exportDir  = flag.String("export", "", "directory pictures are exported to")
	listen     = flag.Bool("listen", false, "serve the viewer via HTTP")
	addr       = flag.String("addr", "localhost:12800", "host:port to bind to in listen mode")
	watchFlag  = flag.Bool("watch", false, "watch the directory for changes and search again")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	c, err := picsearch.LoadConfig(*configPath)
	if err != nil {
		klog.Exitf("config: %v", err)
	}
	if err := applyFlags(c); err != nil {
		klog.Exitf("%v", err)
	}

	if c.Dir == "" {
		klog.Exitf("--dir is a required flag")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := picsearch.Find(ctx, c)
	if err != nil {
		klog.Exitf("search failed: %v", err)
	}
	fmt.Printf("%d pictures found in %s\n", len(res.Paths), res.Elapsed)
	if res.Stopped {
		return
	}

	if *list {
		for _, p := range res.Paths {
			fmt.Println(p)
		}
	}

	if *info {
		printInfo(res.Paths)
	}

	if *snapshot != "" {
		if err := writeSnapshot(c, res.Paths, *snapshot); err != nil {
			klog.Exitf("snapshot: %v", err)
		}
	}

	if !*listen {
		return
	}

	s := serve.New(c, nil)
	if !s.Rescan(res.Paths) {
		klog.Warningf("nothing to show in %s", c.Dir)
	}

	if *watchFlag {
		dw, err := newDirWatcher(c, s.Rescan)
		if err != nil {
			klog.Exitf("watch: %v", err)
		}
		defer dw.Close()
		dw.addFound(res.Paths)
		go func() {
			if err := dw.run(ctx); err != nil {
				klog.Errorf("watch: %v", err)
			}
		}()
	}

	klog.Infof("Listening on %s...", *addr)
	hs := &http.Server{Addr: *addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		hs.Close()
	}()
	if err := hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		klog.Exitf("listen failed: %v", err)
	}
}

// applyFlags overrides configuration values with flags that were set.
func applyFlags(c *picsearch.Config) error {
	if *dirFlag != "" {
		c.Dir = *dirFlag
	}
	if *formats != "" {
		f, err := picsearch.ParseFormats(*formats)
		if err != nil {
			return fmt.Errorf("--formats: %w", err)
		}
		c.Formats = f
	}
	if *skipHidden {
		c.SkipHidden = true
	}
	if *width > 0 {
		c.Width = *width
	}
	if *height > 0 {
		c.Height = *height
	}
	if *exportDir != "" {
		c.ExportDir = *exportDir
	}
	return nil
}

func printInfo(paths []string) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		klog.Errorf("exiftool failed: %v", err)
		return
	}
	defer et.Close()

	for _, p := range paths {
		i, err := picsearch.ReadInfo(et, p)
		if err != nil {
			klog.Warningf("info: %v", err)
			continue
		}
		fmt.Printf("%s\t%dx%d\t%s %s\t%s\n", p, i.Width, i.Height, i.Make, i.Model, i.Taken.Format("2006-01-02 15:04"))
	}
}

// fileSurface records what a viewer would display.
type fileSurface struct {
	w, h  int
	img   image.Image
	title string
}

func (f *fileSurface) Size() (int, int)      { return f.w, f.h }
func (f *fileSurface) Show(img image.Image)  { f.img = img }
func (f *fileSurface) SetTitle(title string) { f.title = title }
func (f *fileSurface) SetFullscreen(bool)    {}

func writeSnapshot(c *picsearch.Config, paths []string, out string) error {
	fs := &fileSurface{w: c.Width, h: c.Height}
	v := picsearch.NewViewer(fs, nil)
	v.LoadSet(paths)

	ok, err := v.Render()
	if !ok {
		return fmt.Errorf("nothing to show")
	}
	if err != nil {
		return err
	}

	klog.Infof("writing %s (%v) to %s", fs.title, fs.img.Bounds(), out)
	return imgio.Save(out, fs.img, imgio.JPEGEncoder(90))
}

// dirWatcher searches a root again whenever a watched directory changes.
type dirWatcher struct {
	c       *picsearch.Config
	w       *fsnotify.Watcher
	rescan  func(paths []string) bool
	watched map[string]bool
}

func newDirWatcher(c *picsearch.Config, rescan func([]string) bool) (*dirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	return &dirWatcher{c: c, w: w, rescan: rescan, watched: map[string]bool{}}, nil
}

func (dw *dirWatcher) Close() error {
	return dw.w.Close()
}

// addFound watches the root and every directory holding a found picture.
func (dw *dirWatcher) addFound(found []string) {
	root, err := filepath.Abs(dw.c.Dir)
	if err != nil {
		root = dw.c.Dir
	}
	dirs := []string{root}
	for _, p := range found {
		dirs = append(dirs, filepath.Dir(p))
	}
	slices.Sort(dirs)
	dirs = slices.Compact(dirs)
	for _, d := range dirs {
		dw.add(d)
	}
}

// addTree watches a newly created directory and everything below it.
func (dw *dirWatcher) addTree(root string) {
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				dw.add(path)
			}
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			klog.Warningf("skipping %s: %v", path, err)
			return godirwalk.SkipNode
		},
	})
	if err != nil {
		klog.Warningf("walk %s: %v", root, err)
	}
}

func (dw *dirWatcher) add(dir string) {
	if dw.watched[dir] {
		return
	}
	if err := dw.w.Add(dir); err != nil {
		klog.Warningf("unable to watch %s: %v", dir, err)
		return
	}
	klog.V(1).Infof("watching %s", dir)
	dw.watched[dir] = true
}

// run searches again on every change until ctx is done.
func (dw *dirWatcher) run(ctx context.Context) error {
	klog.Infof("watching %d dirs ...", len(dw.watched))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-dw.w.Events:
			if !ok {
				return nil
			}
			klog.V(1).Infof("event: %v", event)
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
					dw.addTree(event.Name)
				}
			}

			res, err := picsearch.Find(ctx, dw.c)
			if err != nil {
				klog.Errorf("search failed: %v", err)
				continue
			}
			if res.Stopped {
				return nil
			}
			dw.addFound(res.Paths)
			dw.rescan(res.Paths)
		case err, ok := <-dw.w.Errors:
			if !ok {
				return nil
			}
			klog.Warningf("watch error: %v", err)
		}
	}
}
