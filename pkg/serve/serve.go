// Package serve presents a picture viewer over HTTP.
package serve

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"k8s.io/klog/v2"

	"github.com/tstromberg/picsearch/pkg/picsearch"
)

var page = `<!DOCTYPE html>
<html><head><title>picsearch</title></head>
<body style="margin:0;background:#111">
<img id="p" src="/picture.jpg" style="display:block;margin:auto">
<script>
async function post(u) { await fetch(u, {method: "POST"}); refresh(); }
async function refresh() {
  const s = await (await fetch("/state")).json();
  document.title = s.title || "picsearch";
  document.getElementById("p").src = "/picture.jpg?i=" + s.index + "&t=" + Date.now();
}
function resize() { post("/resize?w=" + innerWidth + "&h=" + innerHeight); }
document.addEventListener("click", e => post("/click?x=" + e.clientX));
document.addEventListener("dblclick", () => post("/dblclick"));
document.addEventListener("keydown", e => post("/key?name=" + e.key));
window.addEventListener("resize", resize);
resize();
</script>
</body></html>
`

// State is the viewer state reported to clients.
type State struct {
	Title      string `json:"title"`
	Index      int    `json:"index"`
	Count      int    `json:"count"`
	Fullscreen bool   `json:"fullscreen"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Error      string `json:"error,omitempty"`
}

// Server hosts a picture viewer. All viewer access is serialized.
type Server struct {
	c *picsearch.Config

	mu      sync.Mutex
	frame   *frame
	v       *picsearch.Viewer
	lastErr error
}

// New creates a new server. A nil decoder uses picsearch.Decode.
func New(c *picsearch.Config, d picsearch.Decoder) *Server {
	f := &frame{width: c.Width, height: c.Height}
	return &Server{
		c:     c,
		frame: f,
		v:     picsearch.NewViewer(f, d),
	}
}

// Handler returns the HTTP routes for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.IndexHandler())
	mux.HandleFunc("GET /picture.jpg", s.PictureHandler())
	mux.HandleFunc("GET /state", s.StateHandler())
	mux.HandleFunc("POST /search", s.SearchHandler())
	mux.HandleFunc("POST /next", s.eventHandler(func(*http.Request) (picsearch.Event, error) {
		return picsearch.Key{Name: "right"}, nil
	}))
	mux.HandleFunc("POST /prev", s.eventHandler(func(*http.Request) (picsearch.Event, error) {
		return picsearch.Key{Name: "left"}, nil
	}))
	mux.HandleFunc("POST /key", s.eventHandler(func(r *http.Request) (picsearch.Event, error) {
		return picsearch.Key{Name: r.URL.Query().Get("name")}, nil
	}))
	mux.HandleFunc("POST /click", s.eventHandler(func(r *http.Request) (picsearch.Event, error) {
		x, err := strconv.Atoi(r.URL.Query().Get("x"))
		if err != nil {
			return nil, fmt.Errorf("x: %w", err)
		}
		return picsearch.PointerRelease{X: x}, nil
	}))
	mux.HandleFunc("POST /dblclick", s.eventHandler(func(*http.Request) (picsearch.Event, error) {
		return picsearch.DoubleClick{}, nil
	}))
	mux.HandleFunc("POST /resize", s.ResizeHandler())
	mux.HandleFunc("POST /export", s.ExportHandler())
	return mux
}

// Rescan hands a new picture set to the viewer and shows the first picture.
func (s *Server) Rescan(paths []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.LoadSet(paths)
	ok, err := s.v.Render()
	s.lastErr = err
	if !ok {
		s.frame.Show(nil)
		s.frame.SetTitle("")
	}
	return ok
}

// State returns a snapshot of the viewer.
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Server) state() State {
	st := State{
		Title:      s.frame.title,
		Index:      s.v.Index(),
		Count:      s.v.Len(),
		Fullscreen: s.frame.fullscreen,
		Width:      s.frame.width,
		Height:     s.frame.height,
	}
	if s.lastErr != nil {
		st.Error = s.lastErr.Error()
	}
	return st
}

// IndexHandler serves the viewer page.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}
}

// PictureHandler serves the currently displayed raster as JPEG.
func (s *Server) PictureHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		img := s.frame.img
		s.mu.Unlock()

		if img == nil {
			http.Error(w, "nothing to show", http.StatusNotFound)
			return
		}

		var buf bytes.Buffer
		if err := imgio.JPEGEncoder(90)(&buf, img); err != nil {
			klog.Errorf("encode failed: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(buf.Bytes())
	}
}

// StateHandler serves the viewer state as JSON.
func (s *Server) StateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.writeState(w, s.State())
	}
}

// SearchHandler runs a search and loads the result into the viewer.
func (s *Server) SearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := *s.c
		q := r.URL.Query()
		if d := q.Get("dir"); d != "" {
			c.Dir = d
		}
		if fs := q.Get("formats"); fs != "" {
			f, err := picsearch.ParseFormats(fs)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			c.Formats = f
		}

		res, err := picsearch.Find(r.Context(), &c)
		if err != nil {
			code := http.StatusInternalServerError
			if errors.Is(err, picsearch.ErrNotDir) {
				code = http.StatusBadRequest
			}
			http.Error(w, err.Error(), code)
			return
		}
		if res.Stopped {
			klog.Infof("search of %s cancelled", c.Dir)
			return
		}

		klog.Infof("search of %s found %d pictures in %s", c.Dir, len(res.Paths), res.Elapsed)
		if !s.Rescan(res.Paths) {
			http.Error(w, "nothing to show", http.StatusNotFound)
			return
		}
		s.writeState(w, s.State())
	}
}

// ResizeHandler updates the display size and rescales the current picture.
func (s *Server) ResizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		width, werr := strconv.Atoi(q.Get("w"))
		height, herr := strconv.Atoi(q.Get("h"))
		if werr != nil || herr != nil || width <= 0 || height <= 0 {
			http.Error(w, "w and h must be positive integers", http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		s.frame.width, s.frame.height = width, height
		err := s.v.Resized()
		st := s.state()
		s.mu.Unlock()

		if err != nil {
			klog.Warningf("resize: %v", err)
		}
		s.writeState(w, st)
	}
}

// ExportHandler copies the current picture to a directory.
func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		to := r.URL.Query().Get("to")
		if to == "" {
			to = s.c.ExportDir
		}
		if to == "" {
			http.Error(w, "no export directory", http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		path, ok := s.v.Current()
		s.mu.Unlock()
		if !ok {
			http.Error(w, "nothing to show", http.StatusNotFound)
			return
		}

		dest, err := picsearch.Export(path, to)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fmt.Fprintln(w, dest)
	}
}

func (s *Server) eventHandler(parse func(*http.Request) (picsearch.Event, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := parse(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		if s.v.Len() == 0 {
			s.mu.Unlock()
			http.Error(w, "nothing to show", http.StatusNotFound)
			return
		}
		_, err = s.v.Handle(e)
		s.lastErr = err
		st := s.state()
		s.mu.Unlock()

		s.writeState(w, st)
	}
}

func (s *Server) writeState(w http.ResponseWriter, st State) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		klog.Errorf("encode state: %v", err)
	}
}
