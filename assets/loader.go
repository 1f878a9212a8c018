package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"log"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

var ErrNotLoaded = errors.New("assets: not loaded")

// Loader decodes sprite sheets from fsys in the background.
type Loader struct {
	fsys    fs.FS
	workers int
}

func NewLoader(fsys fs.FS, workers int) *Loader {
	if workers <= 0 {
		workers = 4
	}
	return &Loader{fsys: fsys, workers: workers}
}

// Folder is a set of images loading asynchronously. Poll Loaded each frame;
// lookups before that report ErrNotLoaded.
type Folder struct {
	dir  string
	done chan struct{}

	mu     sync.RWMutex
	images map[string]image.Image
	err    error
}

// LoadFolder starts decoding every PNG under dir and returns immediately.
func (l *Loader) LoadFolder(ctx context.Context, dir string) *Folder {
	f := &Folder{
		dir:    cleanAssetPath(dir),
		done:   make(chan struct{}),
		images: make(map[string]image.Image),
	}
	go f.load(ctx, l.fsys, l.workers)
	return f
}

func (f *Folder) load(ctx context.Context, fsys fs.FS, workers int) {
	defer close(f.done)

	var paths []string
	err := fs.WalkDir(fsys, f.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(p), ".png") {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		f.setErr(fmt.Errorf("assets: walk %s: %w", f.dir, err))
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decode(fsys, p)
			if err != nil {
				return err
			}
			f.mu.Lock()
			f.images[p] = img
			f.mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		f.setErr(err)
		return
	}
	log.Printf("assets: loaded %d images from %s", len(paths), f.dir)
}

func decode(fsys fs.FS, p string) (image.Image, error) {
	file, err := fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", p, err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", p, err)
	}
	return img, nil
}

func (f *Folder) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *Folder) Dir() string {
	return f.dir
}

// Loaded reports whether every image decoded without error. It never blocks.
func (f *Folder) Loaded() bool {
	select {
	case <-f.done:
		return f.Err() == nil
	default:
		return false
	}
}

// Done is closed once loading finishes, successfully or not.
func (f *Folder) Done() <-chan struct{} {
	return f.done
}

func (f *Folder) Err() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.err
}

// Wait blocks until loading finishes or ctx is done.
func (f *Folder) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Folder) Image(p string) (image.Image, error) {
	if !f.Loaded() {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, f.dir)
	}
	f.mu.RLock()
	img, ok := f.images[cleanAssetPath(p)]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("assets: %s: %w", p, fs.ErrNotExist)
	}
	return img, nil
}

func (f *Folder) Bounds(p string) (image.Rectangle, bool) {
	img, err := f.Image(p)
	if err != nil {
		return image.Rectangle{}, false
	}
	return img.Bounds(), true
}

// Paths lists the decoded images, sorted.
func (f *Folder) Paths() []string {
	if !f.Loaded() {
		return nil
	}
	f.mu.RLock()
	out := make([]string, 0, len(f.images))
	for p := range f.images {
		out = append(out, p)
	}
	f.mu.RUnlock()
	sort.Strings(out)
	return out
}

func cleanAssetPath(p string) string {
	if p == "" {
		return "."
	}
	s := path.Clean(filepath.ToSlash(p))
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return strings.TrimPrefix(s, "/")
}
