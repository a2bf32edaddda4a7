package rsi

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"runtime"
	"sync"

	"tacmap/internal/logging"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/remeh/sizedwaitgroup"
)

// Cache lazily loads sheets from an fs.FS and keeps one ebiten image per
// specifier. Lookups that fail are remembered so each miss is logged once.
type Cache struct {
	fsys fs.FS

	mu     sync.Mutex
	sheets map[string]*Sheet
	images map[Specifier]*ebiten.Image
	missed map[Specifier]struct{}
}

func NewCache(fsys fs.FS) *Cache {
	return &Cache{
		fsys:   fsys,
		sheets: make(map[string]*Sheet),
		images: make(map[Specifier]*ebiten.Image),
		missed: make(map[Specifier]struct{}),
	}
}

// Sheet returns the decoded sheet for path, loading it on first use.
func (c *Cache) Sheet(path string) (*Sheet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sheetLocked(path)
}

func (c *Cache) sheetLocked(path string) (*Sheet, error) {
	if sh, ok := c.sheets[path]; ok {
		return sh, nil
	}
	sh, err := Load(c.fsys, path)
	if err != nil {
		return nil, err
	}
	c.sheets[path] = sh
	return sh, nil
}

// Preload decodes the sheets at paths in parallel so the first draw does not
// stall on PNG decoding. Sheets already cached are skipped.
func (c *Cache) Preload(paths ...string) error {
	var (
		errMu sync.Mutex
		errs  []error
	)
	wg := sizedwaitgroup.New(runtime.NumCPU())
	for _, path := range paths {
		c.mu.Lock()
		_, ok := c.sheets[path]
		c.mu.Unlock()
		if ok {
			continue
		}
		wg.Add()
		go func(path string) {
			defer wg.Done()
			sh, err := Load(c.fsys, path)
			if err != nil {
				errMu.Lock()
				errs = append(errs, err)
				errMu.Unlock()
				return
			}
			c.mu.Lock()
			if _, ok := c.sheets[path]; !ok {
				c.sheets[path] = sh
			}
			c.mu.Unlock()
		}(path)
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Image returns the first frame of spec as a standard image.
func (c *Cache) Image(spec Specifier) (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sh, err := c.sheetLocked(spec.Path)
	if err != nil {
		return nil, err
	}
	img, ok := sh.Frame0(spec.State)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoState, spec)
	}
	return img, nil
}

// Frame0 returns the ebiten image for spec or nil when it cannot be found.
func (c *Cache) Frame0(spec Specifier) *ebiten.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.images[spec]; ok {
		return img
	}
	if _, ok := c.missed[spec]; ok {
		return nil
	}
	sh, err := c.sheetLocked(spec.Path)
	if err != nil {
		c.missLocked(spec, err)
		return nil
	}
	src, ok := sh.Frame0(spec.State)
	if !ok {
		c.missLocked(spec, ErrNoState)
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	c.images[spec] = img
	return img
}

func (c *Cache) missLocked(spec Specifier, err error) {
	c.missed[spec] = struct{}{}
	if errors.Is(err, ErrNoState) {
		logging.Warn("icon %s: no such state", spec)
		return
	}
	logging.Warn("icon %s: %v", spec, err)
}
