// Package rsi loads icon sheets stored as a directory holding meta.json and
// one PNG per named state.
package rsi

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"path"
)

var (
	ErrBadMeta = errors.New("bad rsi meta")
	ErrNoState = errors.New("rsi state not found")
)

// Specifier names one state of one sheet, e.g. {"map_blips.rsi", "background"}.
type Specifier struct {
	Path  string `json:"path"`
	State string `json:"state"`
}

func (s Specifier) String() string { return s.Path + ":" + s.State }

type metaSize struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type metaState struct {
	Name       string `json:"name"`
	Directions int    `json:"directions,omitempty"`
}

type meta struct {
	Version int         `json:"version"`
	Size    metaSize    `json:"size"`
	States  []metaState `json:"states"`
}

// Sheet is a decoded icon sheet. Each state image may hold several frames
// laid out in Size cells; only the first is used.
type Sheet struct {
	Path   string
	Size   image.Point
	states map[string]image.Image
}

// Load decodes the sheet at dir within fsys.
func Load(fsys fs.FS, dir string) (*Sheet, error) {
	data, err := fs.ReadFile(fsys, path.Join(dir, "meta.json"))
	if err != nil {
		return nil, fmt.Errorf("read %s meta: %w", dir, err)
	}
	var m meta
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadMeta, dir, err)
	}
	if m.Size.X <= 0 || m.Size.Y <= 0 {
		return nil, fmt.Errorf("%w: %s: size %dx%d", ErrBadMeta, dir, m.Size.X, m.Size.Y)
	}
	sh := &Sheet{
		Path:   dir,
		Size:   image.Pt(m.Size.X, m.Size.Y),
		states: make(map[string]image.Image, len(m.States)),
	}
	for _, st := range m.States {
		if st.Name == "" {
			return nil, fmt.Errorf("%w: %s: unnamed state", ErrBadMeta, dir)
		}
		f, err := fsys.Open(path.Join(dir, st.Name+".png"))
		if err != nil {
			return nil, fmt.Errorf("open %s state %q: %w", dir, st.Name, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s state %q: %w", dir, st.Name, err)
		}
		sh.states[st.Name] = img
	}
	return sh, nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Frame0 returns the first frame of state: the top-left Size cell of its
// image, clipped to the image bounds.
func (s *Sheet) Frame0(state string) (image.Image, bool) {
	img, ok := s.states[state]
	if !ok {
		return nil, false
	}
	b := img.Bounds()
	cell := image.Rectangle{Min: b.Min, Max: b.Min.Add(s.Size)}.Intersect(b)
	if cell.Empty() {
		return nil, false
	}
	if cell == b {
		return img, true
	}
	si, ok := img.(subImager)
	if !ok {
		return img, true
	}
	return si.SubImage(cell), true
}
