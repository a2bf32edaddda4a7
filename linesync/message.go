// Package linesync shares tactical map annotation lines between players over
// a websocket relay.
package linesync

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"tacmap/areagrid"
	"tacmap/mapview"
)

// Kind is the type tag of a wire message.
type Kind string

const (
	KindLine     Kind = "line"
	KindClear    Kind = "clear"
	KindSnapshot Kind = "snapshot"
)

var (
	ErrClosed     = errors.New("linesync: connection closed")
	ErrQueueFull  = errors.New("linesync: send queue full")
	ErrBadMessage = errors.New("linesync: bad message")
)

// WireLine is a line as sent over the wire.
type WireLine struct {
	X0    int    `json:"x0"`
	Y0    int    `json:"y0"`
	X1    int    `json:"x1"`
	Y1    int    `json:"y1"`
	Color string `json:"color"`
}

// Message is one websocket text frame.
type Message struct {
	Type  Kind       `json:"type"`
	Line  *WireLine  `json:"line,omitempty"`
	Lines []WireLine `json:"lines,omitempty"`
}

func ToWire(l mapview.Line) WireLine {
	return WireLine{
		X0: l.Start.X, Y0: l.Start.Y,
		X1: l.End.X, Y1: l.End.Y,
		Color: areagrid.FormatColor(l.Color),
	}
}

// Line decodes w, failing on a malformed color.
func (w WireLine) Line() (mapview.Line, error) {
	c, err := areagrid.ParseColor(w.Color)
	if err != nil {
		return mapview.Line{}, err
	}
	return mapview.Line{Start: image.Pt(w.X0, w.Y0), End: image.Pt(w.X1, w.Y1), Color: c}, nil
}

// Decode parses and validates a frame.
func Decode(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	switch msg.Type {
	case KindLine:
		if msg.Line == nil {
			return msg, fmt.Errorf("%w: line message without line", ErrBadMessage)
		}
		if _, err := msg.Line.Line(); err != nil {
			return msg, fmt.Errorf("%w: %v", ErrBadMessage, err)
		}
	case KindSnapshot:
		for _, wl := range msg.Lines {
			if _, err := wl.Line(); err != nil {
				return msg, fmt.Errorf("%w: %v", ErrBadMessage, err)
			}
		}
	case KindClear:
	default:
		return msg, fmt.Errorf("%w: unknown type %q", ErrBadMessage, msg.Type)
	}
	return msg, nil
}

func encode(msg Message) []byte {
	// Message holds only strings and ints so Marshal cannot fail.
	data, _ := json.Marshal(msg)
	return data
}

// Apply performs msg on ctl. It must run on the UI thread.
func Apply(ctl *mapview.Control, msg Message) {
	switch msg.Type {
	case KindLine:
		if msg.Line == nil {
			return
		}
		if l, err := msg.Line.Line(); err == nil {
			ctl.AddLine(l)
		}
	case KindClear:
		ctl.ClearLines()
	case KindSnapshot:
		lines := make([]mapview.Line, 0, len(msg.Lines))
		for _, wl := range msg.Lines {
			if l, err := wl.Line(); err == nil {
				lines = append(lines, l)
			}
		}
		ctl.SetLines(lines)
	}
}
