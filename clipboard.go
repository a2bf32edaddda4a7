package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"tacmap/internal/logging"
	"tacmap/linesync"
	"tacmap/mapview"

	clipboard "golang.design/x/clipboard"
)

var errNoLines = errors.New("clipboard holds no lines")

// clipboardReady is set once clipboard.Init succeeds.
var clipboardReady bool

func initClipboard() {
	if err := clipboard.Init(); err != nil {
		logging.Warn("clipboard init: %v", err)
		return
	}
	clipboardReady = true
}

// encodeLines renders lines as the JSON array shared with the relay.
func encodeLines(lines []mapview.Line) ([]byte, error) {
	wire := make([]linesync.WireLine, 0, len(lines))
	for _, l := range lines {
		wire = append(wire, linesync.ToWire(l))
	}
	return json.MarshalIndent(wire, "", "  ")
}

func decodeLines(data []byte) ([]mapview.Line, error) {
	var wire []linesync.WireLine
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parse lines: %w", err)
	}
	if len(wire) == 0 {
		return nil, errNoLines
	}
	lines := make([]mapview.Line, 0, len(wire))
	for i, wl := range wire {
		l, err := wl.Line()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func copyLines(ctl *mapview.Control) error {
	if !clipboardReady {
		return errors.New("clipboard unavailable")
	}
	data, err := encodeLines(ctl.Lines)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

// pasteLines appends the clipboard's lines as if drawn locally, so they are
// also shared with the relay.
func pasteLines(ctl *mapview.Control, publish func(mapview.Line)) (int, error) {
	if !clipboardReady {
		return 0, errors.New("clipboard unavailable")
	}
	lines, err := decodeLines(clipboard.Read(clipboard.FmtText))
	if err != nil {
		return 0, err
	}
	for _, l := range lines {
		ctl.AddLine(l)
		if publish != nil {
			publish(l)
		}
	}
	return len(lines), nil
}
