package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tacmap/mapexport"
	"tacmap/mapview"
)

// takeScreenshot writes the map to the Screenshots folder and returns the
// file name.
func takeScreenshot(ctl *mapview.Control, icons mapexport.IconImages) (string, error) {
	dir := filepath.Join(dataDirPath, "Screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: create %v: %w", dir, err)
	}
	ts := time.Now().Format("2006-01-02-15-04-05")
	fn := filepath.Join(dir, fmt.Sprintf("tacmap__%s.png", ts))
	if err := exportMap(fn, ctl, icons); err != nil {
		return "", err
	}
	return filepath.Base(fn), nil
}

func exportMap(path string, ctl *mapview.Control, icons mapexport.IconImages) error {
	scale := int(mapview.UIScale() + 0.5)
	return mapexport.SavePNG(path, ctl, mapexport.Options{Scale: scale, Icons: icons})
}
