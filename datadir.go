package main

import (
	"os"
	"path/filepath"
	"runtime"
)

// dataDirPath holds settings, logs and screenshots. On macOS it lives in the
// user's Application Support directory; elsewhere it sits next to the
// executable so the demo stays self-contained.
var dataDirPath = func() string {
	if runtime.GOOS == "darwin" {
		if dir, err := os.UserConfigDir(); err == nil {
			dir = filepath.Join(dir, "tacmap")
			_ = os.MkdirAll(dir, 0o755)
			return dir
		}
	}
	if exe, err := os.Executable(); err == nil {
		if dir, err := filepath.Abs(filepath.Dir(exe)); err == nil {
			return filepath.Join(dir, "data")
		}
	}
	return "data"
}()

func ensureDataDir() error {
	return os.MkdirAll(dataDirPath, 0o755)
}
