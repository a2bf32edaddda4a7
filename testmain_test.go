package main

import (
	"io"
	"os"
	"testing"

	"tacmap/internal/logging"
)

// TestMain points dataDirPath at a scratch directory so tests never touch a
// real settings file.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tacmap-test")
	if err != nil {
		panic(err)
	}
	dataDirPath = dir
	logging.Setup("", false)
	logging.SetOutput(io.Discard)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}
