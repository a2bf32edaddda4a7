package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDataDir(t *testing.T) {
	orig := dataDirPath
	defer func() { dataDirPath = orig }()
	dataDirPath = filepath.Join(t.TempDir(), "nested", "data")

	if err := ensureDataDir(); err != nil {
		t.Fatalf("ensureDataDir: %v", err)
	}
	if fi, err := os.Stat(dataDirPath); err != nil || !fi.IsDir() {
		t.Fatalf("data dir not created: %v", err)
	}
}
