package main

import (
	"os"
	"path/filepath"
	"testing"

	"tacmap/mapview"
)

func withDataDir(t *testing.T) string {
	t.Helper()
	orig, origGS := dataDirPath, gs
	dir := t.TempDir()
	dataDirPath = dir
	t.Cleanup(func() {
		dataDirPath = orig
		gs = origGS
		settingsDirty = false
	})
	return dir
}

func TestLoadSettingsMissingUsesDefaults(t *testing.T) {
	withDataDir(t)
	gs.LineLimit = 3
	if loadSettings() {
		t.Fatalf("loadSettings reported success without a file")
	}
	if gs.LineLimit != mapview.DefaultLineLimit || settingsLoaded {
		t.Fatalf("defaults not restored: %+v", gs)
	}
}

func TestSaveLoadSettings(t *testing.T) {
	withDataDir(t)
	gs = gsdef
	gs.LineLimit = 12
	gs.DrawColor = "#E03030FF"
	gs.RelayURL = "ws://example.invalid/ws"
	saveSettings()

	gs = gsdef
	if !loadSettings() {
		t.Fatalf("loadSettings failed")
	}
	if gs.LineLimit != 12 || gs.DrawColor != "#E03030FF" || gs.RelayURL != "ws://example.invalid/ws" {
		t.Fatalf("round trip lost values: %+v", gs)
	}
}

func TestLoadSettingsVersionMismatch(t *testing.T) {
	dir := withDataDir(t)
	data := []byte(`{"Version": 999, "LineLimit": 5}`)
	if err := os.WriteFile(filepath.Join(dir, settingsFile), data, 0o644); err != nil {
		t.Fatal(err)
	}
	if loadSettings() {
		t.Fatalf("mismatched version accepted")
	}
	if gs.LineLimit != gsdef.LineLimit {
		t.Fatalf("LineLimit = %d, want default", gs.LineLimit)
	}
}

func TestLoadSettingsClampsBadValues(t *testing.T) {
	dir := withDataDir(t)
	data := []byte(`{"Version": 1, "UIScale": -2, "DrawColor": "nope", "WindowWidth": 10, "LineLimit": -1}`)
	if err := os.WriteFile(filepath.Join(dir, settingsFile), data, 0o644); err != nil {
		t.Fatal(err)
	}
	if !loadSettings() {
		t.Fatalf("loadSettings failed")
	}
	if gs.UIScale != gsdef.UIScale || gs.DrawColor != gsdef.DrawColor || gs.WindowWidth != initialWindowW {
		t.Fatalf("bad values kept: %+v", gs)
	}
	if gs.LineLimit != -1 {
		t.Fatalf("unbounded line limit not kept")
	}
}

func TestMaybeSaveSettingsOnlyWhenDirty(t *testing.T) {
	dir := withDataDir(t)
	gs = gsdef
	settingsDirty = false
	maybeSaveSettings()
	if _, err := os.Stat(filepath.Join(dir, settingsFile)); !os.IsNotExist(err) {
		t.Fatalf("clean settings were written")
	}
}
