package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"tacmap/areagrid"
	"tacmap/internal/logging"
	"tacmap/mapview"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/time/rate"
)

const SETTINGS_VERSION = 1

const settingsFile = "settings.json"

const (
	initialWindowW = 960
	initialWindowH = 720
	minWindowW     = 320
	minWindowH     = 240
)

var gs settings = gsdef

// settingsLoaded reports whether settings were successfully loaded from disk.
var settingsLoaded bool

// settingsDirty marks unsaved changes; saves are throttled by saveLimiter.
var settingsDirty bool

var saveLimiter = rate.NewLimiter(rate.Every(time.Second), 1)

var gsdef settings = settings{
	Version: SETTINGS_VERSION,

	UIScale:      1.0,
	LineLimit:    mapview.DefaultLineLimit,
	DrawColor:    "#FFFFFFFF",
	WindowWidth:  initialWindowW,
	WindowHeight: initialWindowH,
	TickRate:     4,
}

type settings struct {
	Version int

	UIScale   float32
	LineLimit int
	DrawColor string
	RelayURL  string

	WindowWidth  int
	WindowHeight int

	// TickRate is how many times per second fake blips move.
	TickRate       float64
	PotatoComputer bool
}

// loadSettings reads settings.json, falling back to defaults when the file
// is missing, unreadable or from another version.
func loadSettings() bool {
	path := filepath.Join(dataDirPath, settingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		gs = gsdef
		settingsLoaded = false
		return false
	}

	tmp := gsdef
	if err := json.Unmarshal(data, &tmp); err != nil {
		logging.Warn("parse %s: %v", path, err)
		gs = gsdef
		settingsLoaded = false
		return false
	}

	if tmp.Version != SETTINGS_VERSION {
		gs = gsdef
		settingsLoaded = false
		return false
	}
	gs = tmp
	clampSettings()
	settingsLoaded = true
	return true
}

func clampSettings() {
	if gs.UIScale <= 0 {
		gs.UIScale = gsdef.UIScale
	}
	if gs.WindowWidth < minWindowW {
		gs.WindowWidth = initialWindowW
	}
	if gs.WindowHeight < minWindowH {
		gs.WindowHeight = initialWindowH
	}
	if gs.TickRate <= 0 {
		gs.TickRate = gsdef.TickRate
	}
	if _, err := areagrid.ParseColor(gs.DrawColor); err != nil {
		gs.DrawColor = gsdef.DrawColor
	}
}

// applySettings pushes gs into the map control and the ebiten window.
func applySettings(ctl *mapview.Control) {
	mapview.SetUIScale(gs.UIScale)
	mapview.SetPotatoMode(gs.PotatoComputer)
	if ctl != nil {
		ctl.LineLimit = gs.LineLimit
		ctl.SetLines(ctl.Lines)
		if c, err := areagrid.ParseColor(gs.DrawColor); err == nil {
			ctl.Color = c
		}
	}
	ebiten.SetWindowSize(gs.WindowWidth, gs.WindowHeight)
}

func saveSettings() {
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		logging.Error("save settings: %v", err)
		return
	}
	if err := ensureDataDir(); err != nil {
		logging.Error("save settings: %v", err)
		return
	}
	path := filepath.Join(dataDirPath, settingsFile)
	if err := os.WriteFile(path+".tmp", data, 0644); err != nil {
		logging.Error("save settings: %v", err)
		return
	}
	if err := os.Rename(path+".tmp", path); err != nil {
		logging.Error("save settings: %v", err)
	}
}

// maybeSaveSettings writes dirty settings at most once per second.
func maybeSaveSettings() {
	if !settingsDirty || !saveLimiter.Allow() {
		return
	}
	saveSettings()
	settingsDirty = false
}
