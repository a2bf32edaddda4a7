package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"tacmap/areagrid"
	"tacmap/assets"
	"tacmap/internal/logging"
	"tacmap/rsi"
)

var (
	gridPath   string
	fake       bool
	relayURL   string
	doDebug    bool
	exportPath string
	seed       uint64
)

func main() {
	flag.StringVar(&gridPath, "grid", "", "load the area grid from a JSON file")
	flag.BoolVar(&fake, "fake", false, "generate a station and wander simulated units over it")
	flag.StringVar(&relayURL, "relay", "", "share lines through the relay at this websocket URL")
	flag.BoolVar(&doDebug, "debug", false, "verbose/debug logging")
	flag.StringVar(&exportPath, "export", "", "render the map to this PNG file and exit")
	flag.Uint64Var(&seed, "seed", 0, "seed for -fake; 0 picks one from the clock")
	flag.Parse()

	if err := ensureDataDir(); err != nil {
		log.Printf("create data dir: %v", err)
	}
	logging.Setup(filepath.Join(dataDirPath, "logs"), doDebug)
	loadSettings()
	if relayURL == "" {
		relayURL = gs.RelayURL
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	grid, err := loadGrid()
	if err != nil {
		logging.Error("%v", err)
		os.Exit(1)
	}
	icons := rsi.NewCache(assets.FS)
	if err := icons.Preload(assets.BlipSheet); err != nil {
		logging.Warn("preload icons: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g := newGame(ctx, grid, icons)
	applySettings(g.ctl)
	if fake || gridPath == "" {
		g.startFake(seed)
	}

	if exportPath != "" {
		if err := exportMap(exportPath, g.ctl, icons); err != nil {
			logging.Error("export: %v", err)
			os.Exit(1)
		}
		fmt.Println(exportPath)
		return
	}

	initClipboard()
	initFont()
	if relayURL != "" {
		if err := g.connectRelay(relayURL); err != nil {
			logging.Error("%v", err)
			g.status.set("relay unavailable")
			g.relayState = "relay offline"
		}
	}

	runGame(g)
}

// loadGrid reads -grid or generates a station layout.
func loadGrid() (*areagrid.Grid, error) {
	if gridPath == "" {
		return areagrid.Generate(seed, 64, 48), nil
	}
	f, err := os.Open(gridPath)
	if err != nil {
		return nil, fmt.Errorf("open grid: %w", err)
	}
	defer f.Close()
	g, err := areagrid.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load grid %s: %w", gridPath, err)
	}
	return g, nil
}
