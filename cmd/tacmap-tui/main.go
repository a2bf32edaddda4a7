// Command tacmap-tui shows the tactical map in a terminal and lets the user
// annotate it with mouse drags.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"tacmap/areagrid"
	"tacmap/assets"
	"tacmap/internal/logging"
	"tacmap/internal/sim"
	"tacmap/linesync"
	"tacmap/mapexport"
	"tacmap/mapview"
	"tacmap/rsi"

	"github.com/gdamore/tcell/v2"
)

const (
	frameTick = 50 * time.Millisecond
	simTick   = 250 * time.Millisecond
)

var palette = []struct {
	name  string
	color color.RGBA
}{
	{"white", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	{"red", color.RGBA{R: 0xe0, G: 0x30, B: 0x30, A: 0xff}},
	{"blue", color.RGBA{R: 0x30, G: 0x80, B: 0xff, A: 0xff}},
	{"green", color.RGBA{R: 0x30, G: 0xd0, B: 0x60, A: 0xff}},
	{"yellow", color.RGBA{R: 0xff, G: 0xd0, B: 0x20, A: 0xff}},
}

type viewer struct {
	screen tcell.Screen
	ctl    *mapview.Control
	icons  *rsi.Cache
	sim    *sim.Sim
	relay  *linesync.Client
	tones  tones

	colorIdx   int
	pressed    bool
	relayState string
	notice     string
}

func main() {
	gridPath := flag.String("grid", "", "load the area grid from a JSON file")
	width := flag.Int("w", 72, "width of a generated station")
	height := flag.Int("h", 40, "height of a generated station")
	seed := flag.Uint64("seed", 0, "generator seed; 0 picks one from the clock")
	noFake := flag.Bool("nofake", false, "do not simulate units")
	relayURL := flag.String("relay", "", "share lines through the relay at this websocket URL")
	limit := flag.Int("limit", mapview.DefaultLineLimit, "maximum lines kept; negative keeps all")
	debug := flag.Bool("debug", false, "verbose/debug logging")
	flag.Parse()

	// the screen owns stdout; log to files only
	logging.Setup("logs", *debug)
	logging.SetOutput(io.Discard)

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	grid, err := loadGrid(*gridPath, *seed, *width, *height)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	v := &viewer{
		ctl:   mapview.New(),
		icons: rsi.NewCache(assets.FS),
	}
	if err := v.icons.Preload(assets.BlipSheet); err != nil {
		logging.Warn("preload icons: %v", err)
	}
	v.ctl.LineLimit = *limit
	v.ctl.Color = palette[0].color
	v.ctl.Events = &mapview.EventHandler{Handle: v.onEvent}
	v.ctl.UpdateTexture(grid)
	if !*noFake {
		v.sim = sim.New(grid, *seed)
		v.ctl.UpdateBlips(v.sim.Blips())
	}

	if *relayURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		v.relay, err = linesync.Dial(ctx, *relayURL)
		cancel()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		v.relayState = "relay " + *relayURL
		defer v.relay.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	v.screen = screen

	if err := v.tones.init(); err != nil {
		// non-fatal, the viewer runs without sound
		logging.Warn("audio initialization failed: %v", err)
	}
	defer v.cleanup()

	v.run()
}

func loadGrid(path string, seed uint64, w, h int) (*areagrid.Grid, error) {
	if path == "" {
		return areagrid.Generate(seed, w, h), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grid: %w", err)
	}
	defer f.Close()
	return areagrid.Load(f)
}

func (v *viewer) onEvent(ev mapview.UIEvent) {
	if ev.Type != mapview.EventLineAdded {
		return
	}
	if ev.Local {
		v.tones.play(localTone)
		if v.relay != nil {
			v.relay.PublishEvent(ev)
		}
		return
	}
	v.tones.play(remoteTone)
}

// handleMouse feeds button 1 through the control's drag state machine.
func (v *viewer) handleMouse(ev *tcell.EventMouse) {
	rel := cellToLogical(ev.Position())
	pressed := ev.Buttons()&tcell.Button1 != 0
	if pressed && !v.pressed {
		v.pressed = true
		if v.ctl.Contains(rel) {
			v.ctl.PointerDown(mapview.ButtonPrimary, rel)
		}
	}
	if pressed {
		v.ctl.PointerMove(rel)
	}
	if !pressed && v.pressed {
		v.pressed = false
		v.ctl.PointerUp(mapview.ButtonPrimary)
	}
}

// handleKey returns false when the viewer should exit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	switch ev.Rune() {
	case 'q':
		return false
	case 'd':
		v.ctl.Drawing = !v.ctl.Drawing
	case 'c':
		v.colorIdx = (v.colorIdx + 1) % len(palette)
		v.ctl.Color = palette[v.colorIdx].color
	case 'x':
		v.ctl.ClearLines()
		if v.relay != nil {
			if err := v.relay.Clear(); err != nil {
				logging.Warn("relay clear: %v", err)
			}
		}
	case 'e':
		name := fmt.Sprintf("tacmap-%s.png", time.Now().Format("2006-01-02-15-04-05"))
		if err := mapexport.SavePNG(name, v.ctl, mapexport.Options{Scale: 2, Icons: v.icons}); err != nil {
			logging.Error("export: %v", err)
			v.notice = "export failed"
		} else {
			v.notice = "saved " + name
		}
	}
	return true
}

func (v *viewer) status() string {
	s := statusText(v.ctl, palette[v.colorIdx].name, v.relayState)
	if v.notice != "" {
		s += " | " + v.notice
	}
	return s
}

func (v *viewer) run() {
	ticker := time.NewTicker(frameTick)
	defer ticker.Stop()
	lastStep := time.Now()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	render(v.screen, v.ctl, v.status())
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.handleKey(ev) {
					return
				}
			case *tcell.EventMouse:
				v.handleMouse(ev)
			case *tcell.EventResize:
				v.screen.Sync()
			}

		case now := <-ticker.C:
			if v.relay != nil && !v.relay.Drain(v.ctl) {
				v.relay = nil
				v.relayState = "relay offline"
			}
			if v.sim != nil && now.Sub(lastStep) >= simTick {
				v.sim.Step()
				v.ctl.UpdateBlips(v.sim.Blips())
				lastStep = now
			}
			render(v.screen, v.ctl, v.status())
		}
	}
}

func (v *viewer) cleanup() {
	v.tones.close()
	v.screen.Fini()
}
