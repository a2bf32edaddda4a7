package main

import (
	"context"
	"image"
	"image/color"
	"time"

	"tacmap/areagrid"
	"tacmap/internal/logging"
	"tacmap/internal/sim"
	"tacmap/linesync"
	"tacmap/mapview"
	"tacmap/rsi"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/time/rate"
)

var backgroundColor = color.RGBA{R: 0x12, G: 0x14, B: 0x18, A: 0xff}

// Game hosts one map control and feeds it from the fake simulation and the
// relay.
type Game struct {
	ctx    context.Context
	ctl    *mapview.Control
	icons  *rsi.Cache
	grid   *areagrid.Grid
	events *mapview.EventHandler

	fake     *sim.Sim
	fakeTick *rate.Limiter

	relay      *linesync.Client
	relayState string

	status statusLine
}

func newGame(ctx context.Context, grid *areagrid.Grid, icons *rsi.Cache) *Game {
	g := &Game{
		ctx:    ctx,
		ctl:    mapview.New(),
		icons:  icons,
		grid:   grid,
		events: mapview.NewEventHandler(),
	}
	g.ctl.Icons = icons
	g.ctl.Events = g.events
	g.ctl.UpdateTexture(grid)
	return g
}

// startFake wanders simulated units over the grid at gs.TickRate.
func (g *Game) startFake(seed uint64) {
	g.fake = sim.New(g.grid, seed)
	g.fakeTick = rate.NewLimiter(rate.Limit(gs.TickRate), 1)
	g.ctl.UpdateBlips(g.fake.Blips())
}

// connectRelay dials url and shares locally drawn lines through it.
func (g *Game) connectRelay(url string) error {
	ctx, cancel := context.WithTimeout(g.ctx, 5*time.Second)
	defer cancel()
	c, err := linesync.Dial(ctx, url)
	if err != nil {
		return err
	}
	g.relay = c
	g.relayState = "relay " + url
	g.events.Handle = c.PublishEvent
	return nil
}

func (g *Game) publish(l mapview.Line) {
	if g.relay == nil {
		return
	}
	if err := g.relay.Publish(l); err != nil {
		logging.Warn("publish line: %v", err)
	}
}

func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	if g.relay != nil && !g.relay.Drain(g.ctl) {
		logging.Warn("relay connection lost")
		g.status.set("relay connection lost")
		g.relay = nil
		g.events.Handle = nil
		g.relayState = "relay offline"
	}

	if g.fake != nil && g.fakeTick.Allow() {
		g.fake.Step()
		g.ctl.UpdateBlips(g.fake.Blips())
	}

	handleHotkeys(g)

	scale := mapview.UIScale()
	g.ctl.Position = image.Pt(int(16*scale), int((hudHeight+8)*scale))
	g.ctl.Update()
	g.drainEvents()

	maybeSaveSettings()
	return nil
}

func (g *Game) drainEvents() {
	for {
		select {
		case ev := <-g.events.Events:
			if logging.DebugEnabled() {
				logging.Debug("map event %v (%d lines)", ev.Type, ev.Count)
			}
			if ev.Type == mapview.EventLinesCleared {
				g.status.set("lines cleared")
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.ctl.Draw(screen)
	drawHUD(screen, hudText(g.ctl, g.grid.Len(), g.relayState), g.status.current(time.Now()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth >= minWindowW && outsideHeight >= minWindowH {
		if gs.WindowWidth != outsideWidth || gs.WindowHeight != outsideHeight {
			gs.WindowWidth = outsideWidth
			gs.WindowHeight = outsideHeight
			settingsDirty = true
		}
	}
	return outsideWidth, outsideHeight
}

func runGame(g *Game) {
	ebiten.SetWindowTitle("tacmap")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(g); err != nil {
		logging.Error("ebiten: %v", err)
	}
	if g.relay != nil {
		g.relay.Close()
	}
	saveSettings()
}
