package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/yummy913/FluidSIM/pkg/applog"
	"github.com/yummy913/FluidSIM/pkg/config"
	"github.com/yummy913/FluidSIM/pkg/control"
)

// Held keys repeat after this many ticks, every repeatEvery ticks.
const (
	repeatDelay = 15
	repeatEvery = 4
)

var keyActions = map[ebiten.Key]control.Action{
	ebiten.KeySpace:        control.TogglePause,
	ebiten.KeyV:            control.CycleView,
	ebiten.KeyH:            control.CycleHue,
	ebiten.KeyW:            control.ToggleWander,
	ebiten.KeyR:            control.Reset,
	ebiten.KeyTab:          control.SelectNext,
	ebiten.KeyBracketLeft:  control.TimestepDown,
	ebiten.KeyBracketRight: control.TimestepUp,
	ebiten.KeyMinus:        control.DissipationDown,
	ebiten.KeyEqual:        control.DissipationUp,
	ebiten.KeyComma:        control.ViscosityDown,
	ebiten.KeyPeriod:       control.ViscosityUp,
	ebiten.KeySemicolon:    control.DiffusionDown,
	ebiten.KeyQuote:        control.DiffusionUp,
	ebiten.KeyArrowDown:    control.StrengthDown,
	ebiten.KeyArrowUp:      control.StrengthUp,
	ebiten.KeyArrowLeft:    control.RotationDown,
	ebiten.KeyArrowRight:   control.RotationUp,
}

// Actions that make sense to repeat while held.
var repeating = map[control.Action]bool{
	control.TimestepDown: true, control.TimestepUp: true,
	control.DissipationDown: true, control.DissipationUp: true,
	control.ViscosityDown: true, control.ViscosityUp: true,
	control.DiffusionDown: true, control.DiffusionUp: true,
	control.StrengthDown: true, control.StrengthUp: true,
	control.RotationDown: true, control.RotationUp: true,
}

var radiusKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

type Game struct {
	ctrl  *control.Controller
	scale int

	canvas   *ebiten.Image
	pixels   []byte
	showHelp bool
}

func NewGame(ctrl *control.Controller, scale int) *Game {
	f := ctrl.Fluid
	return &Game{
		ctrl:   ctrl,
		scale:  scale,
		canvas: ebiten.NewImage(f.Width, f.Height),
		pixels: make([]byte, 4*f.Width*f.Height),
	}
}

func pressed(key ebiten.Key, repeat bool) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return repeat && d > repeatDelay && d%repeatEvery == 0
}

func (g *Game) handleInput() {
	for key, action := range keyActions {
		if pressed(key, repeating[action]) {
			g.ctrl.Do(action)
		}
	}
	for i, key := range radiusKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.ctrl.SetRadius(i + 1)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySlash) {
		g.showHelp = !g.showHelp
	}

	mx, my := ebiten.CursorPosition()
	x, y := mx/g.scale, my/g.scale
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.ctrl.Grab(x, y)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.ctrl.DragTo(x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.ctrl.Release()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.ctrl.Push(x, y)
	}
}

func (g *Game) Update() error {
	g.handleInput()
	g.ctrl.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	g.ctrl.Paint(g.pixels)
	g.canvas.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.canvas, op)

	text := fmt.Sprintf("FPS: %0.2f  TPS: %0.2f\n%s", ebiten.ActualFPS(), ebiten.ActualTPS(), g.ctrl.StatusText())
	if g.showHelp {
		text += "\n\n" + control.Help + "\ndrag: move emitter  right click: push  / help"
	}
	ebitenutil.DebugPrint(screen, text)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ctrl.Fluid.Width * g.scale, g.ctrl.Fluid.Height * g.scale
}

func main() {
	configPath := flag.String("config", "", "gcfg configuration file; built-in defaults if empty")
	example := flag.Bool("example", false, "print an example configuration file and exit")
	debug := flag.Bool("debug", false, "write a debug log to "+applog.DefaultDir)
	seed := flag.Int64("seed", 0, "seed for injection jitter and drift, overriding the config")
	flag.Parse()

	if *example {
		fmt.Print(config.Example)
		return
	}

	// the standard logger still writes to stderr here
	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}

	logFile, err := applog.Setup(*debug, applog.DefaultDir, applog.DefaultName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	log.Printf("config %q: %+v, %d emitters", *configPath, cfg.Simulation, len(cfg.Emitter))

	ctrl := control.FromConfig(cfg)
	game := NewGame(ctrl, cfg.Display.Scale)

	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("FluidSim")

	if err := ebiten.RunGame(game); err != nil {
		log.Print(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
