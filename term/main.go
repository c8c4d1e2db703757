// Command term runs the simulation in a terminal, two grid rows per text
// row using the upper half block glyph.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/yummy913/FluidSIM/pkg/applog"
	"github.com/yummy913/FluidSIM/pkg/config"
	"github.com/yummy913/FluidSIM/pkg/control"
	"github.com/yummy913/FluidSIM/pkg/render"
)

const (
	frameInterval = 33 * time.Millisecond // ~30 FPS
	halfBlock     = '▀'
)

var runeActions = map[rune]control.Action{
	' ':  control.TogglePause,
	'v':  control.CycleView,
	'h':  control.CycleHue,
	'w':  control.ToggleWander,
	'r':  control.Reset,
	'[':  control.TimestepDown,
	']':  control.TimestepUp,
	'-':  control.DissipationDown,
	'=':  control.DissipationUp,
	',':  control.ViscosityDown,
	'.':  control.ViscosityUp,
	';':  control.DiffusionDown,
	'\'': control.DiffusionUp,
}

var keyActions = map[tcell.Key]control.Action{
	tcell.KeyTab:   control.SelectNext,
	tcell.KeyDown:  control.StrengthDown,
	tcell.KeyUp:    control.StrengthUp,
	tcell.KeyLeft:  control.RotationDown,
	tcell.KeyRight: control.RotationUp,
}

type command struct {
	action control.Action
	radius int // set instead of action when > 0
	quit   bool
}

func keyCommand(key tcell.Key, r rune) (command, bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return command{quit: true}, true
	case tcell.KeyRune:
		if r == 'q' {
			return command{quit: true}, true
		}
		if r >= '1' && r <= '9' {
			return command{radius: int(r - '0')}, true
		}
		a, ok := runeActions[r]
		return command{action: a}, ok
	}
	a, ok := keyActions[key]
	return command{action: a}, ok
}

// mouse turns tcell's button state reports into press, drag and release
// calls on the controller.
type mouse struct {
	buttons tcell.ButtonMask
}

// update handles a mouse event at text cell (col, row).
func (m *mouse) update(ctrl *control.Controller, col, row int, buttons tcell.ButtonMask) {
	x, y := col, 2*row
	left, wasLeft := buttons&tcell.Button1 != 0, m.buttons&tcell.Button1 != 0
	right, wasRight := buttons&tcell.Button2 != 0, m.buttons&tcell.Button2 != 0
	m.buttons = buttons

	switch {
	case left && !wasLeft:
		ctrl.Grab(x, y)
	case left:
		ctrl.DragTo(x, y)
	case wasLeft:
		ctrl.Release()
	}
	if right && !wasRight {
		ctrl.Push(x, y)
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func cellStyle(top, bottom color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
}

type app struct {
	screen tcell.Screen
	ctrl   *control.Controller
	mouse  mouse
	pixels []byte
}

func (a *app) draw() {
	f := a.ctrl.Fluid
	a.screen.Clear()
	a.ctrl.Paint(a.pixels)

	rows := (f.Height + 1) / 2
	for row := 0; row < rows; row++ {
		for x := 0; x < f.Width; x++ {
			top := render.Pixel(a.pixels, f.Width, x, 2*row)
			bottom := color.RGBA{A: 0xff}
			if 2*row+1 < f.Height {
				bottom = render.Pixel(a.pixels, f.Width, x, 2*row+1)
			}
			a.screen.SetContent(x, row, halfBlock, nil, cellStyle(top, bottom))
		}
	}

	status := a.ctrl.Status()
	for i, line := range status {
		drawText(a.screen, 0, rows+i, line, tcell.StyleDefault)
	}
	drawText(a.screen, 0, rows+len(status), "q quit  "+firstLine(control.Help), tcell.StyleDefault.Dim(true))
	a.screen.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

// handle applies one event and reports whether to keep running.
func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd, ok := keyCommand(ev.Key(), ev.Rune())
		if !ok {
			return true
		}
		switch {
		case cmd.quit:
			return false
		case cmd.radius > 0:
			a.ctrl.SetRadius(cmd.radius)
		default:
			a.ctrl.Do(cmd.action)
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		a.mouse.update(a.ctrl, col, row, ev.Buttons())
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !a.handle(ev) {
				return
			}
		case <-ticker.C:
			a.ctrl.Tick()
			a.draw()
		}
	}
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

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.HideCursor()

	ctrl := control.FromConfig(cfg)
	a := &app{
		screen: screen,
		ctrl:   ctrl,
		pixels: make([]byte, 4*ctrl.Fluid.Width*ctrl.Fluid.Height),
	}

	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			log.Printf("panic: %v", r)
			panic(r)
		}
	}()

	a.run()
	screen.Fini()
	log.Printf("exited after %d frames", ctrl.Frames)
}
