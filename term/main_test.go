package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yummy913/FluidSIM/pkg/control"
	"github.com/yummy913/FluidSIM/pkg/fluid"
	"github.com/yummy913/FluidSIM/pkg/render"
	"github.com/yummy913/FluidSIM/pkg/wander"
)

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want command
		ok   bool
	}{
		{"escape", tcell.KeyEscape, 0, command{quit: true}, true},
		{"ctrl-c", tcell.KeyCtrlC, 0, command{quit: true}, true},
		{"q", tcell.KeyRune, 'q', command{quit: true}, true},
		{"space", tcell.KeyRune, ' ', command{action: control.TogglePause}, true},
		{"view", tcell.KeyRune, 'v', command{action: control.CycleView}, true},
		{"diffusion up", tcell.KeyRune, '\'', command{action: control.DiffusionUp}, true},
		{"radius", tcell.KeyRune, '7', command{radius: 7}, true},
		{"tab", tcell.KeyTab, 0, command{action: control.SelectNext}, true},
		{"arrow", tcell.KeyLeft, 0, command{action: control.RotationDown}, true},
		{"unbound rune", tcell.KeyRune, 'z', command{}, false},
		{"zero is not a radius", tcell.KeyRune, '0', command{}, false},
		{"unbound key", tcell.KeyF5, 0, command{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyCommand(tt.key, tt.r)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMouseDragAndPush(t *testing.T) {
	f := fluid.New(0.5, 0, 0)
	ctrl := control.New(f, render.ViewDensity, wander.New(1, 1))
	right := f.Emitters[1]

	var m mouse
	// grid row is twice the text row
	m.update(ctrl, right.X, right.Y/2, tcell.Button1)
	require.True(t, ctrl.Dragging())
	assert.Equal(t, 1, ctrl.Selected)

	m.update(ctrl, 20, 10, tcell.Button1)
	assert.Equal(t, 20, f.Emitters[1].X)
	assert.Equal(t, 20, f.Emitters[1].Y)

	m.update(ctrl, 21, 10, tcell.ButtonNone)
	assert.False(t, ctrl.Dragging())
	assert.Equal(t, 20, f.Emitters[1].X)

	m.update(ctrl, 50, 15, tcell.Button2)
	u, _ := f.Velocity().At(55, 30)
	assert.Greater(t, u, 0.0)

	// holding the button does not push again
	before := f.Velocity()
	m.update(ctrl, 50, 15, tcell.Button2)
	assert.Equal(t, before, f.Velocity())
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "a b", firstLine("a b\nc"))
	assert.Equal(t, "abc", firstLine("abc"))
}
