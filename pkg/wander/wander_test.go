package wander

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yummy913/FluidSIM/pkg/fluid"
)

func TestDriftStaysNearHome(t *testing.T) {
	f := fluid.New(0.5, 0, 0)
	homes := make([][2]int, len(f.Emitters))
	for i, e := range f.Emitters {
		homes[i] = [2]int{e.X, e.Y}
	}

	const amp = 6
	d := New(1, amp)
	moved := false
	for step := 0; step < 400; step++ {
		d.Apply(f, float64(step)*0.5)
		for i, e := range f.Emitters {
			assert.LessOrEqual(t, abs(e.X-homes[i][0]), amp)
			assert.LessOrEqual(t, abs(e.Y-homes[i][1]), amp)
			if e.X != homes[i][0] || e.Y != homes[i][1] {
				moved = true
			}
		}
	}
	assert.True(t, moved, "no emitter ever left its home")
}

func TestDriftClampsToGrid(t *testing.T) {
	f := fluid.NewSize(5, 5, 0.5, 0, 0)
	f.Emitters = append(f.Emitters, fluid.NewEmitter(0, 4))

	d := New(3, 50)
	for step := 0; step < 200; step++ {
		d.Apply(f, float64(step))
		e := f.Emitters[0]
		require.True(t, e.X >= 0 && e.X < f.Width, "x=%d", e.X)
		require.True(t, e.Y >= 0 && e.Y < f.Height, "y=%d", e.Y)
	}
}

func TestDriftIsDeterministic(t *testing.T) {
	a, b := fluid.New(0.5, 0, 0), fluid.New(0.5, 0, 0)
	da, db := New(9, 4), New(9, 4)

	for step := 0; step < 50; step++ {
		tm := float64(step) * 1.7
		da.Apply(a, tm)
		db.Apply(b, tm)
		for i := range a.Emitters {
			assert.Equal(t, a.Emitters[i].X, b.Emitters[i].X)
			assert.Equal(t, a.Emitters[i].Y, b.Emitters[i].Y)
		}
	}
}

func TestDriftPicksUpNewEmittersAndReset(t *testing.T) {
	f := fluid.NewSize(40, 40, 0.5, 0, 0)
	f.Emitters = append(f.Emitters, fluid.NewEmitter(10, 10))

	d := New(5, 0)
	d.Apply(f, 3)
	require.Len(t, d.homes, 1)

	f.Emitters = append(f.Emitters, fluid.NewEmitter(30, 30))
	d.Apply(f, 4)
	require.Len(t, d.homes, 2)
	assert.Equal(t, home{30, 30}, d.homes[1])

	// zero amplitude pins emitters to their homes
	assert.Equal(t, 10, f.Emitters[0].X)
	assert.Equal(t, 30, f.Emitters[1].Y)

	f.MoveEmitter(0, 20, 20)
	d.Reset()
	d.Apply(f, 5)
	assert.Equal(t, home{20, 20}, d.homes[0])
	assert.Equal(t, 20, f.Emitters[0].X)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
