package fluid

import "testing"

// Default 100x75 grid with both emitters.
func BenchmarkStep(b *testing.B) {
	f := New(0.5, 0, 0.0001)
	f.Seed(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Step()
	}
}

func BenchmarkStepLargeGrid(b *testing.B) {
	f := NewSize(300, 250, 0.5, 0, 0.0001)
	f.Seed(1)
	for i := 0; i < 4; i++ {
		e := NewEmitter(60+60*i, 125)
		e.Radius = 3
		e.RotationSpeed = 0.2
		f.Emitters = append(f.Emitters, e)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Step()
	}
}

func BenchmarkProject(b *testing.B) {
	f := NewSize(100, 75, 0.5, 0, 0)
	randomVelocity(f, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.project()
	}
}
