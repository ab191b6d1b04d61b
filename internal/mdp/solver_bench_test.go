package mdp

import "testing"

func benchmarkWorld(b *testing.B) *GridWorld {
	world, err := NewGridWorld(DefaultLayout())
	if err != nil {
		b.Fatal(err)
	}
	return world
}

func BenchmarkValueIteration(b *testing.B) {
	world := benchmarkWorld(b)
	solver := &Solver{World: world, Gamma: 0.9, Epsilon: 0.001}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := solver.ValueIteration(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkQValueIteration(b *testing.B) {
	world := benchmarkWorld(b)
	solver := &Solver{World: world, Gamma: 0.9, Epsilon: 0.001}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := solver.QValueIteration(); err != nil {
			b.Fatal(err)
		}
	}
}
