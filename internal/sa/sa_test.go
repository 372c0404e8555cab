package sa

import (
	"context"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/Rastion/sa-batch-scheduler/internal/batch"
)

func testConfig(rep Representation) Config {
	return Config{
		IterationsPerTemp: 20,
		InitialTemp:       100.0,
		FinalTemp:         1.0,
		Alpha:             0.6,
		MaxIdleShift:      10,
		Representation:    rep,
	}
}

func testInstance(t *testing.T) *batch.Instance {
	t.Helper()
	rng := rand.New(rand.NewSource(17))
	return batch.RandomInstance(20, 3, 2, 3, 1, 30, 0.1, rng)
}

func TestNewRejectsInvalid(t *testing.T) {
	if _, err := New(Config{}, rand.New(rand.NewSource(1))); err == nil {
		t.Error("zero config accepted")
	}
	if _, err := New(DefaultConfig(), nil); err == nil {
		t.Error("nil rng accepted")
	}
}

func TestSolveProducesValidSchedule(t *testing.T) {
	inst := testInstance(t)
	for _, rep := range []Representation{RepresentationOrdering, RepresentationBatch} {
		t.Run(string(rep), func(t *testing.T) {
			solver, err := New(testConfig(rep), rand.New(rand.NewSource(1)))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			res, err := solver.Solve(context.Background(), inst)
			if err != nil {
				t.Fatalf("Solve: %v", err)
			}
			if err := batch.ValidateSchedule(res.Schedule, inst); err != nil {
				t.Fatalf("best schedule invalid: %v", err)
			}
			if res.Evaluations <= 1 || res.Iterations == 0 {
				t.Errorf("suspicious counters: evals=%d iters=%d", res.Evaluations, res.Iterations)
			}
		})
	}
}

func TestSolveDeterministicForSeed(t *testing.T) {
	inst := testInstance(t)
	for _, rep := range []Representation{RepresentationOrdering, RepresentationBatch} {
		t.Run(string(rep), func(t *testing.T) {
			run := func() (float64, []batch.Batch) {
				solver, err := New(testConfig(rep), rand.New(rand.NewSource(99)))
				if err != nil {
					t.Fatalf("New: %v", err)
				}
				res, err := solver.Solve(context.Background(), inst)
				if err != nil {
					t.Fatalf("Solve: %v", err)
				}
				return res.Cost, res.Schedule
			}

			cost1, sched1 := run()
			cost2, sched2 := run()
			if cost1 != cost2 {
				t.Fatalf("same seed, different costs: %v vs %v", cost1, cost2)
			}
			if !reflect.DeepEqual(sched1, sched2) {
				t.Fatal("same seed, different schedules")
			}
		})
	}
}

func TestSolveNeverWorseThanInitial(t *testing.T) {
	inst := testInstance(t)
	for _, rep := range []Representation{RepresentationOrdering, RepresentationBatch} {
		t.Run(string(rep), func(t *testing.T) {
			cfg := testConfig(rep)

			// The driver draws the initial solution first, so an equally
			// seeded generator reproduces its starting cost.
			initial := newStrategy(cfg).Initial(inst, rand.New(rand.NewSource(4))).Cost()

			solver, err := New(cfg, rand.New(rand.NewSource(4)))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			res, err := solver.Solve(context.Background(), inst)
			if err != nil {
				t.Fatalf("Solve: %v", err)
			}
			if res.Cost > initial {
				t.Errorf("best cost %v worse than initial %v", res.Cost, initial)
			}
		})
	}
}

func TestSolveHonorsContext(t *testing.T) {
	inst := testInstance(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solver, err := New(testConfig(RepresentationOrdering), rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := solver.Solve(ctx, inst)
	if err == nil {
		t.Fatal("cancelled context not reported")
	}
	if res.Meta["stopped"] != "context" {
		t.Errorf("meta = %v", res.Meta)
	}
}

func TestAcceptProb(t *testing.T) {
	// Moderate worsening at high temperature: strictly inside (0,1).
	if p := acceptProb(10, 100); p <= 0 || p >= 1 {
		t.Errorf("acceptProb(10,100) = %v", p)
	}
	// Huge delta at tiny temperature must clamp to zero, not overflow.
	p := acceptProb(1e6, 1e-12)
	if p != 0 {
		t.Errorf("acceptProb(1e6,1e-12) = %v, want 0", p)
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		t.Errorf("acceptProb produced %v", p)
	}
	if p := acceptProb(5, 0); p != 0 {
		t.Errorf("acceptProb at zero temperature = %v, want 0", p)
	}
}
