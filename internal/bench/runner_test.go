package bench

import (
	"context"
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/Rastion/sa-batch-scheduler/internal/opt"
	"github.com/Rastion/sa-batch-scheduler/internal/sa"
)

func fastSAFactory(rep sa.Representation) func(seed int64) opt.Optimizer {
	cfg := sa.Config{
		IterationsPerTemp: 10,
		InitialTemp:       10.0,
		FinalTemp:         1.0,
		Alpha:             0.5,
		MaxIdleShift:      5,
		Representation:    rep,
	}
	return func(seed int64) opt.Optimizer {
		solver, _ := sa.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func TestRunCase(t *testing.T) {
	runner := Runner{Runs: 3, BaseSeed: 100}
	c := Case{
		Tasks:        15,
		Resources:    2,
		Types:        2,
		MaxCapacity:  3,
		PredProb:     0.05,
		InstanceSeed: 777,
	}
	algo := Algorithm{Name: "SA-ORD", Factory: fastSAFactory(sa.RepresentationOrdering)}

	rec, err := runner.RunCase(context.Background(), c, algo)
	if err != nil {
		t.Fatalf("RunCase: %v", err)
	}
	if rec.Algo != "SA-ORD" || rec.Tasks != 15 || rec.Resources != 2 || rec.Runs != 3 {
		t.Errorf("record header = %+v", rec)
	}
	if rec.CostBest > rec.CostMean {
		t.Errorf("best cost %v above mean %v", rec.CostBest, rec.CostMean)
	}
	if rec.MakespanBest <= 0 {
		t.Errorf("makespan best = %d", rec.MakespanBest)
	}
}

func TestRunCaseBatchRepresentation(t *testing.T) {
	runner := Runner{Runs: 2, BaseSeed: 5}
	c := Case{
		Tasks:        10,
		Resources:    2,
		Types:        2,
		MaxCapacity:  3,
		PredProb:     0,
		InstanceSeed: 42,
	}
	algo := Algorithm{Name: "SA-BATCH", Factory: fastSAFactory(sa.RepresentationBatch)}

	if _, err := runner.RunCase(context.Background(), c, algo); err != nil {
		t.Fatalf("RunCase: %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")
	records := []Record{{
		Algo: "SA-ORD", Tasks: 10, Resources: 2, Runs: 3,
		CostBest: 12.5, CostMean: 14.0, CostStd: 1.0,
		MakespanBest: 12, MakespanMean: 13.5, MakespanStd: 0.5,
	}}
	if err := WriteCSV(path, records); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	if rows[1][0] != "SA-ORD" || rows[1][1] != "10" {
		t.Errorf("data row = %v", rows[1])
	}
}
