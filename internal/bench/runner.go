package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/Rastion/sa-batch-scheduler/internal/batch"
	"github.com/Rastion/sa-batch-scheduler/internal/opt"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) opt.Optimizer
}

type Case struct {
	Tasks     int
	Resources int

	// Instance shape: number of task types, capacity upper bound and the
	// probability of a precedence edge between any ordered task pair.
	Types       int
	MaxCapacity int
	PredProb    float64

	InstanceSeed int64
}

type Record struct {
	Algo      string
	Tasks     int
	Resources int
	Runs      int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	CostBest float64
	CostMean float64
	CostStd  float64

	MakespanBest int
	MakespanMean float64
	MakespanStd  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	instRng := randForSeed(c.InstanceSeed)
	inst := batch.RandomInstance(c.Tasks, c.Resources, c.Types, c.MaxCapacity, 1, 99, c.PredProb, instRng)

	costs := make([]float64, 0, r.Runs)
	makespans := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op := algo.Factory(runSeed)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if err := batch.ValidateSchedule(res.Schedule, inst); err != nil {
			return Record{}, fmt.Errorf("run %d: invalid schedule: %w", i, err)
		}

		costs = append(costs, res.Cost)
		makespans = append(makespans, res.Makespan())
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	costStats := CalcFloatStats(costs)
	msStats := CalcIntStats(makespans)
	tStats := CalcFloatStats(timesMs)

	return Record{
		Algo:      algo.Name,
		Tasks:     c.Tasks,
		Resources: c.Resources,
		Runs:      r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		CostBest: costStats.Best,
		CostMean: costStats.Mean,
		CostStd:  costStats.Std,

		MakespanBest: msStats.Best,
		MakespanMean: msStats.Mean,
		MakespanStd:  msStats.Std,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if err := os.MkdirAll(dirOf(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "tasks", "resources", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"cost_best", "cost_mean", "cost_std",
		"makespan_best", "makespan_mean", "makespan_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			itoa(r.Tasks),
			itoa(r.Resources),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			ftoa(r.CostBest),
			ftoa(r.CostMean),
			ftoa(r.CostStd),

			itoa(r.MakespanBest),
			ftoa(r.MakespanMean),
			ftoa(r.MakespanStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
