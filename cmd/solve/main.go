package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/Rastion/sa-batch-scheduler/internal/batch"
	"github.com/Rastion/sa-batch-scheduler/internal/sa"
)

// Итоговое решение в формате полезной нагрузки batch_schedule.
type output struct {
	BatchSchedule []batch.Batch `json:"batch_schedule"`
	Cost          float64       `json:"cost"`
	Makespan      int           `json:"makespan"`
	Evaluations   int           `json:"evaluations"`
}

func main() {
	var (
		instancePath = flag.String("instance", "", "путь к YAML-файлу экземпляра задачи (обязателен)")
		rep          = flag.String("rep", "ordering", "представление решения: ordering | batch")
		seed         = flag.Int64("seed", 42, "сид генератора случайных чисел")

		saIterPerTemp = flag.Int("sa_iter_per_temp", 100, "количество итераций на одном уровне температуры")
		saT0          = flag.Float64("sa_t0", 10000.0, "начальная температура")
		saTmin        = flag.Float64("sa_tmin", 1.0, "конечная температура")
		saAlpha       = flag.Float64("sa_alpha", 0.95, "коэффициент охлаждения (alpha)")
		saMaxShift    = flag.Int("sa_max_shift", 10, "максимальный сдвиг пакета во времени (представление batch)")
	)
	flag.Parse()

	if *instancePath == "" {
		fmt.Fprintln(os.Stderr, "Не указан путь к экземпляру задачи (-instance)")
		os.Exit(2)
	}

	inst, err := batch.LoadInstance(*instancePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при загрузке экземпляра:", err)
		os.Exit(2)
	}

	cfg := sa.Config{
		IterationsPerTemp: *saIterPerTemp,
		InitialTemp:       *saT0,
		FinalTemp:         *saTmin,
		Alpha:             *saAlpha,
		MaxIdleShift:      *saMaxShift,
		Representation:    sa.Representation(*rep),
	}

	solver, err := sa.New(cfg, rand.New(rand.NewSource(*seed)))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации алгоритма имитации отжига:", err)
		os.Exit(2)
	}

	res, err := solver.Solve(context.Background(), inst)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}

	head := color.New(color.Bold, color.FgCyan)
	head.Fprintf(os.Stderr, "Решение найдено: стоимость=%.2f makespan=%d (оценок=%d, %s)\n",
		res.Cost, res.Makespan(), res.Evaluations, res.Duration.Round(time.Millisecond))

	payload, err := json.MarshalIndent(output{
		BatchSchedule: res.Schedule,
		Cost:          res.Cost,
		Makespan:      res.Makespan(),
		Evaluations:   res.Evaluations,
	}, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при сериализации решения:", err)
		os.Exit(1)
	}
	fmt.Println(string(payload))
}
