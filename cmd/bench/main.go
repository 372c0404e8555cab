package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/Rastion/sa-batch-scheduler/internal/bench"
	"github.com/Rastion/sa-batch-scheduler/internal/opt"
	"github.com/Rastion/sa-batch-scheduler/internal/sa"
)

// Фабрики

func newSAFactory(cfg sa.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := sa.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func main() {
	// CLI флаги для настройки параметров алгоритма и политики запуска
	var (
		out          = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		cases        = flag.String("cases", "20x3,50x5,100x10", "конфигурации: количество задач Х количество ресурсов (через запятую)")
		algos        = flag.String("algos", "SA-ORD,SA-BATCH", "список вариантов: SA-ORD, SA-BATCH (через запятую)")
		runs         = flag.Int("runs", 30, "количество запусков каждого варианта (с разными сидами)")
		baseSeed     = flag.Int64("seed", 1000, "базовый сид для запусков алгоритма")
		instanceSeed = flag.Int64("instance_seed", 777, "базовый сид для генерации экземпляров задачи (фиксирован для конфигурации)")
		perRunTO     = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")

		// --- Генерация экземпляров ---
		types    = flag.Int("types", 3, "количество типов задач")
		maxCap   = flag.Int("max_cap", 4, "верхняя граница ёмкости ресурса")
		predProb = flag.Float64("pred_prob", 0.05, "вероятность ребра предшествования между парой задач")

		// --- Алгоритм имитации отжига ---
		saIterPerTemp = flag.Int("sa_iter_per_temp", 100, "количество итераций на одном уровне температуры")
		saT0          = flag.Float64("sa_t0", 10000.0, "начальная температура")
		saTmin        = flag.Float64("sa_tmin", 1.0, "конечная температура")
		saAlpha       = flag.Float64("sa_alpha", 0.95, "коэффициент охлаждения (alpha)")
		saMaxShift    = flag.Int("sa_max_shift", 10, "максимальный сдвиг пакета во времени (представление batch)")
	)
	flag.Parse()

	ctx := context.Background()

	benchCases, err := parseCases(*cases, *instanceSeed, *types, *maxCap, *predProb)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	baseCfg := sa.Config{
		IterationsPerTemp: *saIterPerTemp,
		InitialTemp:       *saT0,
		FinalTemp:         *saTmin,
		Alpha:             *saAlpha,
		MaxIdleShift:      *saMaxShift,
	}

	ordCfg := baseCfg
	ordCfg.Representation = sa.RepresentationOrdering
	if err := ordCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации алгоритма имитации отжига:", err)
		os.Exit(2)
	}

	batchCfg := baseCfg
	batchCfg.Representation = sa.RepresentationBatch
	if err := batchCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации алгоритма имитации отжига:", err)
		os.Exit(2)
	}

	available := map[string]bench.Algorithm{
		"SA-ORD":   {Name: "SA-ORD", Factory: newSAFactory(ordCfg)},
		"SA-BATCH": {Name: "SA-BATCH", Factory: newSAFactory(batchCfg)},
	}

	var selected []bench.Algorithm
	for _, a := range splitCSV(*algos) {
		al, ok := available[a]
		if !ok {
			fmt.Fprintf(os.Stderr, "Вариант не предоставлен в программе %q; доступные: %v\n", a, keys(available))
			os.Exit(2)
		}
		selected = append(selected, al)
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
	}

	caseLine := color.New(color.Bold, color.FgCyan)
	statLine := color.New(color.FgGreen)

	var records []bench.Record
	for _, c := range benchCases {
		for _, a := range selected {
			caseLine.Printf("Запущен вариант %s; %d задач %d ресурсов (общее кол-во запусков=%d)...\n", a.Name, c.Tasks, c.Resources, runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
			records = append(records, rec)

			statLine.Printf("  Значение целевой функции: лучшее=%.2f среднее=%.2f стандартное отклонение=%.2f | Makespan: лучший=%d | Время: среднее=%.2fms среднее отклонение=%.2fms\n",
				rec.CostBest, rec.CostMean, rec.CostStd,
				rec.MakespanBest,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)
}

// helpers

func parseCases(s string, baseInstanceSeed int64, types, maxCap int, predProb float64) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		tr := strings.Split(p, "x")
		if len(tr) != 2 {
			return nil, fmt.Errorf("пара %q невалидной схемы, пример: 50x5", p)
		}
		tasks, err := atoiStrict(tr[0])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества задач: %w", p, err)
		}
		resources, err := atoiStrict(tr[1])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества ресурсов: %w", p, err)
		}
		if tasks <= 0 || resources <= 0 {
			return nil, fmt.Errorf("пара %q: количество задач и ресурсов должно быть > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(tasks)*100 + int64(resources)

		cases = append(cases, bench.Case{
			Tasks:        tasks,
			Resources:    resources,
			Types:        types,
			MaxCapacity:  maxCap,
			PredProb:     predProb,
			InstanceSeed: seed,
		})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
