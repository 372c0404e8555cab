package sa

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Rastion/sa-batch-scheduler/internal/batch"
	"github.com/Rastion/sa-batch-scheduler/internal/opt"
)

// Solver - структура реализации алгоритма имитации отжига
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый SA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Нижняя граница показателя экспоненты в критерии Метрополиса.
// При очень малой температуре и большой положительной дельте вероятность
// принятия считается нулевой вместо вычисления exp с переполнением.
const minExpArg = -700.0

// Solve — реализация эвристики.
func (s *Solver) Solve(ctx context.Context, p batch.Problem) (opt.Result, error) {
	start := time.Now()

	if p == nil {
		return opt.Result{}, fmt.Errorf("задача не инициализирована (nil)")
	}
	if v, ok := p.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return opt.Result{}, err
		}
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	strat := newStrategy(s.Cfg)

	// Текущее и лучшее решения — всегда независимые копии:
	// Neighbor возвращает свежий клон, лучшее клонируется при записи.
	curr := strat.Initial(p, s.Rng)
	currCost := curr.Cost()
	best := curr.Clone()
	bestCost := currCost

	evals := 1
	iters := 0
	T := s.Cfg.InitialTemp

	for T > s.Cfg.FinalTemp {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return opt.Result{
				Schedule:    best.Schedule(),
				Cost:        bestCost,
				Evaluations: evals,
				Iterations:  iters,
				Duration:    time.Since(start),
				Meta: map[string]any{
					"stopped": "context",
					"T":       T,
				},
			}, err
		}

		for i := 0; i < s.Cfg.IterationsPerTemp; i++ {
			cand := strat.Neighbor(curr, s.Rng)
			candCost := cand.Cost()
			evals++
			iters++

			delta := candCost - currCost
			accept := false
			if delta < 0 {
				// Улучшающее решение принимаем всегда
				accept = true
			} else if s.Rng.Float64() < acceptProb(delta, T) {
				// Критерий Метрополиса:
				// допускает принятие ухудшающих решений
				accept = true
			}

			if accept {
				curr = cand
				currCost = candCost

				// Обновление глобально лучшего решения
				if currCost < bestCost {
					best = curr.Clone()
					bestCost = currCost
				}
			}
		}

		// Охлаждение температуры
		T *= s.Cfg.Alpha
	}

	return opt.Result{
		Schedule:    best.Schedule(),
		Cost:        bestCost,
		Evaluations: evals,
		Iterations:  iters,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"initial_temp":   s.Cfg.InitialTemp,
			"final_temp":     s.Cfg.FinalTemp,
			"alpha":          s.Cfg.Alpha,
			"representation": string(s.Cfg.Representation),
		},
	}, nil
}

// acceptProb вычисляет вероятность принятия ухудшающего решения
// с ограниченным снизу показателем экспоненты.
func acceptProb(delta, T float64) float64 {
	if T <= 0 {
		return 0
	}
	x := -delta / T
	if x < minExpArg {
		return 0
	}
	return math.Exp(x)
}
