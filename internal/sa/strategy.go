package sa

import (
	"math/rand"

	"github.com/Rastion/sa-batch-scheduler/internal/batch"
)

// Strategy инкапсулирует представление решения и его окрестность.
// Цикл отжига работает с любой стратегией одинаково.
type Strategy interface {
	// Initial строит стартовое решение.
	Initial(p batch.Problem, rng *rand.Rand) Solution
	// Neighbor возвращает независимую копию решения с одной случайной
	// мутацией; исходное решение не изменяется.
	Neighbor(s Solution, rng *rand.Rand) Solution
}

// Solution — кандидат в пространстве поиска.
type Solution interface {
	// Cost вычисляет значение целевой функции (makespan + штрафы).
	Cost() float64
	// Schedule возвращает расписание пакетов, отсортированное по началу.
	Schedule() []batch.Batch
	// Clone возвращает глубокую копию без разделяемого состояния.
	Clone() Solution
}

func newStrategy(cfg Config) Strategy {
	switch cfg.Representation {
	case RepresentationBatch:
		return BatchStrategy{MaxIdleShift: cfg.MaxIdleShift}
	default:
		return OrderingStrategy{}
	}
}
