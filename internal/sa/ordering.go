package sa

import (
	"math/rand"

	"github.com/Rastion/sa-batch-scheduler/internal/batch"
)

// OrderingStrategy — представление «порядок задач на ресурсе».
// Окрестность: обмен двух задач либо перенос задачи на новую позицию,
// каждый ход с вероятностью 0.5. Принадлежность задачи ресурсу не меняется,
// поэтому допустимая группировка в пакеты восстанавливается конструктором
// из любого порядка.
type OrderingStrategy struct{}

type orderingSolution struct {
	p   batch.Problem
	ev  *batch.Evaluator
	ord batch.Ordering
}

func (OrderingStrategy) Initial(p batch.Problem, rng *rand.Rand) Solution {
	ord := make(batch.Ordering)
	for t := 0; t < p.NbTasks(); t++ {
		r := p.Resource(t)
		ord[r] = append(ord[r], t)
	}
	// Перемешивание по возрастанию идентификатора ресурса — для
	// воспроизводимости при фиксированном сиде.
	for _, r := range ord.ResourceIDs() {
		seq := ord[r]
		for i := len(seq) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			seq[i], seq[j] = seq[j], seq[i]
		}
	}

	ev, err := batch.NewEvaluator(p)
	if err != nil {
		panic(err)
	}
	return &orderingSolution{p: p, ev: ev, ord: ord}
}

func (OrderingStrategy) Neighbor(s Solution, rng *rand.Rand) Solution {
	next := s.Clone().(*orderingSolution)

	ids := next.ord.ResourceIDs()
	if len(ids) == 0 {
		return next
	}
	r := ids[rng.Intn(len(ids))]
	seq := next.ord[r]
	if len(seq) < 2 {
		// Защищённый no-op: на таком ресурсе переставлять нечего.
		return next
	}

	if rng.Float64() < 0.5 {
		moveSwap(seq, rng)
	} else {
		next.ord[r] = moveRelocate(seq, rng)
	}
	return next
}

// moveSwap обменивает задачи на двух различных позициях.
func moveSwap(seq []int, rng *rand.Rand) {
	i := rng.Intn(len(seq))
	j := rng.Intn(len(seq) - 1)
	if j >= i {
		j++
	}
	seq[i], seq[j] = seq[j], seq[i]
}

// moveRelocate извлекает задачу из случайной позиции и вставляет её в новую
// позицию [0, len], то есть задача может стать первой или последней.
func moveRelocate(seq []int, rng *rand.Rand) []int {
	i := rng.Intn(len(seq))
	task := seq[i]
	seq = append(seq[:i], seq[i+1:]...)

	j := rng.Intn(len(seq) + 1)
	seq = append(seq, 0)
	copy(seq[j+1:], seq[j:])
	seq[j] = task
	return seq
}

func (s *orderingSolution) Cost() float64 {
	cost, _ := s.ev.EvaluateOrdering(s.ord)
	return cost
}

func (s *orderingSolution) Schedule() []batch.Batch {
	sched, _, _ := batch.ConstructScheduleAware(s.p, s.ord)
	return sched
}

func (s *orderingSolution) Clone() Solution {
	return &orderingSolution{p: s.p, ev: s.ev, ord: s.ord.Clone()}
}
