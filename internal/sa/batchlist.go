package sa

import (
	"math/rand"
	"sort"

	"github.com/Rastion/sa-batch-scheduler/internal/batch"
)

// BatchStrategy — представление «список пакетов».
// Окрестность из трёх ходов: слияние двух совместимых пакетов (p=0.4),
// разрезание пакета на два (p=0.3) и сдвиг пакета во времени в пределах
// свободных промежутков (p=0.3). Недопустимый ход (переполнение по ёмкости,
// нулевой зазор) — тихий no-op, кандидат возвращается без изменений.
type BatchStrategy struct {
	// Максимальная величина сдвига пакета за один ход.
	MaxIdleShift int
}

type batchSolution struct {
	p     batch.Problem
	sched []batch.Batch
}

func (BatchStrategy) Initial(p batch.Problem, rng *rand.Rand) Solution {
	return &batchSolution{p: p, sched: p.RandomSolution(rng)}
}

func (b BatchStrategy) Neighbor(s Solution, rng *rand.Rand) Solution {
	next := s.Clone().(*batchSolution)

	r := rng.Float64()
	switch {
	case r < 0.4 && len(next.sched) > 1:
		next.merge(rng)
	case r < 0.7 && len(next.sched) > 0:
		next.split(rng)
	default:
		next.shift(rng, b.MaxIdleShift)
	}
	return next
}

type mergeKey struct {
	resource int
	taskType int
}

// merge объединяет два пакета одного ресурса и типа, если суммарное число
// задач не превышает ёмкость ресурса. Ёмкость — жёсткое ограничение:
// при переполнении ход отменяется.
func (s *batchSolution) merge(rng *rand.Rand) {
	groups := make(map[mergeKey][]int)
	var order []mergeKey
	for i, b := range s.sched {
		key := mergeKey{resource: b.Resource, taskType: s.p.Type(b.Tasks[0])}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	var candidates [][]int
	for _, key := range order {
		if g := groups[key]; len(g) >= 2 {
			candidates = append(candidates, g)
		}
	}
	if len(candidates) == 0 {
		return
	}

	group := candidates[rng.Intn(len(candidates))]
	gi := rng.Intn(len(group))
	gj := rng.Intn(len(group) - 1)
	if gj >= gi {
		gj++
	}
	i1, i2 := group[gi], group[gj]
	b1, b2 := s.sched[i1], s.sched[i2]

	if len(b1.Tasks)+len(b2.Tasks) > s.p.Capacity(b1.Resource) {
		return
	}

	tasks := make([]int, 0, len(b1.Tasks)+len(b2.Tasks))
	tasks = append(tasks, b1.Tasks...)
	tasks = append(tasks, b2.Tasks...)
	start := b1.Start
	if b2.Start < start {
		start = b2.Start
	}
	merged := batch.Batch{
		Resource: b1.Resource,
		Tasks:    tasks,
		Start:    start,
		End:      start + s.maxDuration(tasks),
	}

	kept := s.sched[:0]
	for i, b := range s.sched {
		if i != i1 && i != i2 {
			kept = append(kept, b)
		}
	}
	s.sched = append(kept, merged)
}

// split разрезает пакет с не менее чем двумя задачами в случайной внутренней
// точке; обе части сохраняют начало исходного пакета.
func (s *batchSolution) split(rng *rand.Rand) {
	var splittable []int
	for i, b := range s.sched {
		if len(b.Tasks) >= 2 {
			splittable = append(splittable, i)
		}
	}
	if len(splittable) == 0 {
		return
	}

	idx := splittable[rng.Intn(len(splittable))]
	b := s.sched[idx]
	point := 1 + rng.Intn(len(b.Tasks)-1)

	first := make([]int, point)
	copy(first, b.Tasks[:point])
	second := make([]int, len(b.Tasks)-point)
	copy(second, b.Tasks[point:])

	s.sched = append(s.sched[:idx], s.sched[idx+1:]...)
	s.sched = append(s.sched,
		batch.Batch{
			Resource: b.Resource,
			Tasks:    first,
			Start:    b.Start,
			End:      b.Start + s.maxDuration(first),
		},
		batch.Batch{
			Resource: b.Resource,
			Tasks:    second,
			Start:    b.Start,
			End:      b.Start + s.maxDuration(second),
		},
	)
}

// shift двигает пакет во времени, не выходя за конец предыдущего и начало
// следующего пакета на том же ресурсе. Величина сдвига равномерна на
// [-maxShift, +maxShift]; при нулевом зазоре ход отменяется.
func (s *batchSolution) shift(rng *rand.Rand, maxIdleShift int) {
	if len(s.sched) == 0 || maxIdleShift <= 0 {
		return
	}
	idx := rng.Intn(len(s.sched))
	chosen := s.sched[idx]

	var sameRes []int
	for i, b := range s.sched {
		if b.Resource == chosen.Resource {
			sameRes = append(sameRes, i)
		}
	}
	sort.SliceStable(sameRes, func(a, b int) bool {
		return s.sched[sameRes[a]].Start < s.sched[sameRes[b]].Start
	})

	pos := 0
	for i, bi := range sameRes {
		if bi == idx {
			pos = i
			break
		}
	}

	prevEnd := 0
	if pos > 0 {
		prevEnd = s.sched[sameRes[pos-1]].End
	}

	maxShift := maxIdleShift
	if back := chosen.Start - prevEnd; back < maxShift {
		maxShift = back
	}
	if pos < len(sameRes)-1 {
		if fwd := s.sched[sameRes[pos+1]].Start - chosen.End; fwd < maxShift {
			maxShift = fwd
		}
	}
	if maxShift <= 0 {
		return
	}

	shift := rng.Intn(2*maxShift+1) - maxShift
	s.sched[idx].Start += shift
	s.sched[idx].End += shift
}

func (s *batchSolution) maxDuration(tasks []int) int {
	maxDur := 0
	for _, t := range tasks {
		if d := s.p.Duration(t); d > maxDur {
			maxDur = d
		}
	}
	return maxDur
}

func (s *batchSolution) Cost() float64 {
	// Источник истины по стоимости — сам объект задачи.
	return s.p.EvaluateSolution(s.sched)
}

func (s *batchSolution) Schedule() []batch.Batch {
	return batch.SortedByStart(s.sched)
}

func (s *batchSolution) Clone() Solution {
	return &batchSolution{p: s.p, sched: batch.CloneSchedule(s.sched)}
}
