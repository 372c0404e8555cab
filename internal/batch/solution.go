package batch

import (
	"fmt"
	"math/rand"
	"sort"
)

// Batch is a group of same-type tasks executed together on one resource.
// All tasks in a batch run in parallel and finish at End.
type Batch struct {
	Resource int   `json:"resource"`
	Tasks    []int `json:"tasks"`
	Start    int   `json:"start"`
	End      int   `json:"end"`
}

func (b Batch) Clone() Batch {
	tasks := make([]int, len(b.Tasks))
	copy(tasks, b.Tasks)
	b.Tasks = tasks
	return b
}

func CloneSchedule(sched []Batch) []Batch {
	out := make([]Batch, len(sched))
	for i, b := range sched {
		out[i] = b.Clone()
	}
	return out
}

// Ordering maps a resource id to the ordered sequence of its tasks.
// Resource membership is fixed; only the order varies.
type Ordering map[int][]int

func (ord Ordering) Clone() Ordering {
	out := make(Ordering, len(ord))
	for r, seq := range ord {
		cp := make([]int, len(seq))
		copy(cp, seq)
		out[r] = cp
	}
	return out
}

// ResourceIDs returns the ordering's resource ids in ascending order, so that
// random choices over resources replay deterministically under a fixed seed.
func (ord Ordering) ResourceIDs() []int {
	ids := make([]int, 0, len(ord))
	for r := range ord {
		ids = append(ids, r)
	}
	sort.Ints(ids)
	return ids
}

// ValidateOrdering checks that every task of the problem appears exactly once,
// in the sequence of its own resource.
func ValidateOrdering(ord Ordering, p Problem) error {
	n := p.NbTasks()
	seen := make([]bool, n)
	total := 0
	for r, seq := range ord {
		for i, t := range seq {
			if t < 0 || t >= n {
				return fmt.Errorf("ordering[%d][%d]=%d out of range [0,%d)", r, i, t, n)
			}
			if seen[t] {
				return fmt.Errorf("duplicate task %d in ordering", t)
			}
			if p.Resource(t) != r {
				return fmt.Errorf("task %d listed under resource %d but belongs to %d", t, r, p.Resource(t))
			}
			seen[t] = true
			total++
		}
	}
	if total != n {
		return fmt.Errorf("ordering covers %d tasks (want %d)", total, n)
	}
	return nil
}

// ValidateSchedule checks the batch invariants: every task exactly once, each
// batch non-empty, type-homogeneous, within its resource's capacity, and with
// End = Start + max task duration.
func ValidateSchedule(sched []Batch, p Problem) error {
	n := p.NbTasks()
	seen := make([]bool, n)
	total := 0
	for i, b := range sched {
		if len(b.Tasks) == 0 {
			return fmt.Errorf("batch %d is empty", i)
		}
		if b.Resource < 0 || b.Resource >= p.NbResources() {
			return fmt.Errorf("batch %d: resource %d out of range", i, b.Resource)
		}
		if len(b.Tasks) > p.Capacity(b.Resource) {
			return fmt.Errorf("batch %d: %d tasks exceed capacity %d of resource %d",
				i, len(b.Tasks), p.Capacity(b.Resource), b.Resource)
		}
		ty := p.Type(b.Tasks[0])
		maxDur := 0
		for _, t := range b.Tasks {
			if t < 0 || t >= n {
				return fmt.Errorf("batch %d: task %d out of range [0,%d)", i, t, n)
			}
			if seen[t] {
				return fmt.Errorf("task %d appears in more than one batch", t)
			}
			if p.Resource(t) != b.Resource {
				return fmt.Errorf("batch %d: task %d belongs to resource %d, not %d", i, t, p.Resource(t), b.Resource)
			}
			if p.Type(t) != ty {
				return fmt.Errorf("batch %d mixes types %d and %d", i, ty, p.Type(t))
			}
			if d := p.Duration(t); d > maxDur {
				maxDur = d
			}
			seen[t] = true
			total++
		}
		if b.End-b.Start != maxDur {
			return fmt.Errorf("batch %d: span %d differs from max duration %d", i, b.End-b.Start, maxDur)
		}
	}
	if total != n {
		return fmt.Errorf("schedule covers %d tasks (want %d)", total, n)
	}
	return nil
}

func shuffleSeq(seq []int, rng *rand.Rand) {
	for i := len(seq) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		seq[i], seq[j] = seq[j], seq[i]
	}
}

func sortByStart(sched []Batch) {
	sort.SliceStable(sched, func(i, j int) bool {
		return sched[i].Start < sched[j].Start
	})
}

// SortedByStart returns a copy of the schedule ordered by start time.
func SortedByStart(sched []Batch) []Batch {
	out := CloneSchedule(sched)
	sortByStart(out)
	return out
}
