package batch

import (
	"errors"
	"fmt"
	"math/rand"
)

type Instance struct {
	Tasks     int
	Resources int

	// All task attribute slices have length Tasks.
	Types         []int
	Durations     []int
	TaskResources []int
	Preds         [][]int

	// Capacities has length Resources.
	Capacities []int
}

func NewInstance(tasks, resources int, types, durations, taskResources, capacities []int, preds [][]int) (*Instance, error) {
	inst := &Instance{
		Tasks:         tasks,
		Resources:     resources,
		Types:         types,
		Durations:     durations,
		TaskResources: taskResources,
		Preds:         preds,
		Capacities:    capacities,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Tasks <= 0 {
		return fmt.Errorf("tasks must be > 0 (got %d)", inst.Tasks)
	}
	if inst.Resources <= 0 {
		return fmt.Errorf("resources must be > 0 (got %d)", inst.Resources)
	}
	if len(inst.Types) != inst.Tasks {
		return fmt.Errorf("types length must be %d (got %d)", inst.Tasks, len(inst.Types))
	}
	if len(inst.Durations) != inst.Tasks {
		return fmt.Errorf("durations length must be %d (got %d)", inst.Tasks, len(inst.Durations))
	}
	if len(inst.TaskResources) != inst.Tasks {
		return fmt.Errorf("taskResources length must be %d (got %d)", inst.Tasks, len(inst.TaskResources))
	}
	if len(inst.Capacities) != inst.Resources {
		return fmt.Errorf("capacities length must be %d (got %d)", inst.Resources, len(inst.Capacities))
	}
	if inst.Preds != nil && len(inst.Preds) != inst.Tasks {
		return fmt.Errorf("preds length must be %d (got %d)", inst.Tasks, len(inst.Preds))
	}
	for t, d := range inst.Durations {
		if d <= 0 {
			return fmt.Errorf("durations[%d] must be > 0 (got %d)", t, d)
		}
	}
	for t, r := range inst.TaskResources {
		if r < 0 || r >= inst.Resources {
			return fmt.Errorf("taskResources[%d]=%d out of range [0,%d)", t, r, inst.Resources)
		}
	}
	for r, c := range inst.Capacities {
		if c <= 0 {
			return fmt.Errorf("capacities[%d] must be > 0 (got %d)", r, c)
		}
	}
	for t, preds := range inst.Preds {
		for _, p := range preds {
			if p < 0 || p >= inst.Tasks {
				return fmt.Errorf("preds[%d] contains %d out of range [0,%d)", t, p, inst.Tasks)
			}
			if p == t {
				return fmt.Errorf("preds[%d] contains the task itself", t)
			}
		}
	}
	return nil
}

func (inst *Instance) NbTasks() int     { return inst.Tasks }
func (inst *Instance) NbResources() int { return inst.Resources }

func (inst *Instance) Resource(t int) int { return inst.TaskResources[t] }
func (inst *Instance) Type(t int) int     { return inst.Types[t] }
func (inst *Instance) Duration(t int) int { return inst.Durations[t] }
func (inst *Instance) Capacity(r int) int { return inst.Capacities[r] }

func (inst *Instance) Predecessors(t int) []int {
	if inst.Preds == nil {
		return nil
	}
	return inst.Preds[t]
}

// EvaluateSolution delegates to the shared cost function so that scoring a
// constructed schedule here and scoring it through an Evaluator agree.
func (inst *Instance) EvaluateSolution(sched []Batch) float64 {
	return scheduleCost(inst, sched)
}

// RandomSolution builds the canonical starting point of the batch-list
// representation: every task in its own batch, tasks of each resource
// scheduled back to back in random order.
func (inst *Instance) RandomSolution(rng *rand.Rand) []Batch {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	byResource := make([][]int, inst.Resources)
	for t := 0; t < inst.Tasks; t++ {
		r := inst.TaskResources[t]
		byResource[r] = append(byResource[r], t)
	}

	sched := make([]Batch, 0, inst.Tasks)
	for r := 0; r < inst.Resources; r++ {
		seq := byResource[r]
		shuffleSeq(seq, rng)
		current := 0
		for _, t := range seq {
			end := current + inst.Durations[t]
			sched = append(sched, Batch{
				Resource: r,
				Tasks:    []int{t},
				Start:    current,
				End:      end,
			})
			current = end
		}
	}
	sortByStart(sched)
	return sched
}

func RandomInstance(tasks, resources, types, maxCapacity, minDur, maxDur int, predProb float64, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if tasks <= 0 || resources <= 0 || types <= 0 || maxCapacity <= 0 {
		panic("invalid instance shape")
	}
	if minDur <= 0 || maxDur < minDur {
		panic("invalid duration bounds")
	}
	if predProb < 0 || predProb > 1 {
		panic("invalid predecessor probability")
	}

	ty := make([]int, tasks)
	du := make([]int, tasks)
	tr := make([]int, tasks)
	span := maxDur - minDur + 1
	for t := 0; t < tasks; t++ {
		ty[t] = rng.Intn(types)
		du[t] = minDur
		if span > 1 {
			du[t] += rng.Intn(span)
		}
		tr[t] = rng.Intn(resources)
	}

	caps := make([]int, resources)
	for r := range caps {
		caps[r] = 1 + rng.Intn(maxCapacity)
	}

	// Predecessor edges point from lower to higher indices, keeping the
	// precedence relation acyclic.
	var preds [][]int
	if predProb > 0 {
		preds = make([][]int, tasks)
		for t := 1; t < tasks; t++ {
			for p := 0; p < t; p++ {
				if rng.Float64() < predProb {
					preds[t] = append(preds[t], p)
				}
			}
		}
	}

	inst, err := NewInstance(tasks, resources, ty, du, tr, caps, preds)
	if err != nil {
		panic(err)
	}
	return inst
}
