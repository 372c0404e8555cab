package batch

import "fmt"

// PredPenalty is the fixed cost added per precedence violation. Large enough
// to dominate any realistic makespan, finite so the search can still move
// through and out of infeasible regions.
const PredPenalty = 1000.0

type Evaluator struct {
	p Problem
}

func NewEvaluator(p Problem) (*Evaluator, error) {
	if p == nil {
		return nil, fmt.Errorf("nil problem")
	}
	return &Evaluator{p: p}, nil
}

// Cost scores an already-constructed batch schedule: makespan plus PredPenalty
// per precedence violation found in a global pass over all task pairs (t, p)
// with p a predecessor of t. A predecessor with no recorded finish time counts
// as a violation too.
func (e *Evaluator) Cost(sched []Batch) float64 {
	return scheduleCost(e.p, sched)
}

// EvaluateOrdering builds the precedence-aware schedule for the ordering and
// scores it. Predecessors that were still unscheduled when their dependent's
// batch was placed are priced like violations. The returned finish-time map is
// diagnostic only; it is rebuilt on every call and must not be retained across
// evaluations.
func (e *Evaluator) EvaluateOrdering(ord Ordering) (float64, map[int]int) {
	sched, finish, pending := ConstructScheduleAware(e.p, ord)

	makespan := 0
	for _, b := range sched {
		if b.End > makespan {
			makespan = b.End
		}
	}
	violations := pending + countViolations(e.p, finish)
	return float64(makespan) + PredPenalty*float64(violations), finish
}

func scheduleCost(p Problem, sched []Batch) float64 {
	makespan := 0
	finish := make(map[int]int, p.NbTasks())
	for _, b := range sched {
		if b.End > makespan {
			makespan = b.End
		}
		for _, t := range b.Tasks {
			finish[t] = b.End
		}
	}
	return float64(makespan) + PredPenalty*float64(countViolations(p, finish))
}

func countViolations(p Problem, finish map[int]int) int {
	violations := 0
	for t := 0; t < p.NbTasks(); t++ {
		ft, ok := finish[t]
		if !ok {
			continue
		}
		for _, pr := range p.Predecessors(t) {
			fp, known := finish[pr]
			if !known || fp > ft {
				violations++
			}
		}
	}
	return violations
}
