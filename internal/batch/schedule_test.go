package batch

import (
	"math/rand"
	"reflect"
	"testing"
)

func mustInstance(t *testing.T, tasks, resources int, types, durations, taskResources, capacities []int, preds [][]int) *Instance {
	t.Helper()
	inst, err := NewInstance(tasks, resources, types, durations, taskResources, capacities, preds)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	return inst
}

func TestConstructScheduleSingleBatch(t *testing.T) {
	// Two same-type tasks on one resource with capacity 2: one batch,
	// the slower task dictates the end.
	inst := mustInstance(t, 2, 1,
		[]int{0, 0},
		[]int{3, 5},
		[]int{0, 0},
		[]int{2},
		nil,
	)

	sched := ConstructSchedule(inst, Ordering{0: {0, 1}})
	if len(sched) != 1 {
		t.Fatalf("got %d batches, want 1", len(sched))
	}
	b := sched[0]
	if !reflect.DeepEqual(b.Tasks, []int{0, 1}) {
		t.Errorf("tasks = %v, want [0 1]", b.Tasks)
	}
	if b.Start != 0 || b.End != 5 {
		t.Errorf("batch spans [%d,%d], want [0,5]", b.Start, b.End)
	}
}

func TestConstructScheduleCapacityOne(t *testing.T) {
	// Capacity 1 forces separate sequential batches.
	inst := mustInstance(t, 2, 1,
		[]int{0, 0},
		[]int{2, 4},
		[]int{0, 0},
		[]int{1},
		nil,
	)

	sched := ConstructSchedule(inst, Ordering{0: {0, 1}})
	if len(sched) != 2 {
		t.Fatalf("got %d batches, want 2", len(sched))
	}
	if sched[0].Start != 0 || sched[0].End != 2 {
		t.Errorf("first batch spans [%d,%d], want [0,2]", sched[0].Start, sched[0].End)
	}
	if sched[1].Start != 2 || sched[1].End != 6 {
		t.Errorf("second batch spans [%d,%d], want [2,6]", sched[1].Start, sched[1].End)
	}
}

func TestConstructScheduleTypeBreak(t *testing.T) {
	// A type change interrupts the batch even when capacity remains.
	inst := mustInstance(t, 3, 1,
		[]int{0, 1, 0},
		[]int{2, 2, 2},
		[]int{0, 0, 0},
		[]int{5},
		nil,
	)

	sched := ConstructSchedule(inst, Ordering{0: {0, 1, 2}})
	if len(sched) != 3 {
		t.Fatalf("got %d batches, want 3", len(sched))
	}
}

func TestConstructScheduleInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inst := RandomInstance(40, 4, 3, 4, 1, 99, 0, rng)

	ord := make(Ordering)
	for task := 0; task < inst.Tasks; task++ {
		r := inst.TaskResources[task]
		ord[r] = append(ord[r], task)
	}
	for _, r := range ord.ResourceIDs() {
		shuffleSeq(ord[r], rng)
	}

	sched := ConstructSchedule(inst, ord)
	if err := ValidateSchedule(sched, inst); err != nil {
		t.Fatalf("constructed schedule violates invariants: %v", err)
	}

	for i := 1; i < len(sched); i++ {
		if sched[i].Start < sched[i-1].Start {
			t.Fatalf("schedule not sorted by start at %d", i)
		}
	}
}

func TestConstructScheduleIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	inst := RandomInstance(25, 3, 2, 3, 1, 50, 0.1, rng)

	ord := make(Ordering)
	for task := 0; task < inst.Tasks; task++ {
		r := inst.TaskResources[task]
		ord[r] = append(ord[r], task)
	}

	first := ConstructSchedule(inst, ord)
	second := ConstructSchedule(inst, ord)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("two constructions of the same ordering differ")
	}

	aFirst, _, _ := ConstructScheduleAware(inst, ord)
	aSecond, _, _ := ConstructScheduleAware(inst, ord)
	if !reflect.DeepEqual(aFirst, aSecond) {
		t.Fatal("two precedence-aware constructions of the same ordering differ")
	}
}

func TestConstructScheduleAwareWaitsForPredecessor(t *testing.T) {
	// Task 1 on resource 1 depends on task 0 on resource 0; its batch
	// may not start before task 0 finishes.
	inst := mustInstance(t, 2, 2,
		[]int{0, 0},
		[]int{6, 2},
		[]int{0, 1},
		[]int{1, 1},
		[][]int{nil, {0}},
	)

	sched, finish, pending := ConstructScheduleAware(inst, Ordering{0: {0}, 1: {1}})
	if pending != 0 {
		t.Fatalf("pending = %d, want 0", pending)
	}
	if finish[0] != 6 {
		t.Errorf("finish[0] = %d, want 6", finish[0])
	}
	var b1 Batch
	for _, b := range sched {
		if b.Resource == 1 {
			b1 = b
		}
	}
	if b1.Start != 6 || b1.End != 8 {
		t.Errorf("dependent batch spans [%d,%d], want [6,8]", b1.Start, b1.End)
	}
}

func TestConstructScheduleAwareCountsUnscheduled(t *testing.T) {
	// Resource 0 is walked before resource 1, so task 0's predecessor on
	// resource 1 has no finish time yet: counted, not blocking.
	inst := mustInstance(t, 2, 2,
		[]int{0, 0},
		[]int{3, 3},
		[]int{0, 1},
		[]int{1, 1},
		[][]int{{1}, nil},
	)

	_, _, pending := ConstructScheduleAware(inst, Ordering{0: {0}, 1: {1}})
	if pending != 1 {
		t.Fatalf("pending = %d, want 1", pending)
	}
}
