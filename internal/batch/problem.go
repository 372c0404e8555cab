package batch

import "math/rand"

// Problem is the contract the solvers work against. *Instance satisfies it,
// but any collaborator owning the task data may be plugged in instead.
type Problem interface {
	NbTasks() int
	NbResources() int

	// Resource returns the id of the resource task t is assigned to.
	// The assignment is fixed for the lifetime of the task.
	Resource(t int) int
	Type(t int) int
	Duration(t int) int
	Capacity(r int) int

	// Predecessors returns the tasks that must finish no later than
	// task t's batch starts.
	Predecessors(t int) []int

	// EvaluateSolution is the authoritative cost of a batch schedule.
	EvaluateSolution(sched []Batch) float64

	// RandomSolution builds an initial feasible batch list, one batch
	// per task, scheduled back to back on each resource.
	RandomSolution(rng *rand.Rand) []Batch
}
