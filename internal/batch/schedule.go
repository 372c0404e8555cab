package batch

// ConstructSchedule derives the batch schedule implied by a per-resource task
// ordering. Walking each sequence left to right, consecutive tasks of the same
// type are grouped up to the resource's capacity; a batch spans the max
// duration of its tasks and the next batch starts when it ends. The result is
// sorted by start time. Pure function: no randomness, no hidden state.
func ConstructSchedule(p Problem, ord Ordering) []Batch {
	sched := make([]Batch, 0, p.NbTasks())
	for _, r := range ord.ResourceIDs() {
		seq := ord[r]
		current := 0
		i := 0
		for i < len(seq) {
			tasks, maxDur := takeBatch(p, seq, i, p.Capacity(r))
			i += len(tasks)
			sched = append(sched, Batch{
				Resource: r,
				Tasks:    tasks,
				Start:    current,
				End:      current + maxDur,
			})
			current += maxDur
		}
	}
	sortByStart(sched)
	return sched
}

// ConstructScheduleAware is the precedence-aware variant: a batch additionally
// waits for the recorded finish time of every predecessor of every task in it.
// A predecessor whose finish time is not yet known does not block; each such
// occurrence is counted and returned as pending, to be priced by the
// evaluator. The second return value maps each task to its finish time.
func ConstructScheduleAware(p Problem, ord Ordering) ([]Batch, map[int]int, int) {
	finish := make(map[int]int, p.NbTasks())
	pending := 0

	sched := make([]Batch, 0, p.NbTasks())
	for _, r := range ord.ResourceIDs() {
		seq := ord[r]
		current := 0
		i := 0
		for i < len(seq) {
			tasks, maxDur := takeBatch(p, seq, i, p.Capacity(r))
			i += len(tasks)

			start := current
			for _, t := range tasks {
				for _, pr := range p.Predecessors(t) {
					f, ok := finish[pr]
					if !ok {
						pending++
						continue
					}
					if f > start {
						start = f
					}
				}
			}

			end := start + maxDur
			for _, t := range tasks {
				finish[t] = end
			}
			sched = append(sched, Batch{
				Resource: r,
				Tasks:    tasks,
				Start:    start,
				End:      end,
			})
			current = end
		}
	}
	sortByStart(sched)
	return sched, finish, pending
}

// takeBatch collects the longest run of same-type tasks starting at position i,
// capped by capacity, and reports the max duration over the run.
func takeBatch(p Problem, seq []int, i, capacity int) ([]int, int) {
	ty := p.Type(seq[i])
	tasks := make([]int, 0, capacity)
	maxDur := 0
	for i < len(seq) && len(tasks) < capacity && p.Type(seq[i]) == ty {
		t := seq[i]
		tasks = append(tasks, t)
		if d := p.Duration(t); d > maxDur {
			maxDur = d
		}
		i++
	}
	return tasks, maxDur
}
