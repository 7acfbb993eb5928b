package reactive

// JobQueue collects effects for deferred execution. Each effect is queued at
// most once between flushes, and flushes run effects in the order they were
// first scheduled.
//
// Pass q.Schedule to WithScheduler to route an effect's re-runs through the
// queue.
type JobQueue struct {
	jobs  []*Effect
	seen  map[*Effect]bool
	depth int

	// flushing guards against re-entrant Flush from inside a job.
	flushing bool
}

// NewJobQueue creates an empty queue.
func NewJobQueue() *JobQueue {
	return &JobQueue{seen: make(map[*Effect]bool)}
}

// Schedule queues e unless it is already pending.
func (q *JobQueue) Schedule(e *Effect) {
	if q.seen[e] {
		return
	}
	q.seen[e] = true
	q.jobs = append(q.jobs, e)
}

// Pending returns the number of queued effects.
func (q *JobQueue) Pending() int {
	return len(q.jobs)
}

// Flush runs every queued effect and returns how many ran. Effects scheduled
// while flushing are run in the same flush. Stopped effects are skipped.
func (q *JobQueue) Flush() int {
	if q.flushing {
		return 0
	}
	q.flushing = true
	defer func() { q.flushing = false }()

	ran := 0
	for len(q.jobs) > 0 {
		jobs := q.jobs
		q.jobs = nil
		for _, e := range jobs {
			delete(q.seen, e)
			if e.Stopped() {
				continue
			}
			e.Run()
			ran++
		}
	}
	return ran
}

// Batch runs fn and flushes the queue when the outermost Batch returns.
// Batches nest.
func (q *JobQueue) Batch(fn func()) {
	q.depth++
	defer func() {
		q.depth--
		if q.depth == 0 {
			q.Flush()
		}
	}()
	fn()
}
