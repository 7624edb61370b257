// Package timer schedules one-shot callbacks on the caller's event loop.
//
// Nothing runs on its own goroutine: the owner calls Advance with the current
// time (the TUI does it on every tick) and due callbacks run inline, in due
// order. This keeps game state single-threaded.
package timer

import (
	"sort"
	"time"
)

// Task is a scheduled callback. Cancel drops it if it has not run yet.
type Task struct {
	due       time.Time
	seq       uint64
	fn        func()
	done      bool
	cancelled bool
}

// Cancel prevents the task from running. Safe to call more than once and
// after the task has run.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Pending reports whether the task is still waiting to run.
func (t *Task) Pending() bool {
	return t != nil && !t.done && !t.cancelled
}

// Due returns when the task is scheduled to run.
func (t *Task) Due() time.Time {
	return t.due
}

// Queue holds pending tasks ordered by due time.
type Queue struct {
	now   time.Time
	seq   uint64
	tasks []*Task
}

// NewQueue creates a queue whose clock starts at now.
func NewQueue(now time.Time) *Queue {
	return &Queue{now: now}
}

// Now returns the queue's notion of the current time, which is the time
// passed to the last Advance.
func (q *Queue) Now() time.Time {
	return q.now
}

// After schedules fn to run d after the queue's current time.
func (q *Queue) After(d time.Duration, fn func()) *Task {
	q.seq++
	t := &Task{due: q.now.Add(d), seq: q.seq, fn: fn}
	q.tasks = append(q.tasks, t)
	return t
}

// Advance moves the clock to now and runs every pending task that is due.
// Tasks scheduled by a running callback are considered in the same pass when
// they are already due. Returns the number of callbacks run.
func (q *Queue) Advance(now time.Time) int {
	if now.After(q.now) {
		q.now = now
	}

	ran := 0
	for {
		next := q.popDue()
		if next == nil {
			return ran
		}
		next.done = true
		next.fn()
		ran++
	}
}

// popDue removes and returns the earliest due task, or nil.
func (q *Queue) popDue() *Task {
	q.compact()
	if len(q.tasks) == 0 {
		return nil
	}
	sort.SliceStable(q.tasks, func(i, j int) bool {
		if q.tasks[i].due.Equal(q.tasks[j].due) {
			return q.tasks[i].seq < q.tasks[j].seq
		}
		return q.tasks[i].due.Before(q.tasks[j].due)
	})
	head := q.tasks[0]
	if head.due.After(q.now) {
		return nil
	}
	q.tasks = q.tasks[1:]
	return head
}

// compact drops cancelled tasks.
func (q *Queue) compact() {
	kept := q.tasks[:0]
	for _, t := range q.tasks {
		if !t.cancelled {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(q.tasks); i++ {
		q.tasks[i] = nil
	}
	q.tasks = kept
}

// CancelAll cancels every pending task. Used on teardown.
func (q *Queue) CancelAll() {
	for _, t := range q.tasks {
		t.cancelled = true
	}
	q.tasks = nil
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	q.compact()
	return len(q.tasks)
}
