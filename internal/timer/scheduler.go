// Package timer provides a game-time task scheduler. Time only moves when the
// owner calls Advance, so pausing the game pauses every pending task.
package timer

import (
	"container/heap"
	"time"
)

// Task is a scheduled callback.
type Task struct {
	deadline  time.Duration
	seq       uint64
	fn        func()
	index     int // Heap position, -1 once removed
	fired     bool
	cancelled bool
	owner     *Scheduler
}

// Cancel prevents the task from firing. It returns false if the task already
// fired or was already cancelled.
func (t *Task) Cancel() bool {
	if t == nil || t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	if t.index >= 0 && t.owner != nil {
		heap.Remove(&t.owner.queue, t.index)
	}
	return true
}

// Fired reports whether the callback has run.
func (t *Task) Fired() bool {
	return t != nil && t.fired
}

// Deadline returns the game time the task is due at.
func (t *Task) Deadline() time.Duration {
	return t.deadline
}

// Scheduler runs tasks against a manually advanced clock.
// Not safe for concurrent use; the game loop is its only caller.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue taskQueue
}

// New creates a scheduler at game time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current game time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once d of game time has elapsed.
// A non-positive d runs on the next Advance, including Advance(0).
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Task{
		deadline: s.now + d,
		seq:      s.seq,
		fn:       fn,
		owner:    s,
	}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock forward by d and runs every task that came due,
// in deadline order with ties broken by scheduling order. Tasks scheduled by
// a running callback fire in the same call if they fall due within it.
// It returns the number of tasks run.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := s.now + d
	ran := 0
	for len(s.queue) > 0 && s.queue[0].deadline <= target {
		t := heap.Pop(&s.queue).(*Task)
		if t.deadline > s.now {
			s.now = t.deadline
		}
		t.fired = true
		t.fn()
		ran++
	}
	s.now = target
	return ran
}

// Pending returns the number of tasks waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// CancelAll cancels every pending task.
func (s *Scheduler) CancelAll() {
	for _, t := range s.queue {
		t.cancelled = true
		t.index = -1
	}
	s.queue = s.queue[:0]
}

type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].deadline != q[j].deadline {
		return q[i].deadline < q[j].deadline
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
