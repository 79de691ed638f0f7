package timer

import (
	"strings"
	"testing"
	"time"
)

func TestAdvanceFiresInOrder(t *testing.T) {
	s := New()
	var got []string
	s.After(3*time.Second, func() { got = append(got, "c") })
	s.After(1*time.Second, func() { got = append(got, "a") })
	s.After(3*time.Second, func() { got = append(got, "d") })
	s.After(2*time.Second, func() { got = append(got, "b") })

	if n := s.Advance(2 * time.Second); n != 2 {
		t.Errorf("Advance(2s) ran %d, expected 2", n)
	}
	if n := s.Advance(time.Second); n != 2 {
		t.Errorf("Advance(1s) ran %d, expected 2", n)
	}

	want := "abcd"
	if joined := strings.Join(got, ""); joined != want {
		t.Errorf("order = %s, expected %s", joined, want)
	}
	if s.Now() != 3*time.Second {
		t.Errorf("Now() = %v, expected 3s", s.Now())
	}
}

func TestFiresExactlyAtDeadline(t *testing.T) {
	s := New()
	task := s.After(3*time.Second, func() {})

	s.Advance(2999 * time.Millisecond)
	if task.Fired() {
		t.Fatal("fired before deadline")
	}
	s.Advance(time.Millisecond)
	if !task.Fired() {
		t.Fatal("did not fire at deadline")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
}

func TestCancel(t *testing.T) {
	s := New()
	ran := false
	task := s.After(time.Second, func() { ran = true })
	other := s.After(time.Second, func() {})

	if !task.Cancel() {
		t.Fatal("Cancel() = false on pending task")
	}
	if task.Cancel() {
		t.Error("second Cancel() = true")
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", s.Pending())
	}

	s.Advance(5 * time.Second)
	if ran {
		t.Error("cancelled task ran")
	}
	if !other.Fired() {
		t.Error("sibling task did not fire")
	}
	if other.Cancel() {
		t.Error("Cancel() = true on fired task")
	}
}

func TestCancelAll(t *testing.T) {
	s := New()
	ran := 0
	tasks := []*Task{
		s.After(time.Second, func() { ran++ }),
		s.After(2*time.Second, func() { ran++ }),
	}
	s.CancelAll()
	s.Advance(time.Minute)

	if ran != 0 {
		t.Errorf("%d tasks ran after CancelAll", ran)
	}
	for i, task := range tasks {
		if task.Cancel() {
			t.Errorf("task %d still cancellable after CancelAll", i)
		}
	}
}

func TestScheduleWhileFiring(t *testing.T) {
	s := New()
	var at []time.Duration
	s.After(time.Second, func() {
		at = append(at, s.Now())
		s.After(time.Second, func() { at = append(at, s.Now()) })
		s.After(10*time.Second, func() { at = append(at, s.Now()) })
	})

	s.Advance(3 * time.Second)
	if len(at) != 2 || at[0] != time.Second || at[1] != 2*time.Second {
		t.Errorf("fire times = %v, expected [1s 2s]", at)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", s.Pending())
	}
}

func TestZeroDelay(t *testing.T) {
	s := New()
	task := s.After(-time.Second, func() {})
	if task.Fired() {
		t.Fatal("ran synchronously")
	}
	s.Advance(0)
	if !task.Fired() {
		t.Error("zero-delay task did not fire on Advance(0)")
	}
}
