package timer

import (
	"fmt"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestQueueRunsDueTasksInOrder(t *testing.T) {
	q := NewQueue(epoch)
	var order []string

	q.After(2*time.Second, func() { order = append(order, "late") })
	q.After(time.Second, func() { order = append(order, "early") })
	q.After(time.Second, func() { order = append(order, "early2") })

	if ran := q.Advance(epoch.Add(500 * time.Millisecond)); ran != 0 {
		t.Fatalf("Advance before due ran %d tasks", ran)
	}
	if ran := q.Advance(epoch.Add(time.Second)); ran != 2 {
		t.Fatalf("Advance at 1s ran %d tasks, expected 2", ran)
	}
	q.Advance(epoch.Add(3 * time.Second))

	if fmt.Sprint(order) != "[early early2 late]" {
		t.Errorf("order = %v", order)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", q.Len())
	}
}

func TestQueueCancel(t *testing.T) {
	q := NewQueue(epoch)
	ran := false
	task := q.After(time.Second, func() { ran = true })

	if !task.Pending() {
		t.Error("new task should be pending")
	}
	task.Cancel()
	task.Cancel()
	q.Advance(epoch.Add(time.Minute))

	if ran {
		t.Error("cancelled task ran")
	}
	if task.Pending() {
		t.Error("cancelled task should not be pending")
	}
}

func TestQueueCancelAll(t *testing.T) {
	q := NewQueue(epoch)
	count := 0
	for i := 0; i < 3; i++ {
		q.After(time.Duration(i)*time.Second, func() { count++ })
	}

	q.CancelAll()
	q.Advance(epoch.Add(time.Hour))

	if count != 0 {
		t.Errorf("%d tasks ran after CancelAll", count)
	}
}

func TestQueueTaskSchedulesFollowUp(t *testing.T) {
	q := NewQueue(epoch)
	var order []string

	q.After(time.Second, func() {
		order = append(order, "first")
		q.After(0, func() { order = append(order, "chained") })
		q.After(time.Second, func() { order = append(order, "later") })
	})

	q.Advance(epoch.Add(time.Second))
	if fmt.Sprint(order) != "[first chained]" {
		t.Fatalf("order = %v, expected [first chained]", order)
	}

	q.Advance(epoch.Add(2 * time.Second))
	if fmt.Sprint(order) != "[first chained later]" {
		t.Errorf("order = %v", order)
	}
}

func TestQueueClockNeverGoesBack(t *testing.T) {
	q := NewQueue(epoch)
	q.Advance(epoch.Add(time.Second))
	q.Advance(epoch)

	if !q.Now().Equal(epoch.Add(time.Second)) {
		t.Errorf("Now() = %v, clock moved backwards", q.Now())
	}
}

func TestNilTaskCancel(t *testing.T) {
	var task *Task
	task.Cancel() // should not panic
	if task.Pending() {
		t.Error("nil task should not be pending")
	}
}
