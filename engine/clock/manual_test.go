package clock

import (
	"testing"
	"time"
)

func TestManualTimersFireInDeadlineOrder(t *testing.T) {
	m := NewManual()
	var order []string
	m.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(200*time.Millisecond, func() { order = append(order, "c") })

	m.Advance(150 * time.Millisecond)
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("after 150ms: %v", order)
	}

	m.Advance(50 * time.Millisecond)
	if len(order) != 3 || order[1] != "b" || order[2] != "c" {
		t.Fatalf("after 200ms: %v", order)
	}
	if m.Now() != 200*time.Millisecond {
		t.Fatalf("Now = %v", m.Now())
	}
}

func TestManualStop(t *testing.T) {
	m := NewManual()
	fired := false
	timer := m.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("first Stop should report true")
	}
	if timer.Stop() {
		t.Fatal("second Stop should report false")
	}
	m.Advance(2 * time.Second)
	if fired {
		t.Fatal("stopped timer fired")
	}
}

func TestManualRescheduleFromCallback(t *testing.T) {
	m := NewManual()
	count := 0
	var tick func()
	tick = func() {
		count++
		m.AfterFunc(100*time.Millisecond, tick)
	}
	m.AfterFunc(100*time.Millisecond, tick)

	m.Advance(550 * time.Millisecond)
	if count != 5 {
		t.Fatalf("expected 5 ticks in 550ms, got %d", count)
	}
	if m.PendingTimers() != 1 {
		t.Fatalf("expected one pending timer, got %d", m.PendingTimers())
	}
}

func TestManualFrame(t *testing.T) {
	m := NewManual()
	var stamps []time.Duration
	var loop FrameCallback
	loop = func(ts time.Duration) {
		stamps = append(stamps, ts)
		m.RequestAnimationFrame(loop)
	}
	m.RequestAnimationFrame(loop)

	m.FrameAt(16 * time.Millisecond)
	m.FrameAt(33 * time.Millisecond)

	if len(stamps) != 2 || stamps[0] != 16*time.Millisecond || stamps[1] != 33*time.Millisecond {
		t.Fatalf("unexpected frame stamps %v", stamps)
	}
	if m.PendingFrames() != 1 {
		t.Fatalf("expected the loop to be rescheduled, got %d pending", m.PendingFrames())
	}
}
