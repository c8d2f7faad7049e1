package clock

import (
	"testing"
	"time"
)

func TestRealtimeAfterFuncAndStop(t *testing.T) {
	r := NewRealtime()
	defer r.Close()

	fired := make(chan struct{}, 1)
	r.AfterFunc(10*time.Millisecond, func() { fired <- struct{}{} })

	stoppedFired := make(chan struct{}, 1)
	stopped := r.AfterFunc(10*time.Millisecond, func() { stoppedFired <- struct{}{} })
	if !stopped.Stop() {
		t.Fatal("expected Stop to cancel a pending timer")
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}

	select {
	case <-stoppedFired:
		t.Fatal("stopped timer fired")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRealtimePostIsSerial(t *testing.T) {
	r := NewRealtime()
	defer r.Close()

	const n = 50
	results := make(chan int, n)
	for i := 0; i < n; i++ {
		r.Post(func() { results <- i })
	}

	for want := 0; want < n; want++ {
		select {
		case got := <-results:
			if got != want {
				t.Fatalf("callback %d ran out of order (got %d)", want, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("callback %d never ran", want)
		}
	}
}

func TestRealtimeFrames(t *testing.T) {
	r := NewRealtime(WithFrameRate(120))
	defer r.Close()

	got := make(chan time.Duration, 1)
	r.RequestAnimationFrame(func(ts time.Duration) { got <- ts })

	select {
	case ts := <-got:
		if ts <= 0 {
			t.Fatalf("expected a positive timestamp, got %v", ts)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("frame callback never ran")
	}
}

func TestRealtimeDo(t *testing.T) {
	r := NewRealtime()
	defer r.Close()

	ran := false
	if err := r.Do(func() error { ran = true; return nil }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !ran {
		t.Fatal("callback did not run before Do returned")
	}

	if err := r.Do(func() error { panic("boom") }); err == nil {
		t.Fatal("expected a panicking callback to surface as an error")
	}
}

func TestRealtimeQueueSize(t *testing.T) {
	r := NewRealtime(WithQueueSize(4))
	defer r.Close()
	if r.queueSize != 4 {
		t.Fatalf("queueSize = %d, want 4", r.queueSize)
	}

	for i := 0; i < 20; i++ {
		if err := r.Do(func() error { return nil }); err != nil {
			t.Fatalf("Do %d: %v", i, err)
		}
	}

	defaulted := NewRealtime(WithQueueSize(0))
	defer defaulted.Close()
	if defaulted.queueSize != 256 {
		t.Fatalf("non-positive size should keep the default, got %d", defaulted.queueSize)
	}
}
