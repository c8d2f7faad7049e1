//go:build js && wasm

package clock

import (
	"syscall/js"
	"time"
)

// Browser schedules callbacks on the page's event loop with setTimeout and requestAnimationFrame.
type Browser struct {
	window      js.Value
	performance js.Value
}

var (
	_ Scheduler  = &Browser{}
	_ FrameClock = &Browser{}
)

// browserTimer is a pending setTimeout.
type browserTimer struct {
	window js.Value
	handle js.Value
	fn     js.Func
	done   bool
}

// NewBrowser returns a clock bound to the global window.
//
// Returns:
//   - *Browser: the clock
func NewBrowser() *Browser {
	w := js.Global().Get("window")
	return &Browser{window: w, performance: w.Get("performance")}
}

func (b *Browser) Now() time.Duration {
	return msToDuration(b.performance.Call("now").Float())
}

func (b *Browser) AfterFunc(d time.Duration, fn func()) Timer {
	t := &browserTimer{window: b.window}
	t.fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		t.done = true
		t.fn.Release()
		fn()
		return nil
	})
	t.handle = b.window.Call("setTimeout", t.fn, float64(d)/float64(time.Millisecond))
	return t
}

func (t *browserTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.window.Call("clearTimeout", t.handle)
	t.fn.Release()
	return true
}

func (b *Browser) RequestAnimationFrame(fn FrameCallback) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		ts := b.Now()
		if len(args) > 0 && args[0].Type() == js.TypeNumber {
			ts = msToDuration(args[0].Float())
		}
		fn(ts)
		return nil
	})
	b.window.Call("requestAnimationFrame", cb)
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
