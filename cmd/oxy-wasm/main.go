//go:build js && wasm

// Command oxy-wasm is the page-side control layer compiled to WebAssembly. It waits for the
// host render module, binds the page controls to it and exposes the UI entry points on
// globalThis.Alice2UI.
package main

import (
	"syscall/js"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine"
	"github.com/Carmen-Shannon/oxy-controls/engine/clock"
	"github.com/Carmen-Shannon/oxy-controls/engine/config"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
	"github.com/Carmen-Shannon/oxy-controls/engine/host"
	"github.com/Carmen-Shannon/oxy-controls/engine/renderer"
)

func main() {
	logger := common.ComponentLogger("wasm")

	panel, err := config.Default()
	if err != nil {
		logger.Error("invalid built-in panel", "error", err)
		return
	}

	browser := clock.NewBrowser()
	win := dom.NewBrowserWindow()
	options := append(panel.EngineOptions(),
		engine.WithModule(host.NewBrowserModule(panel.Host.Container, panel.Host.Prefix)),
		engine.WithDocument(dom.NewBrowserDocument()),
		engine.WithWindow(win),
		engine.WithScheduler(browser),
		engine.WithFrameClock(browser),
		engine.WithBackendProbe(renderer.BackendAvailable),
	)
	eng := engine.NewEngine(options...)

	js.Global().Set("Alice2UI", js.ValueOf(map[string]any{
		"showPerformanceInfo": js.FuncOf(func(js.Value, []js.Value) any {
			eng.ShowPerformanceInfo()
			return nil
		}),
		"handleResize": js.FuncOf(func(js.Value, []js.Value) any {
			eng.HandleResize()
			return nil
		}),
		"state": js.FuncOf(func(js.Value, []js.Value) any {
			return eng.State().String()
		}),
	}))

	// The module may be instantiated after the load event has already fired.
	if js.Global().Get("document").Get("readyState").String() == "complete" {
		eng.HandleLoad()
	} else {
		win.AddEventListener(dom.EventLoad, eng.HandleLoad)
	}

	select {}
}
