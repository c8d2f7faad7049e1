package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine"
	"github.com/Carmen-Shannon/oxy-controls/engine/clock"
	"github.com/Carmen-Shannon/oxy-controls/engine/config"
	"github.com/Carmen-Shannon/oxy-controls/engine/controls"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
	"github.com/Carmen-Shannon/oxy-controls/engine/host"
	"github.com/Carmen-Shannon/oxy-controls/engine/renderer"
)

const defaultQueueSize = 256

// newExecutor creates the realtime executor a page runs on, sized by --queue-size.
func newExecutor(cmd *cobra.Command) *clock.Realtime {
	size, _ := cmd.Flags().GetInt("queue-size")
	return clock.NewRealtime(clock.WithQueueSize(size))
}

// page is an in-process page: an in-memory document, a scripted host module and the engine,
// all driven from one realtime executor.
type page struct {
	panel  *config.Panel
	doc    *dom.MemoryDocument
	clock  *clock.Realtime
	module host.ScriptModule
	engine engine.Engine
}

// newPageDocument builds the page markup for a panel.
func newPageDocument(panel *config.Panel) *dom.MemoryDocument {
	doc := dom.NewMemoryDocument()
	controls.BuildMarkup(doc, panel.Bindings,
		controls.WithMarkupIDs(panel.Surface.Canvas, panel.Surface.Container, panel.Surface.FPS))
	return doc
}

// newPage builds the engine for a panel over doc. Animation frames come from frames, or from
// rt when frames is nil. The host script is not loaded yet.
func newPage(panel *config.Panel, doc *dom.MemoryDocument, win dom.Window, rt *clock.Realtime, frames clock.FrameClock) *page {
	if frames == nil {
		frames = rt
	}
	module := host.NewScriptModule(panel.ScriptOptions()...)
	options := append(panel.EngineOptions(),
		engine.WithModule(module),
		engine.WithDocument(doc),
		engine.WithWindow(win),
		engine.WithScheduler(rt),
		engine.WithFrameClock(frames),
		engine.WithBackendProbe(renderer.BackendAvailable),
	)

	return &page{
		panel:  panel,
		doc:    doc,
		clock:  rt,
		module: module,
		engine: engine.NewEngine(options...),
	}
}

// boot runs the page load handler, loads the host script and starts its runtime after delay,
// reproducing a host that finishes initializing after the page has loaded.
func (p *page) boot(name, src string, delay time.Duration) error {
	if err := p.clock.Do(func() error {
		if err := p.module.Load(name, src); err != nil {
			return err
		}
		p.engine.HandleLoad()
		return nil
	}); err != nil {
		return fmt.Errorf("failed to boot page: %w", err)
	}

	p.clock.AfterFunc(delay, func() {
		if err := p.module.Start(); err != nil {
			common.ComponentLogger("oxyctl").Error("host runtime failed to start", "error", err)
		}
	})
	return nil
}
