package main

import (
	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
	"github.com/Carmen-Shannon/oxy-controls/engine/panel"
)

func newPanelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Run the page against a host script in a terminal control panel",
		RunE:  runPanel,
	}
	cmd.Flags().String("script", "", "Host module script; defaults to the built-in demo host")
	cmd.Flags().Duration("start-delay", 0, "Delay between page load and host runtime start")
	cmd.Flags().Int("queue-size", defaultQueueSize, "Callbacks that may wait for the page executor")
	cmd.Flags().Float64("dpr", 1, "Device pixel ratio of the simulated viewport")
	cmd.Flags().Float64("width", 1280, "Layout width of the surface container")
	cmd.Flags().Float64("height", 720, "Layout height of the surface container")
	return cmd
}

func runPanel(cmd *cobra.Command, _ []string) error {
	decl, err := loadPanel(cmd)
	if err != nil {
		return err
	}
	scriptPath, _ := cmd.Flags().GetString("script")
	name, src, err := readHostScript(scriptPath)
	if err != nil {
		return err
	}
	delay, _ := cmd.Flags().GetDuration("start-delay")
	dpr, _ := cmd.Flags().GetFloat64("dpr")
	width, _ := cmd.Flags().GetFloat64("width")
	height, _ := cmd.Flags().GetFloat64("height")

	// The terminal owns stderr while the panel runs.
	if logFile, _ := cmd.Flags().GetString("log-file"); logFile == "" {
		silenceLogging()
	}

	rt := newExecutor(cmd)
	defer rt.Close()

	win := dom.NewMemoryWindow(dpr)
	p := newPage(decl, newPageDocument(decl), win, rt, nil)
	if container := p.doc.Element(decl.Surface.Container); container != nil {
		container.SetRect(dom.Rect{Width: width, Height: height})
	}
	if err := p.boot(name, src, delay); err != nil {
		return err
	}

	return panel.Run(panel.New(p.doc, p.engine, decl.Bindings,
		panel.WithExecutor(rt.Post),
		panel.WithWindow(win),
	))
}
