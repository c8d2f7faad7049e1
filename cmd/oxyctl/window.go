package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-controls/engine/window"
)

// GLFW must run on the process's main thread.
func init() {
	runtime.LockOSThread()
}

func newWindowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Run the page against a host script in a native window",
		Long: "Opens a native window standing in for the browser viewport. Resizing the window drives the\n" +
			"debounced surface resize and each button's accelerator key clicks it. Esc closes the window.",
		RunE: runWindow,
	}
	cmd.Flags().String("script", "", "Host module script; defaults to the built-in demo host")
	cmd.Flags().Duration("start-delay", 0, "Delay between page load and host runtime start")
	cmd.Flags().Int("queue-size", defaultQueueSize, "Callbacks that may wait for the page executor")
	cmd.Flags().Int("width", 1280, "Initial window width")
	cmd.Flags().Int("height", 720, "Initial window height")
	cmd.Flags().Float64("fps", 60, "Animation frame rate cap")
	cmd.Flags().String("title", "Alice2", "Window title")
	return cmd
}

func runWindow(cmd *cobra.Command, _ []string) error {
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
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	fps, _ := cmd.Flags().GetFloat64("fps")
	title, _ := cmd.Flags().GetString("title")

	rt := newExecutor(cmd)
	defer rt.Close()

	doc := newPageDocument(decl)
	win, err := window.NewWindow(
		window.WithTitle(title),
		window.WithWidth(width),
		window.WithHeight(height),
		window.WithDocument(doc),
		window.WithContainerID(decl.Surface.Container),
		window.WithAccelerators(decl.Bindings),
		window.WithExecutor(rt.Post),
		window.WithScheduler(rt),
		window.WithFrameRate(fps),
		window.WithAlertHandler(func(msg string) {
			fmt.Fprintln(cmd.OutOrStdout(), msg)
		}),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	p := newPage(decl, doc, win, rt, win)
	if err := p.boot(name, src, delay); err != nil {
		return err
	}

	// Blocks on the main goroutine until the window closes.
	win.ProcessMessages()
	return nil
}
