package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-controls/engine/host"
	"github.com/Carmen-Shannon/oxy-controls/engine/probe"
	"github.com/Carmen-Shannon/oxy-controls/engine/renderer"
)

// probeReport is what `oxyctl probe` reports about a host script.
type probeReport struct {
	Script    string   `json:"script"`
	Container bool     `json:"container"`
	CalledRun bool     `json:"calledRun"`
	Ready     bool     `json:"ready"`
	Missing   []string `json:"missing,omitempty"`
	Optional  []string `json:"optional"`
	Exported  []string `json:"exported"`
	WebGPU    bool     `json:"webgpu"`
}

func newProbeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Load a host script and report which capabilities it exports",
		RunE:  runProbe,
	}
	cmd.Flags().String("script", "", "Host module script; defaults to the built-in demo host")
	cmd.Flags().Bool("start", true, "Mark the runtime as run after loading")
	cmd.Flags().Bool("strict", false, "Fail when a required capability is missing")
	cmd.Flags().Bool("webgpu", false, "Also probe the local WebGPU backend")
	cmd.Flags().Bool("json", false, "Output JSON")
	return cmd
}

func runProbe(cmd *cobra.Command, _ []string) error {
	panel, err := loadPanel(cmd)
	if err != nil {
		return err
	}
	scriptPath, _ := cmd.Flags().GetString("script")
	name, src, err := readHostScript(scriptPath)
	if err != nil {
		return err
	}

	module := host.NewScriptModule(panel.ScriptOptions()...)
	if err := module.Load(name, src); err != nil {
		return err
	}
	if start, _ := cmd.Flags().GetBool("start"); start {
		if err := module.Start(); err != nil {
			return err
		}
	}

	prober := probe.NewProber(module, probe.WithRequired(panel.Host.Required...))
	report := probeReport{
		Script:    name,
		Container: module.Container(),
		CalledRun: module.CalledRun(),
		Ready:     prober.IsReady(),
		Optional:  []string{},
		Exported:  module.Exported(),
	}
	for _, c := range prober.Missing() {
		report.Missing = append(report.Missing, string(c))
	}
	for _, c := range host.Optional {
		if module.Has(c) {
			report.Optional = append(report.Optional, string(c))
		}
	}
	if report.Exported == nil {
		report.Exported = []string{}
	}
	if webgpu, _ := cmd.Flags().GetBool("webgpu"); webgpu {
		report.WebGPU = renderer.BackendAvailable()
	}

	out := cmd.OutOrStdout()
	if jsonMode, _ := cmd.Flags().GetBool("json"); jsonMode {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		fmt.Fprintf(out, "Script:    %s\n", report.Script)
		fmt.Fprintf(out, "Container: %t\n", report.Container)
		fmt.Fprintf(out, "CalledRun: %t\n", report.CalledRun)
		fmt.Fprintf(out, "Ready:     %t\n", report.Ready)
		if len(report.Missing) > 0 {
			fmt.Fprintf(out, "Missing:   %v\n", report.Missing)
		}
		fmt.Fprintf(out, "Optional:  %v\n", report.Optional)
		fmt.Fprintf(out, "Exported:  %d entry points\n", len(report.Exported))
	}

	strict, _ := cmd.Flags().GetBool("strict")
	if strict && !report.Ready {
		if !report.Container {
			return host.ErrNoContainer
		}
		return fmt.Errorf("%w: %v", host.ErrMissingCapability, report.Missing)
	}
	return nil
}
