package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine/config"
	"github.com/Carmen-Shannon/oxy-controls/engine/controls"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// controlRow is the JSON form of one declared control.
type controlRow struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Selector string   `json:"selector"`
	Call     string   `json:"call,omitempty"`
	Action   string   `json:"action,omitempty"`
	Default  *float64 `json:"default,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Display  string   `json:"display,omitempty"`
	Key      string   `json:"key,omitempty"`
}

func newControlsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "controls",
		Short: "List the controls a panel declaration binds",
		RunE:  runControls,
	}
	cmd.Flags().Bool("json", false, "Output JSON")
	return cmd
}

func runControls(cmd *cobra.Command, _ []string) error {
	panel, err := loadPanel(cmd)
	if err != nil {
		return err
	}

	rows := controlRows(panel.Bindings)
	out := cmd.OutOrStdout()

	if jsonMode, _ := cmd.Flags().GetBool("json"); jsonMode {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, renderControls(rows))
	fmt.Fprintln(out, mutedStyle.Render(describeHost(panel)))
	return nil
}

func controlRows(bindings []controls.Binding) []controlRow {
	rows := make([]controlRow, 0, len(bindings))
	for _, b := range bindings {
		row := controlRow{
			Name:     b.Name,
			Kind:     string(b.Kind),
			Selector: b.Selector,
			Call:     string(b.Capability),
			Action:   string(b.Action),
		}
		if b.Kind == controls.KindSlider {
			def, lo, hi := b.Default, b.Min, b.Max
			row.Default, row.Min, row.Max = &def, &lo, &hi
			format := b.Formatter
			if format == nil {
				format = controls.DefaultFormatter
			}
			row.Display = format(b.Default)
		}
		if b.Key != 0 {
			row.Key = string(rune(b.Key))
		}
		rows = append(rows, row)
	}
	return rows
}

func renderControls(rows []controlRow) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("NAME", "KIND", "SELECTOR", "CALL", "DEFAULT", "RANGE", "KEY")

	for _, r := range rows {
		call := common.Coalesce(r.Call, r.Action)
		def, rng := "", ""
		if r.Default != nil {
			def = r.Display
			rng = common.FormatNumber(*r.Min) + " to " + common.FormatNumber(*r.Max)
		}
		t.Row(r.Name, r.Kind, r.Selector, call, def, rng, r.Key)
	}
	return t.Render()
}

func describeHost(panel *config.Panel) string {
	required := make([]string, len(panel.Host.Required))
	for i, c := range panel.Host.Required {
		required[i] = string(c)
	}
	return fmt.Sprintf("host %s, prefix %s, requires %s; poll %s, debounce %s, sample %s",
		panel.Host.Container, panel.Host.Prefix, strings.Join(required, ", "),
		panel.Timing.Poll, panel.Timing.Debounce, panel.Timing.Sample)
}
