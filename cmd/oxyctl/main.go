// Command oxyctl exercises the control layer outside a browser: it lists a panel declaration,
// probes a scripted host module, and runs the page in a terminal panel or a native window.
package main

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine/config"
)

//go:embed default_host.js
var defaultHostScript string

const defaultHostName = "default_host.js"

func main() {
	logs := &logSink{}
	err := newRootCommandWithLogs(logs).Execute()
	logs.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// logSink owns the --log-file handle for one command run.
type logSink struct {
	file *os.File
}

// Close closes the log file, if one is open, and puts the default logger back.
func (s *logSink) Close() error {
	if s.file == nil {
		return nil
	}
	common.SetLogger(nil)
	err := s.file.Close()
	s.file = nil
	return err
}

func newRootCommand() *cobra.Command {
	return newRootCommandWithLogs(&logSink{})
}

func newRootCommandWithLogs(logs *logSink) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "oxyctl",
		Short:         "Drive the Alice2 control layer outside a browser",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd, logs)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return logs.Close()
		},
	}
	rootCmd.PersistentFlags().String("panel", "", "Panel declaration (.hcl); defaults to the built-in panel")
	rootCmd.PersistentFlags().StringArray("var", nil, "Panel variable as name=value (repeatable)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(
		newControlsCommand(),
		newProbeCommand(),
		newPanelCommand(),
		newWindowCommand(),
	)
	return rootCmd
}

// setupLogging installs the process logger from the persistent flags.
func setupLogging(cmd *cobra.Command, logs *logSink) error {
	levelText, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelText)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", levelText, err)
	}

	var out io.Writer = cmd.ErrOrStderr()
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logs.Close()
		logs.file = f
		out = f
	}
	common.SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadPanel reads the panel declaration named by --panel, or the built-in one.
func loadPanel(cmd *cobra.Command) (*config.Panel, error) {
	rawVars, _ := cmd.Flags().GetStringArray("var")
	vars, err := parseVars(rawVars)
	if err != nil {
		return nil, err
	}
	path, _ := cmd.Flags().GetString("panel")
	if path == "" {
		return config.Default()
	}
	return config.LoadFile(path, vars)
}

// parseVars turns name=value pairs into panel variables. Numbers and booleans keep their type.
func parseVars(pairs []string) (map[string]any, error) {
	vars := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q: expected name=value", pair)
		}
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			vars[name] = f
		} else if b, err := strconv.ParseBool(value); err == nil {
			vars[name] = b
		} else {
			vars[name] = value
		}
	}
	return vars, nil
}

// readHostScript returns the script named by path, or the built-in demo host.
func readHostScript(path string) (name, src string, err error) {
	if path == "" {
		return defaultHostName, defaultHostScript, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read host script: %w", err)
	}
	return path, string(data), nil
}

// silenceLogging discards log output.
func silenceLogging() {
	common.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
