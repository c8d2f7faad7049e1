package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine/host"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestControlsJSON(t *testing.T) {
	out, err := execute(t, "controls", "--json")
	if err != nil {
		t.Fatalf("controls: %v", err)
	}
	var rows []controlRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if len(rows) != 9 {
		t.Fatalf("expected 9 controls, got %d", len(rows))
	}
	if rows[0].Name != "add-test-geometry" || rows[0].Key != "G" || rows[0].Default != nil {
		t.Errorf("unexpected first row %+v", rows[0])
	}

	var fov *controlRow
	for i := range rows {
		if rows[i].Name == "fov" {
			fov = &rows[i]
		}
	}
	if fov == nil {
		t.Fatal("fov control missing")
	}
	if fov.Display != "45°" || *fov.Min != 10 || *fov.Max != 120 {
		t.Errorf("unexpected fov row %+v", *fov)
	}
}

func TestControlsTable(t *testing.T) {
	out, err := execute(t, "controls")
	if err != nil {
		t.Fatalf("controls: %v", err)
	}
	for _, want := range []string{"NAME", "brightness", "#fov-slider", "set_fov", "performance-info", "requires resize"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestControlsPanelVariables(t *testing.T) {
	path := writeFile(t, "panel.hcl", `
slider "zoom" {
  call    = "set_fov"
  default = var.zoom
  min     = 10
  max     = 120
}
`)
	out, err := execute(t, "controls", "--json", "--panel", path, "--var", "zoom=60")
	if err != nil {
		t.Fatalf("controls: %v", err)
	}
	var rows []controlRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "zoom" || *rows[0].Default != 60 {
		t.Errorf("unexpected rows %+v", rows)
	}
}

func TestProbeDefaultHost(t *testing.T) {
	out, err := execute(t, "probe", "--json", "--strict")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	var report probeReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if !report.Container || !report.CalledRun || !report.Ready {
		t.Errorf("expected a ready host, got %+v", report)
	}
	if len(report.Missing) != 0 {
		t.Errorf("expected nothing missing, got %v", report.Missing)
	}
	if len(report.Exported) != 9 {
		t.Errorf("expected 9 exported entry points, got %v", report.Exported)
	}
}

func TestProbeNotStarted(t *testing.T) {
	out, err := execute(t, "probe", "--json", "--start=false")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	var report probeReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if report.CalledRun || report.Ready {
		t.Errorf("expected a host that has not run, got %+v", report)
	}
}

func TestProbeStrictMissingCapability(t *testing.T) {
	script := writeFile(t, "host.js", `
var Module = {};
Module._alice2_resize = function(w, h) {};
`)
	_, err := execute(t, "probe", "--strict", "--script", script)
	if !errors.Is(err, host.ErrMissingCapability) {
		t.Fatalf("expected ErrMissingCapability, got %v", err)
	}
	if !strings.Contains(err.Error(), "clear_scene") {
		t.Errorf("expected the missing entry points in %q", err)
	}
}

func TestProbeStrictNoContainer(t *testing.T) {
	script := writeFile(t, "empty.js", `var unrelated = 1;`)
	_, err := execute(t, "probe", "--strict", "--start=false", "--script", script)
	if !errors.Is(err, host.ErrNoContainer) {
		t.Fatalf("expected ErrNoContainer, got %v", err)
	}
}

func TestParseVars(t *testing.T) {
	vars, err := parseVars([]string{"size=2.5", "debug=true", "title=hello world", "empty="})
	if err != nil {
		t.Fatalf("parseVars: %v", err)
	}
	if vars["size"] != 2.5 || vars["debug"] != true || vars["title"] != "hello world" || vars["empty"] != "" {
		t.Errorf("unexpected vars %v", vars)
	}

	for _, bad := range []string{"novalue", "=1", " =1"} {
		if _, err := parseVars([]string{bad}); err == nil {
			t.Errorf("expected an error for %q", bad)
		}
	}
}

func TestInvalidLogLevel(t *testing.T) {
	if _, err := execute(t, "controls", "--log-level", "loud"); err == nil {
		t.Fatal("expected an invalid log level to fail")
	}
}

func TestLogFileClosedAfterRun(t *testing.T) {
	orig := common.Logger()
	t.Cleanup(func() { common.SetLogger(orig) })

	path := filepath.Join(t.TempDir(), "oxyctl.log")
	script := writeFile(t, "host.js", `console.log("host loaded"); var Module = {};`)
	logs := &logSink{}
	cmd := newRootCommandWithLogs(logs)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"probe", "--script", script, "--log-file", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("probe: %v", err)
	}

	if logs.file != nil {
		t.Fatal("expected the log file to be closed after the command")
	}
	if common.Logger() != slog.Default() {
		t.Error("expected the default logger after the log file closed")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "host loaded") || !strings.Contains(string(data), "component=host") {
		t.Errorf("expected host console output in the log file, got %q", data)
	}
}

func TestLogFileClosedOnError(t *testing.T) {
	orig := common.Logger()
	t.Cleanup(func() { common.SetLogger(orig) })

	path := filepath.Join(t.TempDir(), "oxyctl.log")
	script := writeFile(t, "host.js", `var Module = {};`)
	logs := &logSink{}
	cmd := newRootCommandWithLogs(logs)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"probe", "--strict", "--script", script, "--log-file", path})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected strict probe to fail")
	}

	if logs.file == nil {
		t.Fatal("expected the log file to stay open until the caller closes it")
	}
	if err := logs.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if logs.file != nil || logs.Close() != nil {
		t.Fatal("expected Close to be idempotent")
	}
}

func TestExecutorQueueSizeFlag(t *testing.T) {
	for _, cmd := range []*cobra.Command{newPanelCommand(), newWindowCommand()} {
		if err := cmd.ParseFlags([]string{"--queue-size", "8"}); err != nil {
			t.Fatalf("%s: parse flags: %v", cmd.Name(), err)
		}
		rt := newExecutor(cmd)
		ran := false
		if err := rt.Do(func() error { ran = true; return nil }); err != nil || !ran {
			t.Errorf("%s: executor did not run the callback: %v", cmd.Name(), err)
		}
		rt.Close()
	}
}
