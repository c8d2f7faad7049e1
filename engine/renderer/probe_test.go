package renderer

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-controls/common"
)

func TestProbeCachesAnswer(t *testing.T) {
	calls := 0
	p := NewProbe(func(p *probe) {
		p.check = func(bool) (bool, error) {
			calls++
			return true, nil
		}
	})

	if !p.Available() || !p.Available() {
		t.Fatal("expected the backend to be available")
	}
	if calls != 1 {
		t.Fatalf("check ran %d times, want 1", calls)
	}
}

func TestProbeErrorAndPanicMeanUnavailable(t *testing.T) {
	failing := NewProbe(func(p *probe) {
		p.check = func(bool) (bool, error) { return true, errors.New("no adapter") }
	})
	if failing.Available() {
		t.Fatal("an error should report unavailable")
	}

	panicking := NewProbe(func(p *probe) {
		p.check = func(bool) (bool, error) { panic("driver crashed") }
	})
	if panicking.Available() {
		t.Fatal("a panic should report unavailable")
	}
}

func TestProbePassesFallbackFlag(t *testing.T) {
	var got bool
	p := NewProbe(WithForceFallbackAdapter(true), func(p *probe) {
		p.check = func(force bool) (bool, error) {
			got = force
			return false, nil
		}
	})
	p.Available()
	if !got {
		t.Fatal("expected the fallback flag to reach the check")
	}
}

func TestBackendAvailableLogsThroughCurrentLogger(t *testing.T) {
	origProbe := defaultProbe
	origLogger := common.Logger()
	t.Cleanup(func() {
		defaultProbe = origProbe
		common.SetLogger(origLogger)
	})

	// The probe exists before the process logger is configured, as the package-level one does.
	defaultProbe = NewProbe(func(p *probe) {
		p.check = func(bool) (bool, error) { return false, errors.New("no adapter") }
	})

	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	if BackendAvailable() {
		t.Fatal("expected the backend to be unavailable")
	}
	out := buf.String()
	if !strings.Contains(out, "webgpu unavailable") || !strings.Contains(out, "component=renderer") {
		t.Fatalf("configured logger captured %q", out)
	}
}
