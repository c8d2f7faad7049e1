package host

import (
	"errors"
	"reflect"
	"testing"
)

const testHostScript = `
var Module = typeof Module !== 'undefined' ? Module : {};
Module.state = { resized: [], cleared: 0, brightness: -1 };
Module._alice2_resize = function(w, h) { Module.state.resized.push([w, h]); };
Module._alice2_clear_scene = function() { Module.state.cleared++; };
Module._alice2_add_test_geometry = function() {};
Module._alice2_set_background_brightness = function(v) { Module.state.brightness = v; };
Module._alice2_toggle_wireframe = function() { throw new Error("wireframe unsupported"); };
Module.notAnEntryPoint = 42;
`

func TestScriptModuleAbsentContainer(t *testing.T) {
	m := NewScriptModule()

	if m.Container() {
		t.Fatal("expected no container before any script runs")
	}
	if m.Has(Resize) {
		t.Fatal("expected Has to report false without a container")
	}
	if err := m.Call(Resize, 1, 1); !errors.Is(err, ErrNoContainer) {
		t.Fatalf("expected ErrNoContainer, got %v", err)
	}
	if m.CalledRun() {
		t.Fatal("expected CalledRun false without a container")
	}
}

func TestScriptModuleCapabilities(t *testing.T) {
	m := NewScriptModule()
	if err := m.Load("host.js", testHostScript); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !m.Container() {
		t.Fatal("expected container after load")
	}
	for _, c := range Required {
		if !m.Has(c) {
			t.Errorf("expected %s to be exported", c)
		}
	}
	if m.Has(SetFOV) {
		t.Error("did not expect set_fov to be exported")
	}

	if err := m.Call(Resize, 1600, 1200); err != nil {
		t.Fatalf("Call resize: %v", err)
	}
	got, err := m.Eval("JSON.stringify(Module.state.resized)")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != "[[1600,1200]]" {
		t.Fatalf("unexpected resize calls: %v", got)
	}

	if err := m.Call(SetFOV, 45); !errors.Is(err, ErrMissingCapability) {
		t.Fatalf("expected ErrMissingCapability, got %v", err)
	}
	if err := m.Call(ToggleWireframe); err == nil {
		t.Fatal("expected thrown host error to surface")
	}

	want := []string{
		"_alice2_add_test_geometry",
		"_alice2_clear_scene",
		"_alice2_resize",
		"_alice2_set_background_brightness",
		"_alice2_toggle_wireframe",
	}
	if exported := m.Exported(); !reflect.DeepEqual(exported, want) {
		t.Fatalf("Exported = %v, want %v", exported, want)
	}
}

func TestScriptModuleChainPreservesExistingHook(t *testing.T) {
	m := NewScriptModule()
	if err := m.Load("pre.js", `var Module = { order: [] }; Module.onRuntimeInitialized = function() { Module.order.push("existing"); };`); err != nil {
		t.Fatalf("Load: %v", err)
	}

	calls := 0
	m.ChainRuntimeInitialized(func() {
		calls++
	})

	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected chained hook to run once, got %d", calls)
	}
	if !m.CalledRun() {
		t.Fatal("expected CalledRun after Start")
	}
	order, err := m.Eval(`Module.order.join(",")`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if order != "existing" {
		t.Fatalf("expected existing hook to run, got %v", order)
	}
}

func TestScriptModuleChainCreatesContainer(t *testing.T) {
	m := NewScriptModule()
	m.ChainRuntimeInitialized(func() {})
	if !m.Container() {
		t.Fatal("expected handshake to create the container")
	}

	// A host script loaded afterwards keeps the pre-existing container and its hook.
	if err := m.Load("host.js", testHostScript); err != nil {
		t.Fatalf("Load: %v", err)
	}
	v, err := m.Eval(`typeof Module.onRuntimeInitialized`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v != "function" {
		t.Fatalf("expected hook to survive host load, got %v", v)
	}
}

func TestScriptModuleCustomPrefix(t *testing.T) {
	m := NewScriptModule(WithScriptPrefix("_viewer_"), WithScriptContainer("Viewer"))
	if err := m.Load("viewer.js", `var Viewer = { _viewer_resize: function() {} };`); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.Has(Resize) {
		t.Fatal("expected resize under custom prefix")
	}
}
