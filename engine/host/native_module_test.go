package host

import (
	"errors"
	"testing"
)

func TestNativeModuleExportAndCall(t *testing.T) {
	var got []float64
	m := NewNativeModule(WithEntryPoint(Resize, func(args ...float64) error {
		got = append(got, args...)
		return nil
	}))

	if !m.Container() {
		t.Fatal("native module should always have a container")
	}
	if !m.Has(Resize) {
		t.Fatal("expected resize to be exported")
	}
	if err := m.Call(Resize, 800, 600); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if len(got) != 2 || got[0] != 800 || got[1] != 600 {
		t.Fatalf("unexpected args %v", got)
	}

	m.Unexport(Resize)
	if err := m.Call(Resize, 1, 1); !errors.Is(err, ErrMissingCapability) {
		t.Fatalf("expected ErrMissingCapability, got %v", err)
	}
}

func TestNativeModuleStartRunsHooksInOrder(t *testing.T) {
	m := NewNativeModule()
	var order []string
	m.ChainRuntimeInitialized(func() { order = append(order, "first") })
	m.ChainRuntimeInitialized(func() { order = append(order, "second") })

	if m.CalledRun() {
		t.Fatal("CalledRun before Start")
	}
	m.Start()
	if !m.CalledRun() {
		t.Fatal("expected CalledRun after Start")
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected hook order %v", order)
	}
}
