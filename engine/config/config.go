// Package config loads control panel declarations written in HCL: the host module's naming,
// the surface element ids, the orchestrator timings and the ordered list of widgets.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine"
	"github.com/Carmen-Shannon/oxy-controls/engine/controls"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
	"github.com/Carmen-Shannon/oxy-controls/engine/host"
	"github.com/Carmen-Shannon/oxy-controls/engine/profiler"
	"github.com/Carmen-Shannon/oxy-controls/engine/resize"
)

// ErrInvalidPanel is returned when a panel declaration parses but does not describe a usable panel.
var ErrInvalidPanel = errors.New("invalid panel")

//go:embed default_panel.hcl
var defaultPanel []byte

// DefaultFilename is the name reported in diagnostics for the embedded declaration.
const DefaultFilename = "default_panel.hcl"

// HostConfig names the host module.
type HostConfig struct {
	Container string
	Prefix    string
	Required  []host.Capability
}

// SurfaceConfig holds the element ids of the rendering surface, its container and the FPS display.
type SurfaceConfig struct {
	Canvas    string
	Container string
	FPS       string
}

// TimingConfig holds the orchestrator's intervals.
type TimingConfig struct {
	Poll     time.Duration
	Debounce time.Duration
	Sample   time.Duration
}

// Panel is a decoded, validated panel declaration.
type Panel struct {
	Host     HostConfig
	Surface  SurfaceConfig
	Timing   TimingConfig
	Bindings []controls.Binding
}

// hclPanelFile is the top-level structure of a panel file for decoding.
// Widgets stay in the remaining body so their declaration order survives.
type hclPanelFile struct {
	Host    *hclHostBlock    `hcl:"host,block"`
	Surface *hclSurfaceBlock `hcl:"surface,block"`
	Timing  *hclTimingBlock  `hcl:"timing,block"`
	Remain  hcl.Body         `hcl:",remain"`
}

type hclHostBlock struct {
	Container *string  `hcl:"container,optional"`
	Prefix    *string  `hcl:"prefix,optional"`
	Required  []string `hcl:"required,optional"`
}

type hclSurfaceBlock struct {
	Canvas    *string `hcl:"canvas,optional"`
	Container *string `hcl:"container,optional"`
	FPS       *string `hcl:"fps,optional"`
}

type hclTimingBlock struct {
	Poll     *string `hcl:"poll,optional"`
	Debounce *string `hcl:"debounce,optional"`
	Sample   *string `hcl:"sample,optional"`
}

type hclButtonBlock struct {
	Selector *string `hcl:"selector,optional"`
	Label    *string `hcl:"label,optional"`
	Call     *string `hcl:"call,optional"`
	Action   *string `hcl:"action,optional"`
	Key      *string `hcl:"key,optional"`
}

type hclSliderBlock struct {
	Selector *string  `hcl:"selector,optional"`
	Label    *string  `hcl:"label,optional"`
	Call     string   `hcl:"call"`
	Default  float64  `hcl:"default"`
	Min      *float64 `hcl:"min,optional"`
	Max      *float64 `hcl:"max,optional"`
	Step     *float64 `hcl:"step,optional"`
	Suffix   *string  `hcl:"suffix,optional"`
}

var widgetSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "button", LabelNames: []string{"name"}},
		{Type: "slider", LabelNames: []string{"name"}},
	},
}

// Default returns the embedded panel declaration mirroring the standard control panel.
//
// Returns:
//   - *Panel: the panel
//   - error: error if the embedded declaration is invalid
func Default() (*Panel, error) {
	return Parse(defaultPanel, DefaultFilename, nil)
}

// LoadFile reads and parses a panel declaration from disk.
//
// Parameters:
//   - path: the .hcl file
//   - vars: values for var.<name> references, or nil
//
// Returns:
//   - *Panel: the panel
//   - error: error if the file cannot be read, parsed or validated
func LoadFile(path string, vars map[string]any) (*Panel, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read panel file %s: %w", path, err)
	}
	return Parse(src, path, vars)
}

// Parse decodes a panel declaration.
// Expressions may reference var.<name>; values come from vars.
//
// Parameters:
//   - src: the HCL source
//   - filename: the name used in diagnostics
//   - vars: values for var.<name> references, or nil
//
// Returns:
//   - *Panel: the panel
//   - error: error if the source does not parse, decode or validate; validation failures wrap ErrInvalidPanel
func Parse(src []byte, filename string, vars map[string]any) (*Panel, error) {
	ctx, err := EvalContext(vars)
	if err != nil {
		return nil, err
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse panel file %s: %w", filename, diags)
	}

	var parsed hclPanelFile
	if diags := gohcl.DecodeBody(file.Body, ctx, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode panel file %s: %w", filename, diags)
	}

	panel := &Panel{
		Host: HostConfig{
			Container: host.DefaultContainer,
			Prefix:    host.DefaultPrefix,
			Required:  append([]host.Capability(nil), host.Required...),
		},
		Surface: SurfaceConfig{
			Canvas:    dom.SurfaceID,
			Container: dom.ContainerID,
			FPS:       dom.FPSCounterID,
		},
		Timing: TimingConfig{
			Poll:     engine.DefaultPollInterval,
			Debounce: resize.DefaultDebounce,
			Sample:   profiler.DefaultWindow,
		},
	}

	if err := panel.applyHost(parsed.Host); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	panel.applySurface(parsed.Surface)
	if err := panel.applyTiming(parsed.Timing); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	content, diags := parsed.Remain.Content(widgetSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode panel file %s: %w", filename, diags)
	}
	for _, block := range content.Blocks {
		b, err := decodeWidget(block, ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if err := panel.addBinding(b); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	}
	if len(panel.Bindings) == 0 {
		return nil, fmt.Errorf("%s: %w: no button or slider declared", filename, ErrInvalidPanel)
	}

	return panel, nil
}

// EngineOptions returns the engine options carrying the panel's bindings, element ids and timings.
//
// Returns:
//   - []engine.EngineBuilderOption: the options
func (p *Panel) EngineOptions() []engine.EngineBuilderOption {
	return []engine.EngineBuilderOption{
		engine.WithBindings(p.Bindings),
		engine.WithRequired(p.Host.Required...),
		engine.WithSurface(p.Surface.Canvas, p.Surface.Container, p.Surface.FPS),
		engine.WithPollInterval(p.Timing.Poll),
		engine.WithResizeDebounce(p.Timing.Debounce),
		engine.WithSampleWindow(p.Timing.Sample),
	}
}

// ScriptOptions returns the options naming a scripted host module the way the panel declares it.
//
// Returns:
//   - []host.ScriptModuleBuilderOption: the options
func (p *Panel) ScriptOptions() []host.ScriptModuleBuilderOption {
	return []host.ScriptModuleBuilderOption{
		host.WithScriptContainer(p.Host.Container),
		host.WithScriptPrefix(p.Host.Prefix),
	}
}

func (p *Panel) applyHost(b *hclHostBlock) error {
	if b == nil {
		return nil
	}
	p.Host.Container = common.Coalesce(deref(b.Container), p.Host.Container)
	p.Host.Prefix = common.Coalesce(deref(b.Prefix), p.Host.Prefix)
	if b.Required == nil {
		return nil
	}
	p.Host.Required = p.Host.Required[:0]
	for _, name := range b.Required {
		c, err := capability(name)
		if err != nil {
			return err
		}
		if !common.Contains(p.Host.Required, c) {
			p.Host.Required = append(p.Host.Required, c)
		}
	}
	if len(p.Host.Required) == 0 {
		return fmt.Errorf("%w: host.required must not be empty", ErrInvalidPanel)
	}
	return nil
}

func (p *Panel) applySurface(b *hclSurfaceBlock) {
	if b == nil {
		return
	}
	p.Surface.Canvas = common.Coalesce(deref(b.Canvas), p.Surface.Canvas)
	p.Surface.Container = common.Coalesce(deref(b.Container), p.Surface.Container)
	p.Surface.FPS = common.Coalesce(deref(b.FPS), p.Surface.FPS)
}

func (p *Panel) applyTiming(b *hclTimingBlock) error {
	if b == nil {
		return nil
	}
	for _, field := range []struct {
		name string
		src  *string
		dst  *time.Duration
	}{
		{"poll", b.Poll, &p.Timing.Poll},
		{"debounce", b.Debounce, &p.Timing.Debounce},
		{"sample", b.Sample, &p.Timing.Sample},
	} {
		if field.src == nil {
			continue
		}
		d, err := time.ParseDuration(*field.src)
		if err != nil {
			return fmt.Errorf("%w: timing.%s: %v", ErrInvalidPanel, field.name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: timing.%s must be positive, got %s", ErrInvalidPanel, field.name, d)
		}
		*field.dst = d
	}
	return nil
}

func (p *Panel) addBinding(b controls.Binding) error {
	for _, existing := range p.Bindings {
		if existing.Name == b.Name {
			return fmt.Errorf("%w: duplicate control %q", ErrInvalidPanel, b.Name)
		}
		if existing.Selector == b.Selector {
			return fmt.Errorf("%w: controls %q and %q share selector %s", ErrInvalidPanel, existing.Name, b.Name, b.Selector)
		}
		if b.Key != 0 && existing.Key == b.Key {
			return fmt.Errorf("%w: controls %q and %q share key %q", ErrInvalidPanel, existing.Name, b.Name, rune(b.Key))
		}
	}
	p.Bindings = append(p.Bindings, b)
	return nil
}

func decodeWidget(block *hcl.Block, ctx *hcl.EvalContext) (controls.Binding, error) {
	name := block.Labels[0]
	b := controls.Binding{Name: name, Selector: "#" + name}

	switch block.Type {
	case "button":
		var parsed hclButtonBlock
		if diags := gohcl.DecodeBody(block.Body, ctx, &parsed); diags.HasErrors() {
			return b, fmt.Errorf("button %q: %w", name, diags)
		}
		b.Kind = controls.KindButton
		b.Selector = common.Coalesce(deref(parsed.Selector), b.Selector)
		b.Label = deref(parsed.Label)

		action := controls.Action(common.Coalesce(deref(parsed.Action), string(controls.ActionCall)))
		switch action {
		case controls.ActionCall:
			if parsed.Call == nil {
				return b, fmt.Errorf("%w: button %q needs a call or an action", ErrInvalidPanel, name)
			}
			c, err := capability(*parsed.Call)
			if err != nil {
				return b, fmt.Errorf("button %q: %w", name, err)
			}
			b.Capability = c
		case controls.ActionPerformanceInfo:
			b.Action = action
		default:
			return b, fmt.Errorf("%w: button %q has unknown action %q", ErrInvalidPanel, name, action)
		}

		if parsed.Key != nil {
			key, err := keyCode(*parsed.Key)
			if err != nil {
				return b, fmt.Errorf("button %q: %w", name, err)
			}
			b.Key = key
		}

	case "slider":
		var parsed hclSliderBlock
		if diags := gohcl.DecodeBody(block.Body, ctx, &parsed); diags.HasErrors() {
			return b, fmt.Errorf("slider %q: %w", name, diags)
		}
		c, err := capability(parsed.Call)
		if err != nil {
			return b, fmt.Errorf("slider %q: %w", name, err)
		}
		b.Kind = controls.KindSlider
		b.Selector = common.Coalesce(deref(parsed.Selector), b.Selector)
		b.Label = deref(parsed.Label)
		b.Capability = c
		b.Default = parsed.Default
		b.Min = derefOr(parsed.Min, 0)
		b.Max = derefOr(parsed.Max, 100)
		b.Step = derefOr(parsed.Step, 1)
		if b.Min > b.Max {
			return b, fmt.Errorf("%w: slider %q has min %v above max %v", ErrInvalidPanel, name, b.Min, b.Max)
		}
		if b.Default < b.Min || b.Default > b.Max {
			return b, fmt.Errorf("%w: slider %q default %v outside [%v, %v]", ErrInvalidPanel, name, b.Default, b.Min, b.Max)
		}
		if b.Step <= 0 {
			return b, fmt.Errorf("%w: slider %q step must be positive", ErrInvalidPanel, name)
		}
		if suffix := deref(parsed.Suffix); suffix != "" {
			b.Formatter = controls.SuffixFormatter(suffix)
		}
	}

	return b, nil
}

// capability resolves a host entry point name against the known capability sets.
func capability(name string) (host.Capability, error) {
	c := host.Capability(name)
	if common.Contains(host.Required, c) || common.Contains(host.Optional, c) {
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown host capability %q", ErrInvalidPanel, name)
}

// keyCode maps a single letter or digit to its key code.
func keyCode(s string) (int, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: key %q must be a single letter or digit", ErrInvalidPanel, s)
	}
	ch := s[0]
	switch {
	case ch >= 'a' && ch <= 'z':
		return int(ch - 'a' + 'A'), nil
	case ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return int(ch), nil
	}
	return 0, fmt.Errorf("%w: key %q must be a single letter or digit", ErrInvalidPanel, s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefOr(f *float64, fallback float64) float64 {
	if f == nil {
		return fallback
	}
	return *f
}
