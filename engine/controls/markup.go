package controls

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
)

// markup holds the element ids used by BuildMarkup.
type markup struct {
	surfaceID   string
	containerID string
	fpsID       string
}

// MarkupOption is a functional option for BuildMarkup.
type MarkupOption func(m *markup)

// WithMarkupIDs sets the ids of the surface, its container and the frame-rate display.
// Empty ids keep their defaults.
//
// Parameters:
//   - surfaceID: the surface id
//   - containerID: the container id
//   - fpsID: the frame-rate display id
//
// Returns:
//   - MarkupOption: option function to apply
func WithMarkupIDs(surfaceID, containerID, fpsID string) MarkupOption {
	return func(m *markup) {
		m.surfaceID = common.Coalesce(surfaceID, m.surfaceID)
		m.containerID = common.Coalesce(containerID, m.containerID)
		m.fpsID = common.Coalesce(fpsID, m.fpsID)
	}
}

// BuildMarkup populates an in-memory document with the page markup contract: the surface
// inside its sizing container, the frame-rate display, and one control group per binding.
// Each slider shares a parent with its value display.
//
// Parameters:
//   - doc: the document to populate
//   - bindings: the controls to create widgets for
//   - options: functional options for the element ids
func BuildMarkup(doc *dom.MemoryDocument, bindings []Binding, options ...MarkupOption) {
	ids := markup{
		surfaceID:   dom.SurfaceID,
		containerID: dom.ContainerID,
		fpsID:       dom.FPSCounterID,
	}
	for _, opt := range options {
		opt(&ids)
	}

	container := dom.NewMemoryElement("div", ids.containerID)
	container.Append(dom.NewMemoryElement("canvas", ids.surfaceID))

	panel := dom.NewMemoryElement("div", "controls", "control-panel")
	for _, b := range bindings {
		id := strings.TrimPrefix(b.Selector, "#")
		group := dom.NewMemoryElement("div", "", "control-group")
		group.Append(dom.NewMemoryElement("label", "").SetAttribute("text", common.Coalesce(b.Label, b.Name)))
		switch b.Kind {
		case KindSlider:
			slider := dom.NewMemoryElement("input", id).
				SetAttribute("type", "range").
				SetAttribute("min", common.FormatNumber(b.Min)).
				SetAttribute("max", common.FormatNumber(b.Max)).
				SetAttribute("step", common.FormatNumber(b.Step))
			group.Append(slider, dom.NewMemoryElement("span", "", dom.SliderValueClass))
		default:
			group.Append(dom.NewMemoryElement("button", id).SetAttribute("text", common.Coalesce(b.Label, b.Name)))
		}
		panel.Append(group)
	}

	doc.Body().Append(container, dom.NewMemoryElement("div", ids.fpsID), panel)
}
