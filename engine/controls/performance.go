package controls

import "encoding/json"

// CanvasInfo is the surface's backing pixel size.
type CanvasInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PerformanceInfo is the user-facing diagnostic summary.
type PerformanceInfo struct {
	FPS              int        `json:"fps"`
	Canvas           CanvasInfo `json:"canvas"`
	DevicePixelRatio float64    `json:"devicePixelRatio"`
	WebGPU           string     `json:"webgpu"`
}

// String renders the summary as presented to the user.
func (p PerformanceInfo) String() string {
	body, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "Performance Info: unavailable"
	}
	return "Performance Info:\n" + string(body)
}

func (r *registry) PerformanceInfo() PerformanceInfo {
	info := PerformanceInfo{
		FPS:              r.fps(),
		DevicePixelRatio: 1,
		WebGPU:           "Unavailable",
	}
	if r.backend() {
		info.WebGPU = "Available"
	}
	if r.window != nil {
		info.DevicePixelRatio = r.window.DevicePixelRatio()
	}
	if surface := r.doc.GetElementByID(r.surfaceID); surface != nil {
		info.Canvas = CanvasInfo{
			Width:  surface.IntProperty("width"),
			Height: surface.IntProperty("height"),
		}
	}
	return info
}

func (r *registry) ShowPerformanceInfo() {
	info := r.PerformanceInfo()
	r.logger.Info("performance info", "fps", info.FPS, "width", info.Canvas.Width, "height", info.Canvas.Height, "dpr", info.DevicePixelRatio, "webgpu", info.WebGPU)
	if r.window != nil {
		r.window.Alert(info.String())
	}
}
