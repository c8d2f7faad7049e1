package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine/clock"
	"github.com/Carmen-Shannon/oxy-controls/engine/controls"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
	"github.com/Carmen-Shannon/oxy-controls/engine/host"
	"github.com/Carmen-Shannon/oxy-controls/engine/probe"
	"github.com/Carmen-Shannon/oxy-controls/engine/profiler"
	"github.com/Carmen-Shannon/oxy-controls/engine/resize"
)

// DefaultPollInterval is the readiness poll interval while waiting for capabilities.
const DefaultPollInterval = 100 * time.Millisecond

// State is the orchestrator's readiness state.
type State int

const (
	// StateWaitingForRuntime is the initial state: the host runtime has not signalled.
	StateWaitingForRuntime State = iota
	// StateWaitingForCapabilities polls the prober until the required capabilities resolve.
	StateWaitingForCapabilities
	// StateBound is terminal: controls, surface sizing and the sampler are live.
	StateBound
)

func (s State) String() string {
	switch s {
	case StateWaitingForRuntime:
		return "waiting-for-runtime"
	case StateWaitingForCapabilities:
		return "waiting-for-capabilities"
	case StateBound:
		return "bound"
	default:
		return "unknown"
	}
}

// engine implements the Engine interface.
// Reconciles the page load with host initialization and brings the page's controls up once.
type engine struct {
	mu    sync.Mutex
	state State

	session string

	module host.Module
	doc    dom.Document
	window dom.Window

	scheduler clock.Scheduler
	frames    clock.FrameClock

	pollInterval time.Duration
	debounce     time.Duration
	sampleWindow time.Duration
	bindings     []controls.Binding
	requiredCaps []host.Capability
	backendProbe func() bool

	surfaceID   string
	containerID string
	fpsID       string

	// ownedRealtime is the clock created when no scheduler or frame clock was supplied.
	ownedRealtime *clock.Realtime

	hookInstalled bool
	polls         int
	boundChannel  chan struct{}
	boundOnce     sync.Once

	prober      probe.Prober
	registry    controls.Registry
	coordinator resize.Coordinator
	sampler     profiler.Sampler

	logger *slog.Logger
}

// Engine is the main entry point of the page.
// It drives the readiness handshake WaitingForRuntime → WaitingForCapabilities → Bound
// and owns the components brought up on Bound.
type Engine interface {
	// HandleLoad is the page load handler. It chains the orchestrator onto the host's
	// runtime-initialized hook without clobbering an existing one, and checks immediately
	// whether the runtime had already started before the page loaded.
	HandleLoad()

	// HandleRuntimeInitialized is the host runtime-initialized signal.
	// In WaitingForRuntime it starts the readiness poll; in any later state it does nothing.
	HandleRuntimeInitialized()

	// HandleResize forwards a viewport resize to the debounced coordinator.
	HandleResize()

	// ShowPerformanceInfo presents the diagnostic summary.
	ShowPerformanceInfo()

	// State returns the current readiness state.
	//
	// Returns:
	//   - State: the state
	State() State

	// Bound returns a channel closed when the engine reaches StateBound.
	//
	// Returns:
	//   - <-chan struct{}: the channel
	Bound() <-chan struct{}

	// Session returns the id attached to every log record of this engine.
	//
	// Returns:
	//   - string: the session id
	Session() string

	// Polls returns the number of readiness checks performed so far.
	//
	// Returns:
	//   - int: the count
	Polls() int

	// Prober returns the capability prober.
	Prober() probe.Prober

	// Registry returns the control registry.
	Registry() controls.Registry

	// Coordinator returns the resize coordinator.
	Coordinator() resize.Coordinator

	// Sampler returns the frame-rate sampler.
	Sampler() profiler.Sampler

	// Close releases a realtime clock the engine created for itself.
	// Safe to call multiple times.
	Close()
}

// NewEngine creates a new Engine with the provided options.
// Without a scheduler or frame clock the engine runs on its own realtime clock.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine, in StateWaitingForRuntime
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		state:        StateWaitingForRuntime,
		session:      uuid.NewString(),
		pollInterval: DefaultPollInterval,
		debounce:     resize.DefaultDebounce,
		sampleWindow: profiler.DefaultWindow,
		bindings:     controls.DefaultBindings(),
		requiredCaps: host.Required,
		backendProbe: func() bool { return false },
		surfaceID:    dom.SurfaceID,
		containerID:  dom.ContainerID,
		fpsID:        dom.FPSCounterID,
		boundChannel: make(chan struct{}),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.doc == nil {
		e.doc = dom.NewMemoryDocument()
	}
	if e.scheduler == nil || e.frames == nil {
		rt := clock.NewRealtime()
		e.ownedRealtime = rt
		if e.scheduler == nil {
			e.scheduler = rt
		}
		if e.frames == nil {
			e.frames = rt
		}
	}

	e.logger = common.ComponentLogger("orchestrator").With("session", e.session)

	var h host.Host
	if e.module != nil {
		h = e.module
	}

	e.prober = probe.NewProber(h, probe.WithRequired(e.requiredCaps...))
	e.sampler = profiler.NewSampler(e.frames,
		profiler.WithScheduler(e.scheduler),
		profiler.WithDisplay(e.doc, e.fpsID),
		profiler.WithWindow(e.sampleWindow),
	)

	registryOptions := []controls.RegistryBuilderOption{
		controls.WithFPSSource(e.sampler.FPS),
		controls.WithBackendProbe(e.backendProbe),
		controls.WithSurfaceID(e.surfaceID),
	}
	coordinatorOptions := []resize.CoordinatorBuilderOption{
		resize.WithHost(h),
		resize.WithDebounce(e.debounce),
		resize.WithElementIDs(e.surfaceID, e.containerID),
	}
	if e.window != nil {
		registryOptions = append(registryOptions, controls.WithWindow(e.window))
		coordinatorOptions = append(coordinatorOptions, resize.WithWindow(e.window))
	}
	e.registry = controls.NewRegistry(e.doc, h, registryOptions...)
	e.coordinator = resize.NewCoordinator(e.doc, e.scheduler, coordinatorOptions...)

	return e
}

func (e *engine) HandleLoad() {
	if e.module == nil {
		e.logger.Warn("page loaded without a host module")
		return
	}

	e.mu.Lock()
	install := !e.hookInstalled
	e.hookInstalled = true
	e.mu.Unlock()

	if install {
		e.module.ChainRuntimeInitialized(e.HandleRuntimeInitialized)
	}
	if e.module.CalledRun() {
		e.logger.Debug("host runtime already started before page load")
		e.HandleRuntimeInitialized()
	}
}

func (e *engine) HandleRuntimeInitialized() {
	e.mu.Lock()
	if e.state != StateWaitingForRuntime {
		state := e.state
		e.mu.Unlock()
		e.logger.Debug("runtime signal ignored", "state", state)
		return
	}
	e.state = StateWaitingForCapabilities
	e.mu.Unlock()

	e.logger.Info("host runtime initialized, waiting for capabilities", "required", len(e.prober.Required()))
	e.poll()
}

// poll checks readiness once and either binds or reschedules itself.
// There is no timeout: an absent capability keeps the poll alive for the page's lifetime.
func (e *engine) poll() {
	e.mu.Lock()
	if e.state != StateWaitingForCapabilities {
		e.mu.Unlock()
		return
	}
	e.polls++
	e.mu.Unlock()

	if !e.prober.IsReady() {
		e.logger.Debug("capabilities not ready", "missing", e.prober.Missing())
		e.scheduler.AfterFunc(e.pollInterval, e.poll)
		return
	}

	e.mu.Lock()
	if e.state != StateWaitingForCapabilities {
		e.mu.Unlock()
		return
	}
	e.state = StateBound
	e.mu.Unlock()

	e.bind()
}

// bind brings the page up. It runs once, on the transition into StateBound.
func (e *engine) bind() {
	e.boundOnce.Do(func() {
		n := e.registry.BindAll(e.bindings)
		e.coordinator.Recompute()
		e.coordinator.Attach()
		e.sampler.Start()

		e.logger.Info("page bound", "controls", n, "surface", e.coordinator.Dimensions().String(), "polls", e.Polls())
		close(e.boundChannel)
	})
}

func (e *engine) HandleResize() {
	e.coordinator.HandleResize()
}

func (e *engine) ShowPerformanceInfo() {
	e.registry.ShowPerformanceInfo()
}

func (e *engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *engine) Bound() <-chan struct{} {
	return e.boundChannel
}

func (e *engine) Session() string {
	return e.session
}

func (e *engine) Polls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.polls
}

func (e *engine) Prober() probe.Prober {
	return e.prober
}

func (e *engine) Registry() controls.Registry {
	return e.registry
}

func (e *engine) Coordinator() resize.Coordinator {
	return e.coordinator
}

func (e *engine) Sampler() profiler.Sampler {
	return e.sampler
}

func (e *engine) Close() {
	if e.ownedRealtime != nil {
		e.ownedRealtime.Close()
	}
}
