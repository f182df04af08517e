package engine

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	settings window.Settings
	polls    atomic.Int32
	swaps    atomic.Int32
	closed   atomic.Bool
	current  atomic.Bool
	running  atomic.Bool
	onClose  func()
}

func (w *fakeWindow) MakeContextCurrent()                       { w.current.Store(true) }
func (w *fakeWindow) PollEvents()                               { w.polls.Add(1) }
func (w *fakeWindow) SwapBuffers()                              { w.swaps.Add(1) }
func (w *fakeWindow) IsRunning() bool                           { return w.running.Load() }
func (w *fakeWindow) SetResizeCallback(func(width, height int)) {}
func (w *fakeWindow) Width() int                                { return w.settings.Width }
func (w *fakeWindow) Height() int                               { return w.settings.Height }

func (w *fakeWindow) Close() error {
	if w.onClose != nil {
		w.onClose()
	}
	if w.closed.Swap(true) {
		return errors.New("window is not initialized")
	}
	return nil
}

type harness struct {
	win *fakeWindow
	rec *backendtest.Recorder

	mu     sync.Mutex
	fatals []error
}

func newHarness() *harness {
	return &harness{win: &fakeWindow{}, rec: backendtest.New(64, 64)}
}

func (h *harness) options(extra ...ContextBuilderOption) []ContextBuilderOption {
	return append([]ContextBuilderOption{
		WithWindowFactory(func(s window.Settings) (window.Window, error) {
			h.win.settings = s
			h.win.running.Store(true)
			return h.win, nil
		}),
		WithBackendFactory(func() (backend.Backend, error) { return h.rec, nil }),
		WithFatalHandler(func(err error) {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.fatals = append(h.fatals, err)
		}),
	}, extra...)
}

func (h *harness) fatalErrors() []error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]error(nil), h.fatals...)
}

func TestOneshotRendersOneFrame(t *testing.T) {
	h := newHarness()
	ctx := NewOffscreenContext(true, h.options()...)

	var step atomic.Int32
	var initAt, frameAt, finishAt int32
	var frames atomic.Int32
	var finishSawOpenWindow bool

	ctx.Init(func(b backend.Backend) {
		assert.Same(t, h.rec, b)
		initAt = step.Add(1)
	}, func(backend.Backend) {
		finishAt = step.Add(1)
		finishSawOpenWindow = !h.win.closed.Load()
	})
	ctx.Render(func(backend.Backend) {
		frames.Add(1)
		frameAt = step.Add(1)
	})
	ctx.Close()

	assert.Equal(t, int32(1), frames.Load())
	assert.Equal(t, uint64(1), ctx.Frames())
	assert.Equal(t, []int32{1, 2, 3}, []int32{initAt, frameAt, finishAt})
	assert.True(t, finishSawOpenWindow)
	assert.True(t, h.win.closed.Load())
	assert.True(t, h.win.current.Load())
	assert.Equal(t, int32(1), h.win.polls.Load())
	assert.Equal(t, int32(1), h.win.swaps.Load())
	assert.Empty(t, h.fatalErrors())

	select {
	case <-ctx.Done():
	default:
		t.Fatal("worker still running after Close")
	}
}

func TestLoopRunsUntilTerminate(t *testing.T) {
	h := newHarness()
	ctx := NewOffscreenContext(false, h.options()...)

	reached := make(chan struct{})
	var frames atomic.Int32
	var framesAtFinish int32
	ctx.Init(func(backend.Backend) {}, func(backend.Backend) {
		framesAtFinish = frames.Load()
	})
	ctx.Render(func(backend.Backend) {
		if frames.Add(1) == 5 {
			close(reached)
		}
	})

	<-reached
	go ctx.Terminate()
	ctx.Close()
	ctx.Terminate()

	total := frames.Load()
	assert.GreaterOrEqual(t, total, int32(5))
	assert.Equal(t, total, framesAtFinish)
	assert.Equal(t, uint64(total), ctx.Frames())
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, total, frames.Load())
}

func TestTerminateBeforeRenderStillRunsOneFrame(t *testing.T) {
	h := newHarness()
	ctx := NewOffscreenContext(false, h.options()...)
	ctx.Terminate()

	var frames atomic.Int32
	ctx.Init(nil, nil)
	ctx.Render(func(backend.Backend) { frames.Add(1) })
	ctx.Close()
	assert.Equal(t, int32(1), frames.Load())
}

func TestTerminateFromFrame(t *testing.T) {
	h := newHarness()
	ctx := NewOffscreenContext(false, h.options()...)

	var frames atomic.Int32
	ctx.Init(nil, nil)
	ctx.Render(func(backend.Backend) {
		if frames.Add(1) == 3 {
			ctx.Terminate()
		}
	})
	ctx.Close()
	assert.Equal(t, int32(3), frames.Load())
}

func TestLoopStopsWhenWindowCloses(t *testing.T) {
	h := newHarness()
	ctx := NewOffscreenContext(false, h.options()...)

	var frames atomic.Int32
	ctx.Init(nil, nil)
	ctx.Render(func(backend.Backend) {
		if frames.Add(1) == 2 {
			h.win.running.Store(false)
		}
	})
	ctx.Close()
	assert.Equal(t, int32(2), frames.Load())
}

func TestInitAndRenderAreSingleUse(t *testing.T) {
	h := newHarness()
	ctx := NewOffscreenContext(true, h.options()...)
	ctx.Init(nil, nil)
	assert.PanicsWithValue(t, "engine: Init called twice", func() { ctx.Init(nil, nil) })
	ctx.Render(func(backend.Backend) {})
	assert.PanicsWithValue(t, "engine: Render called twice", func() { ctx.Render(nil) })
	ctx.Close()
	ctx.Close()
}

func TestPanickingFrameStillFinishes(t *testing.T) {
	h := newHarness()
	ctx := NewOffscreenContext(false, h.options()...)

	var finished atomic.Bool
	ctx.Init(nil, func(backend.Backend) { finished.Store(true) })
	ctx.Render(func(backend.Backend) { panic("lost the device") })
	err := ctx.Close()

	assert.True(t, finished.Load())
	assert.Equal(t, uint64(1), ctx.Frames())
	assert.True(t, h.win.closed.Load())
	assert.EqualError(t, err, "engine: callback: frame callback panicked: lost the device")
	assert.Equal(t, []error{err}, h.fatalErrors())
}

func TestPanickingInitSkipsLoop(t *testing.T) {
	h := newHarness()
	ctx := NewOffscreenContext(false, h.options()...)

	var frames atomic.Int32
	var finished atomic.Bool
	ctx.Init(func(backend.Backend) { panic("bad shader") }, func(backend.Backend) { finished.Store(true) })
	ctx.Render(func(backend.Backend) { frames.Add(1) })
	err := ctx.Close()

	assert.Zero(t, frames.Load())
	assert.True(t, finished.Load())

	var fatal *FatalContextError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, "callback", fatal.Op)
	var cp *CallbackPanicError
	require.ErrorAs(t, err, &cp)
	assert.Equal(t, "init", cp.Stage)
	assert.Equal(t, "bad shader", cp.Value)
}

func TestMissingSlotInInitReachesCaller(t *testing.T) {
	h := newHarness()
	var closedAtFatal atomic.Bool
	ctx := NewOffscreenContext(false, h.options(WithFatalHandler(func(err error) {
		closedAtFatal.Store(h.win.closed.Load())
		h.mu.Lock()
		defer h.mu.Unlock()
		h.fatals = append(h.fatals, err)
	}))...)

	var finished atomic.Bool
	ctx.Init(func(b backend.Backend) {
		fs, err := shader.FromSource(b, "uniform sampler2D tex;\nout vec4 color;\nvoid main() {\n}\n", shader.ShaderTypeFragment, shader.WithLabel("shade"))
		if !assert.NoError(t, err) {
			return
		}
		fs.Sampler("missing")
	}, func(backend.Backend) { finished.Store(true) })
	ctx.Render(func(backend.Backend) { t.Error("frame ran after init failed") })
	err := ctx.Close()

	assert.True(t, finished.Load())
	assert.Zero(t, ctx.Frames())
	assert.True(t, closedAtFatal.Load(), "fatal reported after the window is destroyed")
	require.Len(t, h.fatalErrors(), 1)
	assert.Same(t, h.fatalErrors()[0], err)
	assert.Same(t, err, ctx.Err())

	var missing *shader.ResourceNotFoundError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "sampler", missing.Interface)
	assert.Equal(t, "missing", missing.Name)
	assert.Equal(t, "shade", missing.Label)
}

func TestCleanRunHasNoError(t *testing.T) {
	var logged bytes.Buffer
	logger.SetLogger(slog.New(slog.NewTextHandler(&logged, nil)))
	defer logger.SetLogger(nil)

	h := newHarness()
	ctx := NewOffscreenContext(true, h.options()...)
	ctx.Init(nil, nil)
	ctx.Render(func(backend.Backend) {})
	assert.NoError(t, ctx.Close())
	assert.NoError(t, ctx.Err())
	assert.Contains(t, logged.String(), `msg="context created" version="4.6 backendtest"`)
}

func TestExitOnFatalWritesToStderrWhenLoggerIsSilent(t *testing.T) {
	var out bytes.Buffer
	var code int
	fatalOutput, exit = &out, func(c int) { code = c }
	t.Cleanup(func() { fatalOutput, exit = os.Stderr, os.Exit })

	exitOnFatal(&FatalContextError{Op: "debug output", Err: errors.New("invalid operation")})

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "level=ERROR")
	assert.Contains(t, out.String(), "engine: debug output: invalid operation")
}

func TestExitOnFatalUsesInstalledLogger(t *testing.T) {
	var out, logged bytes.Buffer
	var code int
	fatalOutput, exit = &out, func(c int) { code = c }
	logger.SetLogger(slog.New(slog.NewTextHandler(&logged, nil)))
	t.Cleanup(func() {
		fatalOutput, exit = os.Stderr, os.Exit
		logger.SetLogger(nil)
	})

	exitOnFatal(&FatalContextError{Op: "create window", Err: errors.New("no display")})

	assert.Equal(t, 1, code)
	assert.Empty(t, out.String())
	assert.Contains(t, logged.String(), "engine: create window: no display")
}

func TestWindowFailureIsFatal(t *testing.T) {
	h := newHarness()
	cause := errors.New("no display")
	ctx := NewOffscreenContext(true, h.options(WithWindowFactory(func(window.Settings) (window.Window, error) {
		return nil, cause
	}))...)
	ctx.Close()

	fatals := h.fatalErrors()
	require.Len(t, fatals, 1)
	var fatal *FatalContextError
	require.ErrorAs(t, fatals[0], &fatal)
	assert.Equal(t, "create window", fatal.Op)
	assert.ErrorIs(t, fatals[0], cause)
}

func TestBackendFailureIsFatal(t *testing.T) {
	h := newHarness()
	ctx := NewOffscreenContext(true, h.options(WithBackendFactory(func() (backend.Backend, error) {
		return nil, errors.New("no GL 4.6")
	}))...)
	ctx.Close()

	fatals := h.fatalErrors()
	require.Len(t, fatals, 1)
	assert.EqualError(t, fatals[0], "engine: create backend: no GL 4.6")
	assert.True(t, h.win.closed.Load())
}

func TestMissingFactoriesPanic(t *testing.T) {
	assert.Panics(t, func() { NewOffscreenContext(true) })
}

func TestWindowSettingsFromConfig(t *testing.T) {
	h := newHarness()
	cfg := DefaultConfig()
	cfg.Title = "bake"
	cfg.Width, cfg.Height = 256, 128
	ctx := NewOffscreenContext(true, h.options(WithConfig(cfg), WithWindowOptions(window.WithTitle("override")))...)
	ctx.Init(nil, nil)
	ctx.Render(nil)
	ctx.Close()

	assert.Equal(t, window.Settings{
		Title:        "override",
		Width:        256,
		Height:       128,
		DebugContext: true,
		VersionMajor: 4,
		VersionMinor: 6,
	}, h.win.settings)
}

func TestDebugMessages(t *testing.T) {
	var buf bytes.Buffer
	logger.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer logger.SetLogger(nil)

	notification := backend.DebugMessage{Source: backend.DebugSourceAPI, Type: backend.DebugTypeOther, Severity: backend.DebugSeverityNotification, Message: "buffer uses video memory"}
	medium := backend.DebugMessage{Source: backend.DebugSourceAPI, Type: backend.DebugTypePerformance, Severity: backend.DebugSeverityMedium, Message: "pipeline recompiled"}
	fatal := backend.DebugMessage{Source: backend.DebugSourceAPI, Type: backend.DebugTypeError, Severity: backend.DebugSeverityHigh, Message: "invalid operation"}

	tests := []struct {
		name        string
		verbose     bool
		msg         backend.DebugMessage
		logged      bool
		expectFatal bool
	}{
		{name: "notification hidden", msg: notification},
		{name: "notification verbose", verbose: true, msg: notification, logged: true},
		{name: "medium logged", msg: medium, logged: true},
		{name: "error fatal", msg: fatal, logged: true, expectFatal: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			h := newHarness()
			cfg := DefaultConfig()
			cfg.Verbose = tt.verbose
			ctx := NewOffscreenContext(true, h.options(WithConfig(cfg))...)
			ctx.Init(nil, nil)
			ctx.Render(func(backend.Backend) {
				require.True(t, h.rec.IsEnabled(backend.DebugOutput))
				h.rec.Emit(tt.msg)
			})
			ctx.Close()

			assert.Equal(t, tt.logged, bytes.Contains(buf.Bytes(), []byte(tt.msg.Message)))
			fatals := h.fatalErrors()
			if !tt.expectFatal {
				assert.Empty(t, fatals)
				return
			}
			require.Len(t, fatals, 1)
			var fe *FatalContextError
			require.ErrorAs(t, fatals[0], &fe)
			assert.Equal(t, "debug output", fe.Op)
			assert.Contains(t, fe.Error(), "invalid operation")
		})
	}
}

func TestDebugOutputDisabled(t *testing.T) {
	h := newHarness()
	cfg := DefaultConfig()
	cfg.Debug = false
	ctx := NewOffscreenContext(true, h.options(WithConfig(cfg))...)
	ctx.Init(nil, nil)
	ctx.Render(nil)
	ctx.Close()
	assert.False(t, h.rec.IsEnabled(backend.DebugOutput))
}

func TestProfilingTicks(t *testing.T) {
	h := newHarness()
	ctx := NewOffscreenContext(true, h.options(WithProfiling(true))...)
	ctx.Init(nil, nil)
	ctx.Render(nil)
	ctx.Close()

	impl := ctx.(*offscreenContext)
	require.NotNil(t, impl.profiler)
	assert.Equal(t, uint64(1), impl.profiler.Frames())
}

func TestRenderFrameLimit(t *testing.T) {
	h := newHarness()
	ctx := NewOffscreenContext(false, h.options(WithRenderFrameLimit(200))...)

	var frames atomic.Int32
	start := time.Now()
	ctx.Init(nil, nil)
	ctx.Render(func(b backend.Backend) {
		if frames.Add(1) == 3 {
			ctx.Terminate()
		}
	})
	ctx.Close()
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	assert.Equal(t, 5*time.Millisecond, ctx.(*offscreenContext).renderFrameLimit)
}
