// Package engine runs a graphics context on a dedicated, OS-thread-locked worker goroutine.
// Callers hand work to it through Init and Render; every GPU object is created, used and
// destroyed inside those callbacks, on the worker, against the backend.Backend they receive.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// Callback is caller logic run on the worker with the context current.
type Callback func(b backend.Backend)

// BackendFactory creates the backend for the context current on the calling thread.
type BackendFactory func() (backend.Backend, error)

// FatalContextError reports a failure after which the graphics context cannot be used: the
// window or backend could not be created, or the driver reported a severe error.
type FatalContextError struct {
	Op  string
	Err error
}

func (e *FatalContextError) Error() string {
	return fmt.Sprintf("engine: %s: %v", e.Op, e.Err)
}

func (e *FatalContextError) Unwrap() error {
	return e.Err
}

// CallbackPanicError carries the value a context callback panicked with.
type CallbackPanicError struct {
	Stage string
	Value any
}

func (e *CallbackPanicError) Error() string {
	return fmt.Sprintf("%s callback panicked: %v", e.Stage, e.Value)
}

// Unwrap returns the panic value when it is an error, such as a *shader.ResourceNotFoundError.
func (e *CallbackPanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// mailbox is a single-use hand-off of one value from a caller to the worker.
type mailbox[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	ready bool
	value T
}

func newMailbox[T any]() *mailbox[T] {
	m := &mailbox[T]{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// post stores v and wakes the worker. It reports false if the mailbox was already posted.
func (m *mailbox[T]) post(v T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ready {
		return false
	}
	m.value = v
	m.ready = true
	m.cond.Signal()
	return true
}

// take blocks until the mailbox is posted and returns the value.
func (m *mailbox[T]) take() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	for !m.ready {
		m.cond.Wait()
	}
	return m.value
}

type lifecycle struct {
	init, finish Callback
}

// offscreenContext implements the Context interface.
type offscreenContext struct {
	oneshot bool
	config  Config

	windowOptions  []window.WindowBuilderOption
	windowFactory  window.Factory
	backendFactory BackendFactory
	fatalHandler   func(error)

	initBox   *mailbox[lifecycle]
	renderBox *mailbox[Callback]

	quitMu sync.Mutex
	quit   bool

	frames   atomic.Uint64
	profiler *profiler.Profiler

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	// panics is only touched by the worker.
	panics []error

	errMu sync.Mutex
	err   error

	done chan struct{}
}

// Context owns a graphics context on a dedicated worker. The worker creates the window and
// backend as soon as the Context is constructed, then runs initFn, then the frame loop, then
// finishFn, and finally destroys the window.
type Context interface {
	// Init hands the setup and teardown callbacks to the worker. initFn runs once before any frame;
	// finishFn runs once after the last frame and before the window is destroyed. Init panics if
	// called twice.
	//
	// Parameters:
	//   - initFn: creates GPU objects
	//   - finishFn: releases GPU objects
	Init(initFn, finishFn Callback)

	// Render hands the frame callback to the worker and starts the loop. Each iteration polls
	// window events, runs frameFn, presents and then checks the quit flag, so at least one frame
	// always runs. Render panics if called twice.
	//
	// Parameters:
	//   - frameFn: draws one frame
	Render(frameFn Callback)

	// Terminate asks the loop to stop after the frame in flight. It is safe to call from any
	// goroutine, including from inside a callback, and any number of times.
	Terminate()

	// Close waits for the worker to finish and the window to be destroyed. It blocks until Init
	// and Render have both been called and the loop has ended.
	//
	// Returns:
	//   - error: the first fatal error of the run, as returned by Err
	Close() error

	// Err returns the first *FatalContextError of the run, or nil. A panic in a callback is
	// reported as one with Op "callback" wrapping a *CallbackPanicError, after finishFn has run
	// and the window has been destroyed.
	Err() error

	// Done is closed when the worker has exited.
	Done() <-chan struct{}

	// Frames returns the number of frames rendered so far.
	Frames() uint64
}

var _ Context = &offscreenContext{}

// NewOffscreenContext starts a worker that creates a window and backend with the configured
// factories and waits for Init. In oneshot mode the loop terminates itself after one frame.
//
// Parameters:
//   - oneshot: render exactly one frame
//   - options: functional options for context configuration
//
// Returns:
//   - Context: the running context
func NewOffscreenContext(oneshot bool, options ...ContextBuilderOption) Context {
	c := &offscreenContext{
		oneshot:      oneshot,
		config:       DefaultConfig(),
		fatalHandler: exitOnFatal,
		initBox:      newMailbox[lifecycle](),
		renderBox:    newMailbox[Callback](),
		done:         make(chan struct{}),
	}
	for _, opt := range options {
		opt(c)
	}
	if c.windowFactory == nil || c.backendFactory == nil {
		panic("engine: a window and a backend factory are required; use native.NewOffscreenContext or WithWindowFactory and WithBackendFactory")
	}
	if c.config.Profiling {
		c.profiler = profiler.NewProfiler(profiler.WithInterval(c.config.ProfileInterval.Duration))
	}

	go c.run()
	return c
}

var (
	fatalOutput io.Writer = os.Stderr
	exit                  = os.Exit
)

// exitOnFatal is the default fatal handler. It writes to stderr when the installed logger drops
// error records, then exits with status 1.
func exitOnFatal(err error) {
	l := logger.Logger()
	if !l.Enabled(context.Background(), slog.LevelError) {
		l = slog.New(slog.NewTextHandler(fatalOutput, nil))
	}
	l.Error("fatal context error", "error", err)
	exit(1)
}

// fail records err as the run's error if it is the first, then passes it to the fatal handler.
func (c *offscreenContext) fail(err error) {
	c.errMu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.errMu.Unlock()
	c.fatalHandler(err)
}

func (c *offscreenContext) Init(initFn, finishFn Callback) {
	if !c.initBox.post(lifecycle{init: initFn, finish: finishFn}) {
		panic("engine: Init called twice")
	}
}

func (c *offscreenContext) Render(frameFn Callback) {
	if !c.renderBox.post(frameFn) {
		panic("engine: Render called twice")
	}
}

func (c *offscreenContext) Terminate() {
	c.quitMu.Lock()
	defer c.quitMu.Unlock()
	c.quit = true
}

func (c *offscreenContext) quitting() bool {
	c.quitMu.Lock()
	defer c.quitMu.Unlock()
	return c.quit
}

func (c *offscreenContext) Close() error {
	<-c.done
	return c.Err()
}

func (c *offscreenContext) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

func (c *offscreenContext) Done() <-chan struct{} {
	return c.done
}

func (c *offscreenContext) Frames() uint64 {
	return c.frames.Load()
}

// run is the worker. The graphics context is bound to the OS thread, so the goroutine stays
// locked for its whole life.
func (c *offscreenContext) run() {
	defer close(c.done)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer func() {
		if len(c.panics) > 0 {
			c.fail(&FatalContextError{Op: "callback", Err: errors.Join(c.panics...)})
		}
	}()

	settings := window.NewSettings(append(c.config.windowOptions(), c.windowOptions...)...)
	win, err := c.windowFactory(settings)
	if err != nil {
		c.fail(&FatalContextError{Op: "create window", Err: err})
		return
	}
	defer func() {
		if err := win.Close(); err != nil {
			logger.Logger().Warn("closing window", "error", err)
		}
	}()
	win.MakeContextCurrent()

	b, err := c.backendFactory()
	if err != nil {
		c.fail(&FatalContextError{Op: "create backend", Err: err})
		return
	}
	if c.config.Debug {
		b.EnableDebugOutput(c.debugMessage)
	}
	logger.Logger().Info("context created", "version", b.Version(), "width", win.Width(), "height", win.Height(), "oneshot", c.oneshot)

	cb := c.initBox.take()
	initialized := c.guard("init", b, cb.init)

	frameFn := c.renderBox.take()
	if initialized {
		c.loop(win, b, frameFn)
	}

	c.guard("finish", b, cb.finish)
	logger.Logger().Info("context finished", "frames", c.Frames())
}

func (c *offscreenContext) loop(win window.Window, b backend.Backend, frameFn Callback) {
	for {
		start := time.Now()
		win.PollEvents()
		if !c.guard("frame", b, frameFn) {
			c.Terminate()
		}
		win.SwapBuffers()
		c.frames.Add(1)

		if c.profiler != nil {
			c.profiler.Tick()
		}
		if c.oneshot {
			c.Terminate()
		}
		if c.quitting() || !win.IsRunning() {
			return
		}

		if c.renderFrameLimit > 0 {
			if remaining := c.renderFrameLimit - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// guard runs fn and recovers a panic in it so that teardown still runs. The panic is reported
// through the fatal handler once the window is destroyed. It reports whether fn returned normally.
func (c *offscreenContext) guard(stage string, b backend.Backend, fn Callback) (ok bool) {
	if fn == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Logger().Error("callback panicked", "stage", stage, "panic", r)
			c.panics = append(c.panics, &CallbackPanicError{Stage: stage, Value: r})
			ok = false
		}
	}()
	fn(b)
	return true
}

// debugMessage routes a driver debug message by class. Fatal messages go to the fatal handler.
func (c *offscreenContext) debugMessage(msg backend.DebugMessage) {
	class := backend.Classify(msg)
	if class == backend.DebugClassVerbose && !c.config.Verbose {
		return
	}
	logger.Logger().Log(context.Background(), class.Level(), msg.Message, msg.Attrs()...)
	if class == backend.DebugClassFatal {
		c.fail(&FatalContextError{Op: "debug output", Err: errors.New(msg.String())})
	}
}
