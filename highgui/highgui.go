// Package highgui shows images in named windows.
//
// Window systems expect every call from the thread that created the window,
// so each Window owns a goroutine locked to one OS thread and runs all of its
// calls there. Methods block until the call completes.
package highgui

import (
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/internal/codes"
	"github.com/wippyai/cvbridge/internal/handle"
	"github.com/wippyai/cvbridge/internal/marshal"
	"github.com/wippyai/cvbridge/native"
)

// WindowFlag selects how a window sizes itself.
type WindowFlag int32

const (
	WindowNormal     WindowFlag = 0
	WindowAutosize   WindowFlag = 1
	WindowFullscreen WindowFlag = 1
	WindowFreeRatio  WindowFlag = 0x100
	WindowKeepRatio  WindowFlag = 0
	WindowOpenGL     WindowFlag = 0x1000
)

var windowFlags = codes.New("WindowFlag",
	codes.Entry[WindowFlag]{Value: WindowNormal, Name: "WindowNormal"},
	codes.Entry[WindowFlag]{Value: WindowAutosize, Name: "WindowAutosize"},
	codes.Entry[WindowFlag]{Value: WindowFullscreen, Name: "WindowFullscreen"},
	codes.Entry[WindowFlag]{Value: WindowFreeRatio, Name: "WindowFreeRatio"},
	codes.Entry[WindowFlag]{Value: WindowKeepRatio, Name: "WindowKeepRatio"},
	codes.Entry[WindowFlag]{Value: WindowOpenGL, Name: "WindowOpenGL"},
)

// ParseWindowFlag decodes a single window flag.
func ParseWindowFlag(code int32) (WindowFlag, error) { return windowFlags.Decode(code) }

func (f WindowFlag) String() string { return windowFlags.Name(f) }

// WindowProperty names a window property.
type WindowProperty int32

const (
	WindowPropertyFullscreen  WindowProperty = 0
	WindowPropertyAutosize    WindowProperty = 1
	WindowPropertyAspectRatio WindowProperty = 2
	WindowPropertyOpenGL      WindowProperty = 3
	WindowPropertyVisible     WindowProperty = 4
)

var windowProperties = codes.New("WindowProperty",
	codes.Entry[WindowProperty]{Value: WindowPropertyFullscreen, Name: "WindowPropertyFullscreen"},
	codes.Entry[WindowProperty]{Value: WindowPropertyAutosize, Name: "WindowPropertyAutosize"},
	codes.Entry[WindowProperty]{Value: WindowPropertyAspectRatio, Name: "WindowPropertyAspectRatio"},
	codes.Entry[WindowProperty]{Value: WindowPropertyOpenGL, Name: "WindowPropertyOpenGL"},
	codes.Entry[WindowProperty]{Value: WindowPropertyVisible, Name: "WindowPropertyVisible"},
)

// ParseWindowProperty decodes a property code.
func ParseWindowProperty(code int32) (WindowProperty, error) { return windowProperties.Decode(code) }

func (p WindowProperty) String() string { return windowProperties.Name(p) }

// result carries a call's outcome, or its panic, back to the caller.
type result struct {
	val       float64
	key       int32
	err       error
	recovered any
}

type call func() result

// serve runs calls on the current goroutine, locked to its OS thread, until
// calls is closed.
func serve(calls <-chan call, replies chan<- result, done chan<- struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(done)
	for c := range calls {
		replies <- run(c)
	}
}

func run(c call) (r result) {
	defer func() {
		if p := recover(); p != nil {
			r = result{recovered: p}
		}
	}()
	return c()
}

type thread struct {
	mu      sync.Mutex
	calls   chan call
	replies chan result
	done    chan struct{}
	stopped bool
}

func startThread() *thread {
	t := &thread{calls: make(chan call), replies: make(chan result), done: make(chan struct{})}
	go serve(t.calls, t.replies, t.done)
	return t
}

func (t *thread) do(c call) (result, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return result{}, false
	}
	t.calls <- c
	r := <-t.replies
	if r.recovered != nil {
		panic(r.recovered)
	}
	return r, true
}

func (t *thread) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	close(t.calls)
	<-t.done
}

// Window is a named window on its own OS thread.
type Window struct {
	name    string
	lib     native.Library
	t       *thread
	open    atomic.Bool
	cleanup runtime.Cleanup
}

type abandoned struct {
	name string
	lib  native.Library
	t    *thread
}

func closeAbandoned(a abandoned) {
	handle.Logger().Warn("window garbage collected without Close", zap.String("window", a.name))
	a.t.do(func() result { return result{err: a.lib.WindowClose(a.name)} })
	a.t.stop()
}

// NewWindow opens a window called name.
func NewWindow(name string, flags WindowFlag) (*Window, error) {
	if err := marshal.CString(name); err != nil {
		return nil, err
	}
	lib := native.Default()
	t := startThread()
	r, _ := t.do(func() result { return result{err: lib.NewWindow(name, int32(flags))} })
	if r.err != nil {
		t.stop()
		return nil, r.err
	}
	w := &Window{name: name, lib: lib, t: t}
	w.open.Store(true)
	w.cleanup = runtime.AddCleanup(w, closeAbandoned, abandoned{name: name, lib: lib, t: t})
	return w, nil
}

// Name returns the window name.
func (w *Window) Name() string { return w.name }

// IsOpen reports whether Close has not been called yet.
func (w *Window) IsOpen() bool { return w.open.Load() }

func (w *Window) do(op string, c call) result {
	r, ok := w.t.do(c)
	if !ok {
		panic(errors.New(errors.PhaseNative, errors.KindUseAfterRelease).
			Op(op).Value(w.name).Detail("window %q used after close", w.name).Build())
	}
	return r
}

// Show renders img in the window.
func (w *Window) Show(img *core.Mat) error {
	h := img.Ptr()
	if err := core.SameLibrary("Window_IMShow", w.lib, img); err != nil {
		return err
	}
	return w.do("Window_IMShow", func() result { return result{err: w.lib.WindowShow(w.name, h)} }).err
}

// WaitKey waits up to delay milliseconds for a key press, forever when delay
// is not positive, and returns the key or -1.
func (w *Window) WaitKey(delay int) int {
	return int(w.do("Window_WaitKey", func() result { return result{key: w.lib.WindowWaitKey(int32(delay))} }).key)
}

// GetProperty reads a window property.
func (w *Window) GetProperty(prop WindowProperty) (float64, error) {
	r := w.do("Window_GetProperty", func() result {
		v, err := w.lib.WindowGetProperty(w.name, windowProperties.Encode(prop))
		return result{val: v, err: err}
	})
	return r.val, r.err
}

// SetProperty changes a window property.
func (w *Window) SetProperty(prop WindowProperty, value float64) error {
	return w.do("Window_SetProperty", func() result {
		return result{err: w.lib.WindowSetProperty(w.name, windowProperties.Encode(prop), value)}
	}).err
}

// SetTitle changes the displayed title.
func (w *Window) SetTitle(title string) error {
	if err := marshal.CString(title); err != nil {
		return err
	}
	return w.do("Window_SetTitle", func() result { return result{err: w.lib.WindowSetTitle(w.name, title)} }).err
}

// Move places the window at x, y.
func (w *Window) Move(x, y int) error {
	return w.do("Window_Move", func() result { return result{err: w.lib.WindowMove(w.name, int32(x), int32(y))} }).err
}

// Resize sets the window size.
func (w *Window) Resize(width, height int) error {
	return w.do("Window_Resize", func() result {
		return result{err: w.lib.WindowResize(w.name, int32(width), int32(height))}
	}).err
}

// Close closes the window and stops its thread. Closing twice does nothing.
func (w *Window) Close() error {
	if !w.open.CompareAndSwap(true, false) {
		return nil
	}
	w.cleanup.Stop()
	r := w.do("Window_Close", func() result { return result{err: w.lib.WindowClose(w.name)} })
	w.t.stop()
	return r.err
}
