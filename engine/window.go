package engine

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/cvbridge/engine/internal/raster"
	"github.com/wippyai/cvbridge/native"
)

// Window flags and properties, OpenCV numbering.
const (
	windowAutosize  int32 = 1
	windowOpenGL    int32 = 0x1000
	windowFreeRatio int32 = 0x100

	propFullscreen  int32 = 0
	propAutosize    int32 = 1
	propAspectRatio int32 = 2
	propOpenGL      int32 = 3
	propVisible     int32 = 4
)

const defaultTermWidth = 80

var windowTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1)

type window struct {
	title         string
	flags         int32
	x, y          int32
	width, height int32 // zero until Resize
	props         map[int32]float64
}

// windowSystem renders windows as half-block text to an io.Writer and reads
// key presses from an optional io.Reader.
type windowSystem struct {
	mu      sync.Mutex
	out     io.Writer
	windows map[string]*window
	keys    chan byte
	restore func()
}

func newWindowSystem(out io.Writer, in io.Reader) *windowSystem {
	ws := &windowSystem{out: out, windows: map[string]*window{}, restore: func() {}}
	if in == nil {
		return ws
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if state, err := term.MakeRaw(int(f.Fd())); err == nil {
			ws.restore = func() { _ = term.Restore(int(f.Fd()), state) }
		} else {
			Logger().Warn("raw terminal mode unavailable", zap.Error(err))
		}
	}
	ws.keys = make(chan byte, 64)
	go func() {
		defer close(ws.keys)
		buf := make([]byte, 1)
		for {
			if _, err := in.Read(buf); err != nil {
				return
			}
			ws.keys <- buf[0]
		}
	}()
	return ws
}

func (ws *windowSystem) close() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	clear(ws.windows)
	ws.restore()
	ws.restore = func() {}
}

func (ws *windowSystem) lookup(op, name string) (*window, error) {
	w, ok := ws.windows[name]
	if !ok {
		return nil, nativeErrf(op, "no window named %q", name)
	}
	return w, nil
}

// termWidth is the column count of the output terminal, or a default when
// the output is not one.
func (ws *windowSystem) termWidth() int {
	if f, ok := ws.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultTermWidth
}

// NewWindow creates a window, or returns quietly when it already exists.
func (e *Engine) NewWindow(name string, flags int32) error {
	ws := e.ui
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if _, ok := ws.windows[name]; ok {
		return nil
	}
	props := map[int32]float64{
		propFullscreen:  0,
		propAutosize:    0,
		propAspectRatio: 0,
		propOpenGL:      0,
		propVisible:     1,
	}
	if flags&windowAutosize != 0 {
		props[propAutosize] = 1
	}
	if flags&windowFreeRatio != 0 {
		props[propAspectRatio] = 1
	}
	if flags&windowOpenGL != 0 {
		props[propOpenGL] = 1
	}
	ws.windows[name] = &window{title: name, flags: flags, props: props}
	debugf("window %q created with flags %#x", name, flags)
	return nil
}

// WindowShow renders img into the named window.
func (e *Engine) WindowShow(name string, img native.Mat) error {
	const op = "Window_IMShow"
	ws := e.ui
	h := e.mat(op, img)
	ws.mu.Lock()
	defer ws.mu.Unlock()
	w, err := ws.lookup(op, name)
	if err != nil {
		return err
	}
	f, err := e.frame(op, h)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(ws.out, ws.render(w, f)); err != nil {
		return nativeErr(op, err)
	}
	return nil
}

// render draws f as rows of upper half blocks, two pixel rows per line.
func (ws *windowSystem) render(w *window, f raster.Frame) string {
	cols, rows := f.Cols, f.Rows
	if w.width > 0 && w.height > 0 && w.props[propAutosize] == 0 {
		cols, rows = int(w.width), int(w.height)
	}
	if limit := ws.termWidth(); cols > limit {
		rows = max(rows*limit/cols, 1)
		cols = limit
	}
	img := f.Image()
	if cols != f.Cols || rows != f.Rows {
		img = imaging.Resize(img, cols, rows, imaging.Box)
	}
	scaled := raster.FromImage(img, 3)

	var b strings.Builder
	b.WriteString(windowTitleStyle.Render(w.title))
	b.WriteByte('\n')
	for y := 0; y < scaled.Rows; y += 2 {
		for x := 0; x < scaled.Cols; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(scaled, x, y))
			if y+1 < scaled.Rows {
				style = style.Background(hexColor(scaled, x, y+1))
			}
			b.WriteString(style.Render("▀"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func hexColor(f raster.Frame, x, y int) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", f.At(x, y, 2), f.At(x, y, 1), f.At(x, y, 0)))
}

// WindowWaitKey waits up to delay milliseconds for a key, forever when delay
// is not positive. It returns -1 when no key arrives.
func (e *Engine) WindowWaitKey(delay int32) int32 {
	keys := e.ui.keys
	if keys == nil {
		if delay > 0 {
			time.Sleep(time.Duration(delay) * time.Millisecond)
		}
		return -1
	}
	if delay <= 0 {
		k, ok := <-keys
		if !ok {
			return -1
		}
		return int32(k)
	}
	timer := time.NewTimer(time.Duration(delay) * time.Millisecond)
	defer timer.Stop()
	select {
	case k, ok := <-keys:
		if !ok {
			return -1
		}
		return int32(k)
	case <-timer.C:
		return -1
	}
}

// WindowGetProperty reads a window property.
func (e *Engine) WindowGetProperty(name string, prop int32) (float64, error) {
	const op = "Window_GetProperty"
	ws := e.ui
	ws.mu.Lock()
	defer ws.mu.Unlock()
	w, err := ws.lookup(op, name)
	if err != nil {
		return 0, err
	}
	v, ok := w.props[prop]
	if !ok {
		return 0, nativeErrf(op, "unknown window property %d", prop)
	}
	return v, nil
}

// WindowSetProperty changes the fullscreen or aspect ratio property.
func (e *Engine) WindowSetProperty(name string, prop int32, value float64) error {
	const op = "Window_SetProperty"
	ws := e.ui
	ws.mu.Lock()
	defer ws.mu.Unlock()
	w, err := ws.lookup(op, name)
	if err != nil {
		return err
	}
	switch prop {
	case propFullscreen, propAspectRatio:
		w.props[prop] = value
		return nil
	case propAutosize, propOpenGL, propVisible:
		return nativeErrf(op, "window property %d is read-only", prop)
	default:
		return nativeErrf(op, "unknown window property %d", prop)
	}
}

// WindowSetTitle changes the title rendered above the window.
func (e *Engine) WindowSetTitle(name, title string) error {
	return e.withWindow("Window_SetTitle", name, func(w *window) { w.title = title })
}

// WindowMove records the window position.
func (e *Engine) WindowMove(name string, x, y int32) error {
	return e.withWindow("Window_Move", name, func(w *window) { w.x, w.y = x, y })
}

// WindowResize sets the rendered size of a window without the autosize flag.
func (e *Engine) WindowResize(name string, width, height int32) error {
	if width <= 0 || height <= 0 {
		return nativeErrf("Window_Resize", "size %dx%d must be positive", width, height)
	}
	return e.withWindow("Window_Resize", name, func(w *window) { w.width, w.height = width, height })
}

// WindowClose destroys the named window.
func (e *Engine) WindowClose(name string) error {
	const op = "Window_Close"
	ws := e.ui
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if _, err := ws.lookup(op, name); err != nil {
		return err
	}
	delete(ws.windows, name)
	return nil
}

func (e *Engine) withWindow(op, name string, fn func(*window)) error {
	ws := e.ui
	ws.mu.Lock()
	defer ws.mu.Unlock()
	w, err := ws.lookup(op, name)
	if err != nil {
		return err
	}
	fn(w)
	return nil
}
