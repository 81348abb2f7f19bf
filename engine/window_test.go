package engine

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/native"
)

func TestWindow(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	e, err := New(ctx, &Config{WindowOutput: &out, KeyInput: strings.NewReader("q")})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close(ctx)

	if err := e.NewWindow("preview", windowAutosize); err != nil {
		t.Fatal(err)
	}
	if err := e.WindowSetTitle("preview", "Preview"); err != nil {
		t.Fatal(err)
	}
	img := mustMat(t)(e.NewMatWithSizeFromScalar(native.Scalar{Val3: 255}, 4, 6, makeType(depth8U, 3)))
	defer e.CloseMat(img)
	if err := e.WindowShow("preview", img); err != nil {
		t.Fatal(err)
	}
	rendered := out.String()
	if !strings.Contains(rendered, "Preview") || strings.Count(rendered, "▀") != 12 {
		t.Errorf("rendered window = %q", rendered)
	}

	if k := e.WindowWaitKey(1000); k != 'q' {
		t.Errorf("key = %d, want 'q'", k)
	}
	if k := e.WindowWaitKey(10); k != -1 {
		t.Errorf("key after input ended = %d, want -1", k)
	}

	if v, err := e.WindowGetProperty("preview", propAutosize); err != nil || v != 1 {
		t.Errorf("autosize = %v, %v", v, err)
	}
	if err := e.WindowSetProperty("preview", propFullscreen, 1); err != nil {
		t.Fatal(err)
	}
	if v, _ := e.WindowGetProperty("preview", propFullscreen); v != 1 {
		t.Errorf("fullscreen = %v", v)
	}
	if err := e.WindowSetProperty("preview", propVisible, 0); errors.KindOf(err) != errors.KindNative {
		t.Errorf("read-only property: err = %v", err)
	}
	if _, err := e.WindowGetProperty("preview", 99); errors.KindOf(err) != errors.KindNative {
		t.Errorf("unknown property: err = %v", err)
	}
	if err := e.WindowMove("preview", 10, 20); err != nil {
		t.Fatal(err)
	}
	if err := e.WindowResize("preview", 0, 5); errors.KindOf(err) != errors.KindNative {
		t.Errorf("zero resize: err = %v", err)
	}

	if err := e.WindowClose("preview"); err != nil {
		t.Fatal(err)
	}
	if err := e.WindowShow("preview", img); errors.KindOf(err) != errors.KindNative {
		t.Errorf("show on closed window: err = %v", err)
	}
}

func TestWindow_ResizeScalesRendering(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	e, err := New(ctx, &Config{WindowOutput: &out})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close(ctx)

	_ = e.NewWindow("w", 0)
	if err := e.WindowResize("w", 3, 2); err != nil {
		t.Fatal(err)
	}
	img := mustMat(t)(e.NewMatWithSize(40, 60, makeType(depth8U, 1)))
	defer e.CloseMat(img)
	if err := e.WindowShow("w", img); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out.String(), "▀"); n != 3 {
		t.Errorf("rendered cells = %d, want 3", n)
	}

	if k := e.WindowWaitKey(1); k != -1 {
		t.Errorf("no keyboard: key = %d", k)
	}
}
