package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/engine"
	"github.com/wippyai/cvbridge/highgui"
	"github.com/wippyai/cvbridge/imgcodecs"
	"github.com/wippyai/cvbridge/native"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to the input image")
		outFile     = flag.String("out", "", "Path to write the result (optional)")
		opName      = flag.String("op", "copy", "Operation: "+strings.Join(opNames(), ", "))
		show        = flag.Bool("show", false, "Show the result in the terminal and wait for a key")
		memPages    = flag.Uint("mem", 0, "Host memory limit in 64KB pages (0 = default)")
		verbose     = flag.Bool("v", false, "Log engine activity to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: cvview -in <image> [-op name] [-out file] [-show]")
		fmt.Fprintln(os.Stderr, "       cvview -in <image> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			engine.SetLogger(l)
			core.SetLogger(l)
			defer func() { _ = l.Sync() }()
		}
	}

	var err error
	if *interactive {
		err = runInteractive(*inFile, *outFile, uint32(*memPages))
	} else {
		err = run(*inFile, *outFile, *opName, *show, uint32(*memPages))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inFile, outFile, opName string, show bool, memPages uint32) error {
	ctx := context.Background()

	o, err := lookupOp(opName)
	if err != nil {
		return err
	}

	cfg := &engine.Config{MemoryLimitPages: memPages}
	if show {
		cfg.WindowOutput = os.Stdout
		cfg.KeyInput = os.Stdin
	}
	e, err := engine.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer e.Close(ctx)
	restore := native.Swap(e)
	defer restore()

	res, err := process(inFile, outFile, o)
	if err != nil {
		return err
	}
	defer res.Close()

	if show {
		w, err := highgui.NewWindow("cvview", highgui.WindowAutosize)
		if err != nil {
			return fmt.Errorf("open window: %w", err)
		}
		defer w.Close()
		if err := w.SetTitle(inFile + " [" + o.name + "]"); err != nil {
			return err
		}
		if err := w.Show(res); err != nil {
			return fmt.Errorf("show: %w", err)
		}
		w.WaitKey(0)
	}

	s := e.Stats()
	fmt.Printf("Handles: %d created, %d released, %d live\n", s.Created, s.Released, s.LiveHandles)
	return nil
}

// process reads inFile, applies o and writes the result to outFile when set.
func process(inFile, outFile string, o op) (*core.Mat, error) {
	src, err := imgcodecs.IMRead(inFile, imgcodecs.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	defer src.Close()
	if src.Empty() {
		return nil, fmt.Errorf("read %s: not a decodable image", inFile)
	}

	res, err := o.apply(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.name, err)
	}
	fmt.Printf("%s: %s -> %s\n", o.name, describe(src), describe(res))

	if outFile != "" {
		if err := imgcodecs.IMWrite(outFile, res); err != nil {
			_ = res.Close()
			return nil, fmt.Errorf("write: %w", err)
		}
		fmt.Printf("Wrote %s\n", outFile)
	}
	return res, nil
}
