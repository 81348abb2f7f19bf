package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/cvbridge"
	"github.com/wippyai/cvbridge/engine/internal/heap"
	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/native"
	"github.com/wippyai/cvbridge/resource"
)

// Version reported by Engine.Version.
const Version = "4.9.0-cvbridge"

func init() {
	native.Register(func() (native.Library, error) {
		return New(context.Background(), nil)
	})
}

// Engine is an in-process native library. Matrices live in a wazero linear
// memory ("host"), device matrices in a second one ("device"), and every
// resource is tracked in a generation-tagged handle table.
type Engine struct {
	cfg    Config
	rt     wazero.Runtime
	host   *heap.Heap
	device *heap.Heap

	table *resource.Table
	stats *resource.Stats

	mats        *resource.Typed[*matHeader]
	gpuMats     *resource.Typed[*gpuMat]
	nets        *resource.Typed[*network]
	cascades    *resource.Typed[*cascade]
	gpuCascades *resource.Typed[*gpuCascade]
	msers       *resource.Typed[*blobDetector]
	blobs       *resource.Typed[*blobDetector]

	ui *windowSystem

	useAfterRelease atomic.Int64
	closed          atomic.Bool
}

var _ native.Library = (*Engine)(nil)

// New creates an engine. cfg may be nil.
func New(ctx context.Context, cfg *Config) (*Engine, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if c.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(c.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	host, err := heap.New(ctx, rt, "host", 0)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseNative, errors.KindAllocation, err, "create host memory")
	}
	device, err := heap.New(ctx, rt, "device", c.DeviceMemoryLimitPages)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseNative, errors.KindAllocation, err, "create device memory")
	}

	table := resource.NewTable()
	stats := &resource.Stats{}
	table.Subscribe(stats)

	e := &Engine{
		cfg:         c,
		rt:          rt,
		host:        host,
		device:      device,
		table:       table,
		stats:       stats,
		mats:        resource.NewTyped[*matHeader](table, native.TypeMat),
		gpuMats:     resource.NewTyped[*gpuMat](table, native.TypeGpuMat),
		nets:        resource.NewTyped[*network](table, native.TypeNet),
		cascades:    resource.NewTyped[*cascade](table, native.TypeCascadeClassifier),
		gpuCascades: resource.NewTyped[*gpuCascade](table, native.TypeGpuCascade),
		msers:       resource.NewTyped[*blobDetector](table, native.TypeMSER),
		blobs:       resource.NewTyped[*blobDetector](table, native.TypeSimpleBlobDetector),
	}
	e.ui = newWindowSystem(c.windowOutput(), c.KeyInput)

	Logger().Debug("engine started",
		zap.Uint32("memory_limit_pages", c.MemoryLimitPages),
		zap.Uint32("device_limit_pages", c.DeviceMemoryLimitPages))
	return e, nil
}

// Close releases every live resource and the wazero runtime.
func (e *Engine) Close(ctx context.Context) error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s := e.stats.Snapshot(); s.Live() > 0 {
		Logger().Warn("engine closed with live handles", zap.Int64("live", s.Live()))
	}
	e.ui.close()
	if err := e.table.Close(); err != nil {
		return err
	}
	return e.rt.Close(ctx)
}

// Memory returns the host linear memory.
func (e *Engine) Memory() cvbridge.Memory {
	return e.host
}

// Allocator returns the host allocator.
func (e *Engine) Allocator() cvbridge.Allocator {
	return e.host
}

// Version returns the library version string.
func (e *Engine) Version() string {
	return Version
}

// Stats is a snapshot of engine resource accounting.
type Stats struct {
	Created         int64
	Released        int64
	DoubleReleases  int64
	UseAfterRelease int64
	LiveHandles     int64
	HostBytes       uint64
	HostBlocks      int
	DeviceBytes     uint64
	DeviceBlocks    int
	InvalidFrees    int64
}

// Stats returns the current resource accounting.
func (e *Engine) Stats() Stats {
	s := e.stats.Snapshot()
	return Stats{
		Created:         s.Created,
		Released:        s.Dropped,
		DoubleReleases:  s.StaleDrops,
		UseAfterRelease: e.useAfterRelease.Load(),
		LiveHandles:     s.Live(),
		HostBytes:       e.host.Live(),
		HostBlocks:      e.host.Blocks(),
		DeviceBytes:     e.device.Live(),
		DeviceBlocks:    e.device.Blocks(),
		InvalidFrees:    e.host.InvalidFrees() + e.device.InvalidFrees(),
	}
}

// violation records and raises a use of a handle that does not resolve.
func (e *Engine) violation(op string, h resource.Handle) {
	e.useAfterRelease.Add(1)
	Logger().Error("use after release", zap.String("op", op), zap.Uint32("handle", uint32(h)))
	panic(errors.UseAfterRelease(op, uint32(h)))
}

// released reports the outcome of removing h from the table.
// A handle that no longer resolves is a double release.
func (e *Engine) released(op string, h resource.Handle, ok bool) error {
	if ok {
		debugf("%s: released %#x", op, uint32(h))
		return nil
	}
	Logger().Warn("double release", zap.String("op", op), zap.Uint32("handle", uint32(h)))
	return errors.DoubleRelease(op, uint32(h))
}

// nativeErr wraps an internal failure as an opaque native error.
func nativeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.KindOf(err) != "" {
		return err
	}
	return errors.Native(op, err.Error())
}

func nativeErrf(op, format string, args ...any) error {
	return errors.Native(op, fmt.Sprintf(format, args...))
}
