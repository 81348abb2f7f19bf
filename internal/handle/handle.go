// Package handle ties a native handle to the Go wrapper that owns it.
//
// A Ref releases its handle exactly once: on the first Close, or from a
// runtime cleanup when the wrapper becomes unreachable without Close. Any
// access through a closed Ref panics with a use_after_release error.
package handle

import (
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/cvbridge/errors"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the wrapper lifecycle logger, a no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger replaces the lifecycle logger. Safe for concurrent use.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

// Ref is the owned handle embedded in a wrapper.
type Ref[H ~uint32] struct {
	id      H
	kind    string
	release func(H) error
	closed  atomic.Bool
	cleanup runtime.Cleanup
}

type orphan[H ~uint32] struct {
	id      H
	kind    string
	release func(H) error
}

func releaseOrphan[H ~uint32](o orphan[H]) {
	Logger().Warn("wrapper garbage collected without Close",
		zap.String("kind", o.kind), zap.Uint32("handle", uint32(o.id)))
	if err := o.release(o.id); err != nil {
		Logger().Warn("release orphaned handle", zap.String("kind", o.kind), zap.Error(err))
	}
}

// Track makes r own id on behalf of owner. release must not refer to owner.
func Track[T any, H ~uint32](owner *T, r *Ref[H], kind string, id H, release func(H) error) {
	r.id, r.kind, r.release = id, kind, release
	r.cleanup = runtime.AddCleanup(owner, releaseOrphan[H], orphan[H]{id: id, kind: kind, release: release})
	Logger().Debug("handle adopted", zap.String("kind", kind), zap.Uint32("handle", uint32(id)))
}

// Get returns the handle for op. It panics if r is closed.
func (r *Ref[H]) Get(op string) H {
	if r.closed.Load() {
		panic(errors.UseAfterRelease(op, uint32(r.id)))
	}
	return r.id
}

// Close releases the handle on the first call and does nothing afterwards.
func (r *Ref[H]) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	r.cleanup.Stop()
	err := r.release(r.id)
	if err != nil {
		Logger().Warn("release failed", zap.String("kind", r.kind), zap.Uint32("handle", uint32(r.id)), zap.Error(err))
	}
	return err
}

// Closed reports whether Close was called.
func (r *Ref[H]) Closed() bool {
	return r.closed.Load()
}
