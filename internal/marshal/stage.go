package marshal

import (
	"encoding/binary"
	"image"
	"math"
	"sync"

	"github.com/wippyai/cvbridge"
	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/native"
)

// Boundary is the part of the library staging needs.
type Boundary interface {
	Memory() cvbridge.Memory
	Allocator() cvbridge.Allocator
}

type block struct {
	ptr, size, align uint32
}

// Staging records the blocks staged for one call.
type Staging struct {
	blocks []block
}

var stagingPool = sync.Pool{
	New: func() any {
		return &Staging{blocks: make([]block, 0, 4)}
	},
}

const maxPooledBlocks = 64

// NewStaging returns an empty list from the pool.
func NewStaging() *Staging {
	return stagingPool.Get().(*Staging)
}

// Free frees every recorded block.
func (s *Staging) Free(alloc cvbridge.Allocator) {
	if alloc == nil {
		return
	}
	for _, b := range s.blocks {
		if b.ptr != 0 {
			alloc.Free(b.ptr, b.size, b.align)
		}
	}
	s.blocks = s.blocks[:0]
}

// Release returns the list to the pool. The list is invalid afterwards.
func (s *Staging) Release() {
	if cap(s.blocks) > maxPooledBlocks {
		return
	}
	s.blocks = s.blocks[:0]
	stagingPool.Put(s)
}

// FreeAndRelease frees the blocks and returns the list to the pool.
func (s *Staging) FreeAndRelease(alloc cvbridge.Allocator) {
	s.Free(alloc)
	s.Release()
}

// Len returns the number of staged blocks.
func (s *Staging) Len() int {
	return len(s.blocks)
}

func (s *Staging) stage(b Boundary, data []byte, align uint32) (uint32, error) {
	if len(data) > math.MaxInt32 {
		return 0, errors.InvalidInput(errors.PhaseEncode, "buffer exceeds the 2 GiB boundary limit")
	}
	size := uint32(len(data))
	alloc := b.Allocator()
	ptr, err := alloc.Alloc(size, align)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseEncode, errors.KindAllocation, err, "stage buffer")
	}
	s.blocks = append(s.blocks, block{ptr: ptr, size: size, align: align})

	if err := b.Memory().Write(ptr, data); err != nil {
		return 0, errors.Wrap(errors.PhaseEncode, errors.KindNative, err, "write staged buffer")
	}
	return ptr, nil
}

// StageBytes copies data into native memory and describes it as a ByteArray.
// An empty slice stages nothing and yields the zero ByteArray.
func StageBytes(b Boundary, s *Staging, data []byte) (native.ByteArray, error) {
	if len(data) == 0 {
		return native.ByteArray{}, nil
	}
	ptr, err := s.stage(b, data, 1)
	if err != nil {
		return native.ByteArray{}, err
	}
	return native.ByteArray{Data: native.Ptr(ptr), Length: int32(len(data))}, nil
}

// StagePoints lays pts out as PointStride records and stages them.
func StagePoints(b Boundary, s *Staging, pts []image.Point) (native.Points, error) {
	if len(pts) == 0 {
		return native.Points{}, nil
	}
	buf := make([]byte, len(pts)*native.PointStride)
	for i, p := range pts {
		if p.X != int(int32(p.X)) || p.Y != int(int32(p.Y)) {
			return native.Points{}, errors.New(errors.PhaseEncode, errors.KindOutOfBounds).
				Path("points").
				Value(p).
				Detail("point %d does not fit in 32 bits", i).
				Build()
		}
		binary.LittleEndian.PutUint32(buf[i*native.PointStride:], uint32(int32(p.X)))
		binary.LittleEndian.PutUint32(buf[i*native.PointStride+4:], uint32(int32(p.Y)))
	}
	ptr, err := s.stage(b, buf, 4)
	if err != nil {
		return native.Points{}, err
	}
	return native.Points{Points: native.Ptr(ptr), Length: int32(len(pts))}, nil
}
