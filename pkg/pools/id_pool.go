// Package pools recycles the scratch slices the layout engine churns
// through every frame, keeping per-tick allocations off the hot path.
package pools

import (
	"sync"
)

// IDPool pools node-id slices used for neighbor candidates, BFS queues
// and per-partition work lists.
type IDPool struct {
	small  sync.Pool // <= 64 elements
	medium sync.Pool // <= 512 elements
	large  sync.Pool // <= 4096 elements
}

// NewIDPool creates a node-id slice pool.
func NewIDPool() *IDPool {
	return &IDPool{
		small: sync.Pool{
			New: func() any {
				s := make([]uint64, 0, 64)
				return &s
			},
		},
		medium: sync.Pool{
			New: func() any {
				s := make([]uint64, 0, 512)
				return &s
			},
		},
		large: sync.Pool{
			New: func() any {
				s := make([]uint64, 0, 4096)
				return &s
			},
		},
	}
}

// Get returns an empty id slice with at least the requested capacity.
func (p *IDPool) Get(size int) []uint64 {
	var pool *sync.Pool
	switch {
	case size <= 64:
		pool = &p.small
	case size <= 512:
		pool = &p.medium
	case size <= 4096:
		pool = &p.large
	default:
		return make([]uint64, 0, size)
	}

	sp, ok := pool.Get().(*[]uint64)
	if !ok || cap(*sp) < size {
		return make([]uint64, 0, size)
	}
	return (*sp)[:0]
}

// Put returns an id slice to the pool. Very large slices are dropped so
// one oversized query cannot pin memory.
func (p *IDPool) Put(s []uint64) {
	c := cap(s)
	if c > 100000 {
		return
	}

	s = s[:0]

	var pool *sync.Pool
	switch {
	case c <= 64:
		pool = &p.small
	case c <= 512:
		pool = &p.medium
	case c <= 4096:
		pool = &p.large
	default:
		return
	}
	pool.Put(&s)
}

// Default global id pool.
var defaultIDPool = NewIDPool()

// GetIDs returns an id slice from the default pool.
func GetIDs(size int) []uint64 {
	return defaultIDPool.Get(size)
}

// PutIDs returns an id slice to the default pool.
func PutIDs(s []uint64) {
	defaultIDPool.Put(s)
}
