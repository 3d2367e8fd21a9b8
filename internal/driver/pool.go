// internal/driver/pool.go
package driver

import (
	"sync"

	"github.com/airsense/co2meter/internal/frame"
)

// DefaultPoolSize is the number of transfer buffers available to all
// attached devices together.
const DefaultPoolSize = 8

// Pool is a bounded free-list of transfer buffers shared across
// attached devices. One buffer is taken per poll iteration and returned
// when the iteration ends. An empty pool is the recoverable-exhaustion
// case: the iteration logs, skips the bus, and rearms.
type Pool struct {
	mu   sync.Mutex
	free [][]byte
}

// NewPool builds a pool of n frame-sized buffers. n < 1 falls back to
// DefaultPoolSize.
func NewPool(n int) *Pool {
	if n < 1 {
		n = DefaultPoolSize
	}
	p := &Pool{free: make([][]byte, 0, n)}
	for i := 0; i < n; i++ {
		p.free = append(p.free, make([]byte, frame.Size))
	}
	return p
}

// TryGet returns a zeroed transfer buffer, or nil when the pool is
// exhausted.
func (p *Pool) TryGet() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free) == 0 {
		return nil
	}
	buf := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// Put returns a buffer taken with TryGet. Foreign buffers are dropped.
func (p *Pool) Put(buf []byte) {
	if len(buf) != frame.Size {
		return
	}
	p.mu.Lock()
	p.free = append(p.free, buf)
	p.mu.Unlock()
}
