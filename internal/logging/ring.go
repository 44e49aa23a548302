package logging

import (
	"os"
	"sync"
)

// Ring is a thread-safe circular byte buffer holding the most recent log
// output. It implements io.Writer and overwrites old data when full.
type Ring struct {
	mu   sync.Mutex
	buf  []byte
	pos  int
	full bool
}

// NewRing creates a ring buffer with the given capacity in bytes.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = 256 * 1024
	}
	return &Ring{buf: make([]byte, size)}
}

// Write implements io.Writer, wrapping around when the buffer fills.
func (r *Ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(p)
	size := len(r.buf)
	if n >= size {
		copy(r.buf, p[n-size:])
		r.pos = 0
		r.full = true
		return n, nil
	}

	head := size - r.pos
	if n <= head {
		copy(r.buf[r.pos:], p)
		r.pos += n
		if r.pos == size {
			r.pos = 0
			r.full = true
		}
		return n, nil
	}

	copy(r.buf[r.pos:], p[:head])
	copy(r.buf, p[head:])
	r.pos = n - head
	r.full = true
	return n, nil
}

// Bytes returns the buffered contents in chronological order.
func (r *Ring) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		return append([]byte(nil), r.buf[:r.pos]...)
	}
	out := make([]byte, 0, len(r.buf))
	out = append(out, r.buf[r.pos:]...)
	return append(out, r.buf[:r.pos]...)
}

// DumpToFile writes the buffered contents to path.
func (r *Ring) DumpToFile(path string) error {
	return os.WriteFile(path, r.Bytes(), 0o644)
}
