// internal/driver/session.go
package driver

import (
	"io"
	"io/fs"
	"strconv"
	"time"
)

// sessionCap bounds the formatted reading, newline included.
const sessionCap = 32

// Session is one open of a device node: the decimal rendering of the
// reading captured at the moment of the open, served by bounded copy
// until closed. A session never observes cache updates made after its
// open; concurrent polling and reading are fully decoupled.
type Session struct {
	name string
	text [sessionCap]byte
	n    int
	off  int
	at   time.Time
}

// openSession snapshots the cached reading under the guard. It fails
// with ErrNoDevice while teardown is in progress or before the first
// valid frame: an un-warmed sensor behaves as if absent instead of
// serving a placeholder value.
func (dev *Device) openSession() (fs.File, error) {
	dev.mu.Lock()
	if dev.gone || !dev.ready {
		dev.mu.Unlock()
		return nil, ErrNoDevice
	}
	s := &Session{name: dev.node.Name(), at: time.Now()}
	out := strconv.AppendUint(s.text[:0], uint64(dev.co2), 10)
	out = append(out, '\n')
	s.n = len(out)
	dev.mu.Unlock()
	return s, nil
}

// Read serves the next bytes of the snapshot.
func (s *Session) Read(p []byte) (int, error) {
	n, err := s.ReadAt(p, int64(s.off))
	s.off += n
	return n, err
}

// ReadAt serves bytes at an arbitrary offset without moving the read
// cursor. Past the end of the snapshot it returns io.EOF.
func (s *Session) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fs.ErrInvalid
	}
	if off >= int64(s.n) {
		return 0, io.EOF
	}
	n := copy(p, s.text[off:s.n])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Stat describes the snapshot as a read-only file.
func (s *Session) Stat() (fs.FileInfo, error) {
	return sessionInfo{s}, nil
}

// Close releases the session. It always succeeds.
func (s *Session) Close() error {
	return nil
}

type sessionInfo struct{ s *Session }

func (i sessionInfo) Name() string       { return i.s.name }
func (i sessionInfo) Size() int64        { return int64(i.s.n) }
func (i sessionInfo) Mode() fs.FileMode  { return 0o444 }
func (i sessionInfo) ModTime() time.Time { return i.s.at }
func (i sessionInfo) IsDir() bool        { return false }
func (i sessionInfo) Sys() any           { return nil }
