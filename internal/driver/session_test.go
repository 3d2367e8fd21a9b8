// internal/driver/session_test.go
package driver

import (
	"io"
	"io/fs"
	"testing"
)

// newSession builds a session the way openSession does, without a device.
func newSession(text string) *Session {
	s := &Session{name: "co2meter0"}
	s.n = copy(s.text[:], text)
	return s
}

func TestSession_ReadAt(t *testing.T) {
	s := newSession("412\n")

	buf := make([]byte, 2)
	n, err := s.ReadAt(buf, 0)
	if n != 2 || err != nil {
		t.Fatalf("ReadAt(0)=(%d,%v), want (2,nil)", n, err)
	}
	if string(buf) != "41" {
		t.Fatalf("ReadAt(0) read %q", buf)
	}

	n, err = s.ReadAt(buf, 2)
	if n != 2 || err != nil {
		t.Fatalf("ReadAt(2)=(%d,%v), want (2,nil)", n, err)
	}
	if string(buf) != "2\n" {
		t.Fatalf("ReadAt(2) read %q", buf)
	}

	// Partial tail fill reports EOF with the bytes.
	n, err = s.ReadAt(buf, 3)
	if n != 1 || err != io.EOF {
		t.Fatalf("ReadAt(3)=(%d,%v), want (1,EOF)", n, err)
	}

	if n, err := s.ReadAt(buf, 4); n != 0 || err != io.EOF {
		t.Fatalf("ReadAt(end)=(%d,%v), want (0,EOF)", n, err)
	}
	if _, err := s.ReadAt(buf, -1); err != fs.ErrInvalid {
		t.Fatalf("ReadAt(-1) err=%v, want ErrInvalid", err)
	}

	// ReadAt does not move the sequential cursor.
	all, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll err=%v", err)
	}
	if string(all) != "412\n" {
		t.Fatalf("ReadAll=%q, want %q", all, "412\n")
	}
}

func TestSession_ReadToEOF(t *testing.T) {
	s := newSession("9\n")

	buf := make([]byte, 16)
	n, err := s.Read(buf)
	if n != 2 {
		t.Fatalf("Read=%d, want 2", n)
	}
	if err != nil && err != io.EOF {
		t.Fatalf("Read err=%v", err)
	}
	if n, err := s.Read(buf); n != 0 || err != io.EOF {
		t.Fatalf("Read past end=(%d,%v), want (0,EOF)", n, err)
	}
}

func TestSession_StatAndClose(t *testing.T) {
	s := newSession("1024\n")

	info, err := s.Stat()
	if err != nil {
		t.Fatalf("Stat err=%v", err)
	}
	if info.Name() != "co2meter0" {
		t.Fatalf("Name=%q", info.Name())
	}
	if info.Size() != 5 {
		t.Fatalf("Size=%d, want 5", info.Size())
	}
	if info.IsDir() {
		t.Fatalf("IsDir=true")
	}
	if info.Mode() != 0o444 {
		t.Fatalf("Mode=%v, want read-only", info.Mode())
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close err=%v", err)
	}
}
