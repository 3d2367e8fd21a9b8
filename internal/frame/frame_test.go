// internal/frame/frame_test.go
package frame

import "testing"

// valid builds a well-formed report for the given reading.
func valid(ppm uint16) []byte {
	hi := byte(ppm >> 8)
	lo := byte(ppm)
	buf := make([]byte, Size)
	buf[0] = Header
	buf[1] = hi
	buf[2] = lo
	buf[3] = Header + hi + lo // 8-bit sum, wraps
	buf[4] = Terminator
	return buf
}

func TestDecode_Valid(t *testing.T) {
	buf := []byte{0x50, 0x01, 0x90, 0xe1, 0x0d}
	ppm, ok := Decode(buf, len(buf))
	if !ok {
		t.Fatalf("Decode rejected valid frame")
	}
	if ppm != 400 {
		t.Fatalf("ppm=%d, want 400", ppm)
	}
}

func TestDecode_ShortTransfer(t *testing.T) {
	buf := valid(400)
	for n := 0; n < MinLen; n++ {
		if _, ok := Decode(buf, n); ok {
			t.Fatalf("Decode accepted transfer of %d bytes", n)
		}
	}
}

func TestDecode_TransferLongerThanBuffer(t *testing.T) {
	buf := valid(400)
	if _, ok := Decode(buf[:5], 6); ok {
		t.Fatalf("Decode accepted n > len(buf)")
	}
}

func TestDecode_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func([]byte)
	}{
		{"wrong header", func(b []byte) { b[0] = 0x42 }},
		{"checksum mismatch", func(b []byte) { b[3]++ }},
		{"wrong terminator", func(b []byte) { b[4] = 0x0a }},
	}

	for _, tc := range cases {
		buf := valid(400)
		tc.mutate(buf)
		if _, ok := Decode(buf, len(buf)); ok {
			t.Fatalf("%s: Decode accepted frame", tc.name)
		}
	}
}

// The sensor sums bytes in unsigned 8-bit arithmetic, so a frame whose
// true sum exceeds 0xff carries only the low byte in the checksum slot.
func TestDecode_ChecksumWraps(t *testing.T) {
	// 0x50 + 0xf0 + 0x20 = 0x160; checksum byte is 0x60.
	buf := []byte{0x50, 0xf0, 0x20, 0x60, 0x0d}
	ppm, ok := Decode(buf, len(buf))
	if !ok {
		t.Fatalf("Decode rejected frame with wrapped checksum")
	}
	if want := uint32(0xf0)*256 + 0x20; ppm != want {
		t.Fatalf("ppm=%d, want %d", ppm, want)
	}

	// The widened sum must not be accepted in place of the wrapped one.
	buf[3] = 0x60 + 1
	if _, ok := Decode(buf, len(buf)); ok {
		t.Fatalf("Decode accepted non-wrapped checksum")
	}
}

func TestDecode_TrailingBytesIgnored(t *testing.T) {
	buf := valid(512)
	for i := 5; i < Size; i++ {
		buf[i] = 0xff
	}
	ppm, ok := Decode(buf, Size)
	if !ok || ppm != 512 {
		t.Fatalf("Decode=(%d,%v), want (512,true)", ppm, ok)
	}
}
