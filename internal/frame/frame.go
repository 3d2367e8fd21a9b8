// internal/frame/frame.go
package frame

// Report frame layout for the CO2Mini sensor.
// These values define the device protocol and MUST NOT be configurable.

// ---- TRANSFER GEOMETRY ----

// Size is the transfer buffer size requested per poll.
const Size = 16

// MinLen is the shortest transfer that can hold a complete report.
const MinLen = 5

// ---- FRAME BYTES ----

// Header marks a CO2 concentration report (byte 0).
const Header = 0x50

// Terminator ends every report (byte 4).
const Terminator = 0x0d

// Decode validates one raw transfer and extracts the CO2 concentration.
//
// buf is the transfer buffer and n the number of bytes the transport
// actually delivered (n <= len(buf)); the device routinely returns fewer
// bytes than requested. The checksum over bytes 0..2 is computed in
// 8-bit arithmetic and overflow wraps silently, matching the sum the
// sensor itself produces. Widening it would change which frames pass.
//
// A rejected frame is expected bus noise, not an error: ok is false and
// the bytes are discarded.
// No IO. No side effects.
func Decode(buf []byte, n int) (ppm uint32, ok bool) {
	if n < MinLen || n > len(buf) {
		return 0, false
	}
	if buf[0] != Header {
		return 0, false
	}
	if buf[0]+buf[1]+buf[2] != buf[3] {
		return 0, false
	}
	if buf[4] != Terminator {
		return 0, false
	}
	return uint32(buf[1])*256 + uint32(buf[2]), true
}
