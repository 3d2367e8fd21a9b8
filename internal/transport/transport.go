// internal/transport/transport.go
package transport

import (
	"context"
	"errors"
)

// Transport errors surfaced to the driver.
var (
	// ErrNoBulkIn means the active configuration has no bulk-in endpoint.
	ErrNoBulkIn = errors.New("transport: no bulk-in endpoint")

	// ErrClosed means the device handle has been released.
	ErrClosed = errors.New("transport: device closed")
)

// Endpoint describes a bulk-in endpoint on the device's active
// configuration. It is located once at attach and read-only afterwards.
type Endpoint struct {
	Address       uint8 // endpoint address, direction bit set
	MaxPacketSize int
}

// Device abstracts the USB operations the driver needs.
// The driver depends on transfers only: it never writes to the bus and
// never reconfigures the device.
type Device interface {
	// FindBulkIn locates a bulk-in endpoint on the active configuration.
	// Returns ErrNoBulkIn when the device exposes none.
	FindBulkIn() (Endpoint, error)

	// BulkIn issues one blocking bulk-in transfer, filling buf and
	// returning the number of bytes the device actually delivered.
	// The context bounds the wait; expiry surfaces as an error.
	BulkIn(ctx context.Context, ep Endpoint, buf []byte) (int, error)

	// Label identifies the physical device for logs.
	Label() string

	// Close releases the device handle.
	Close() error
}
