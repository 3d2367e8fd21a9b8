// internal/driver/device.go
package driver

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/airsense/co2meter/internal/node"
	"github.com/airsense/co2meter/internal/sched"
	"github.com/airsense/co2meter/internal/transport"
)

// ErrNoDevice is the single consumer-facing failure. Absence, a sensor
// that has not produced its first reading, and a device mid-teardown
// all look the same to an opener: not there, try again later.
var ErrNoDevice = errors.New("driver: no such device")

// Device is the state of one attached sensor.
//
// co2 and ready form one unit: both are read and written only under mu,
// so a consumer can never observe a torn update. mu is never held
// across a bulk transfer.
//
// tr and ep are written once during Attach, before the poll work is
// started, and are read-only for the rest of the device's life; they
// need no guard.
type Device struct {
	mu    sync.Mutex
	co2   uint32 // last decoded reading, ppm
	ready bool   // at least one valid frame decoded
	gone  bool   // teardown has begun; opens must fail

	tr transport.Device
	ep transport.Endpoint

	work *sched.Work
	node *node.Node
	pool *Pool
	log  zerolog.Logger
}

// Node returns the consumer node registered for this device.
func (dev *Device) Node() *node.Node {
	return dev.node
}

// Label identifies the underlying transport device.
func (dev *Device) Label() string {
	return dev.tr.Label()
}
