// internal/driver/driver.go
package driver

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/airsense/co2meter/internal/node"
	"github.com/airsense/co2meter/internal/sched"
	"github.com/airsense/co2meter/internal/transport"
)

// NodeTemplate names consumer nodes by instance number.
const NodeTemplate = "co2meter%d"

// Driver attaches sensors and owns their lifecycle. Each attached
// device gets its own state, node and poll work; the transfer buffer
// pool is shared.
type Driver struct {
	registry *node.Registry
	pool     *Pool
	log      zerolog.Logger
}

// New builds a driver registering nodes in registry. poolSize < 1 uses
// DefaultPoolSize.
func New(registry *node.Registry, poolSize int, log zerolog.Logger) *Driver {
	return &Driver{
		registry: registry,
		pool:     NewPool(poolSize),
		log:      log,
	}
}

// Attach brings one discovered sensor into service: locate its bulk-in
// endpoint, register a consumer node, and start the poll loop. On
// failure everything already acquired is rolled back and the caller
// keeps ownership of tr.
//
// A freshly attached device is live but not ready: opens fail with
// ErrNoDevice until the first valid frame arrives.
func (d *Driver) Attach(tr transport.Device) (*Device, error) {
	ep, err := tr.FindBulkIn()
	if err != nil {
		return nil, fmt.Errorf("driver: attach %s: %w", tr.Label(), err)
	}

	dev := &Device{
		tr:   tr,
		ep:   ep,
		pool: d.pool,
	}

	n, err := d.registry.Register(NodeTemplate, dev.openSession)
	if err != nil {
		return nil, fmt.Errorf("driver: attach %s: %w", tr.Label(), err)
	}
	dev.node = n
	dev.log = d.log.With().Str("node", n.Name()).Str("dev", tr.Label()).Logger()

	dev.work = sched.New(dev.poll)
	dev.work.Schedule()

	dev.log.Info().Uint8("endpoint", ep.Address).Msg("sensor attached")
	return dev, nil
}

// Detach takes a device out of service. The poll work is cancelled
// synchronously before anything is released, so no iteration can touch
// the device afterwards; opens racing the teardown fail with
// ErrNoDevice. Safe to call once per attached device.
func (d *Driver) Detach(dev *Device) {
	// Fail openers first, then join the loop, then release.
	dev.mu.Lock()
	dev.gone = true
	dev.mu.Unlock()

	dev.work.CancelWait()
	d.registry.Deregister(dev.node)

	if err := dev.tr.Close(); err != nil {
		dev.log.Warn().Err(err).Msg("transport close failed")
	}
	dev.log.Info().Msg("sensor detached")
}
