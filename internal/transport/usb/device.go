// internal/transport/usb/device.go
package usb

import (
	"context"
	"fmt"

	"github.com/google/gousb"

	"github.com/airsense/co2meter/internal/transport"
)

// Holtek CO2Mini identifiers. The driver matches exactly one model.
const (
	VendorID  gousb.ID = 0x04d9
	ProductID gousb.ID = 0xa052
)

// Match reports whether desc identifies the supported sensor.
func Match(desc *gousb.DeviceDesc) bool {
	return desc.Vendor == VendorID && desc.Product == ProductID
}

// Key identifies a physical device across enumeration scans.
// Bus and address are stable for as long as the device stays plugged in.
func Key(desc *gousb.DeviceDesc) string {
	return fmt.Sprintf("%03d.%03d", desc.Bus, desc.Address)
}

// Device adapts a gousb device to the transport interface the driver
// polls. It owns the claimed interface and releases it on Close.
type Device struct {
	dev   *gousb.Device
	intf  *gousb.Interface
	done  func()
	in    *gousb.InEndpoint
	label string
}

// Open claims the default interface of an already-opened gousb device.
// On failure the caller still owns dev and must close it.
func Open(dev *gousb.Device) (*Device, error) {
	label := Key(dev.Desc)

	// The kernel HID driver binds this device by default.
	if err := dev.SetAutoDetach(true); err != nil {
		return nil, fmt.Errorf("usb %s: auto-detach: %w", label, err)
	}

	intf, done, err := dev.DefaultInterface()
	if err != nil {
		return nil, fmt.Errorf("usb %s: claim interface: %w", label, err)
	}

	return &Device{
		dev:   dev,
		intf:  intf,
		done:  done,
		label: label,
	}, nil
}

// FindBulkIn walks the claimed interface setting for a bulk-in endpoint
// and prepares it for transfers.
func (d *Device) FindBulkIn() (transport.Endpoint, error) {
	if d.intf == nil {
		return transport.Endpoint{}, transport.ErrClosed
	}
	for _, ed := range d.intf.Setting.Endpoints {
		if ed.Direction != gousb.EndpointDirectionIn || ed.TransferType != gousb.TransferTypeBulk {
			continue
		}
		in, err := d.intf.InEndpoint(ed.Number)
		if err != nil {
			return transport.Endpoint{}, fmt.Errorf("usb %s: endpoint %s: %w", d.label, ed.Address, err)
		}
		d.in = in
		return transport.Endpoint{
			Address:       uint8(ed.Address),
			MaxPacketSize: ed.MaxPacketSize,
		}, nil
	}
	return transport.Endpoint{}, transport.ErrNoBulkIn
}

// BulkIn performs one blocking bulk-in transfer. The context caps the
// wait; gousb translates expiry into a transfer error.
func (d *Device) BulkIn(ctx context.Context, ep transport.Endpoint, buf []byte) (int, error) {
	in := d.in
	if in == nil {
		return 0, transport.ErrClosed
	}
	if uint8(in.Desc.Address) != ep.Address {
		return 0, fmt.Errorf("usb %s: endpoint 0x%02x not prepared", d.label, ep.Address)
	}
	return in.ReadContext(ctx, buf)
}

// Label identifies the device by bus and address.
func (d *Device) Label() string {
	return d.label
}

// Close releases the claimed interface and the device handle.
// Safe to call once; the driver guarantees no transfer is in flight.
func (d *Device) Close() error {
	if d.done != nil {
		d.done()
		d.done = nil
	}
	d.in = nil
	d.intf = nil
	if d.dev == nil {
		return nil
	}
	err := d.dev.Close()
	d.dev = nil
	return err
}
