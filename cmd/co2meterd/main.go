// cmd/co2meterd/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gousb"
	"github.com/rs/zerolog"

	"github.com/airsense/co2meter/internal/config"
	"github.com/airsense/co2meter/internal/driver"
	"github.com/airsense/co2meter/internal/node"
	usbtr "github.com/airsense/co2meter/internal/transport/usb"
)

// onceTimeout bounds how long -once waits for the sensor to warm up.
const onceTimeout = 30 * time.Second

func main() {
	cfgPath := flag.String("config", "", "path to config.yaml (optional)")
	once := flag.Bool("once", false, "attach, print one reading, exit")
	flag.Parse()

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "co2meterd: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "co2meterd: %v\n", err)
		os.Exit(1)
	}
	config.Normalize(cfg)

	log := buildLogger(cfg.Daemon.Log)

	if err := run(cfg, log, *once); err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func buildLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var w io.Writer = os.Stderr
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func run(cfg *config.Config, log zerolog.Logger, once bool) error {
	usbCtx := gousb.NewContext()
	defer usbCtx.Close()

	reg := node.NewRegistry()
	drv := driver.New(reg, cfg.Daemon.Pool.Buffers, log)

	attached := make(map[string]*driver.Device)
	defer func() {
		for key, dev := range attached {
			drv.Detach(dev)
			delete(attached, key)
		}
	}()

	scan(usbCtx, drv, attached, log)

	if once {
		return readOnce(reg, attached, log)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	interval := time.Duration(cfg.Daemon.Scan.IntervalMs) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("scan_interval", interval).Msg("co2meterd running")
	for {
		select {
		case s := <-sig:
			log.Info().Str("signal", s.String()).Msg("shutting down")
			return nil
		case <-ticker.C:
			scan(usbCtx, drv, attached, log)
		}
	}
}

// scan reconciles the set of attached driver instances with the devices
// currently on the bus: new sensors are attached, vanished ones detached.
// This is the user-space stand-in for hotplug probe/disconnect callbacks.
func scan(usbCtx *gousb.Context, drv *driver.Driver, attached map[string]*driver.Device, log zerolog.Logger) {
	present := make(map[string]bool)

	devs, err := usbCtx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if !usbtr.Match(desc) {
			return false
		}
		key := usbtr.Key(desc)
		present[key] = true
		_, known := attached[key]
		return !known // open new arrivals only
	})
	if err != nil {
		// OpenDevices can fail partway and still return devices.
		log.Warn().Err(err).Msg("usb enumeration failed")
	}

	for _, d := range devs {
		key := usbtr.Key(d.Desc)

		tr, err := usbtr.Open(d)
		if err != nil {
			log.Error().Err(err).Str("dev", key).Msg("open failed")
			d.Close()
			continue
		}

		dev, err := drv.Attach(tr)
		if err != nil {
			log.Error().Err(err).Str("dev", key).Msg("attach failed")
			tr.Close()
			continue
		}
		attached[key] = dev
	}

	for key, dev := range attached {
		if present[key] {
			continue
		}
		drv.Detach(dev)
		delete(attached, key)
	}
}

// readOnce waits for the first attached sensor to produce a reading,
// prints it to stdout, and returns.
func readOnce(reg *node.Registry, attached map[string]*driver.Device, log zerolog.Logger) error {
	var dev *driver.Device
	for _, d := range attached {
		dev = d
		break
	}
	if dev == nil {
		return errors.New("no sensor found")
	}

	name := dev.Node().Name()
	log.Info().Str("node", name).Msg("waiting for first reading")

	deadline := time.Now().Add(onceTimeout)
	for {
		f, err := reg.Open(name)
		if err == nil {
			data, rerr := io.ReadAll(f)
			f.Close()
			if rerr != nil {
				return rerr
			}
			_, werr := os.Stdout.Write(data)
			return werr
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("sensor produced no reading within %s: %w", onceTimeout, err)
		}
		time.Sleep(500 * time.Millisecond)
	}
}
