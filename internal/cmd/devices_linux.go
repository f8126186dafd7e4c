//go:build linux

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aknorr/inputbridge/bridge"
	"github.com/aknorr/inputbridge/engine"
	"github.com/aknorr/inputbridge/platform/evdev"
)

// Run is called by Kong when the devices command is executed.
func (d *Devices) Run(logger *slog.Logger) error {
	p := evdev.New(logger)
	ids := p.DeviceIDs()
	if len(ids) == 0 {
		fmt.Println("no game controllers attached")
		return nil
	}
	for _, id := range ids {
		info, ok := p.Device(id)
		if !ok {
			continue
		}
		fmt.Printf("js%d  %q  axes=%d\n", id, info.Name, len(info.MotionRanges))
	}
	return nil
}

// Run is called by Kong when the monitor command is executed.
func (m *Monitor) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := evdev.New(logger)

	var opts []bridge.Option
	if m.Legacy {
		opts = append(opts, bridge.WithLegacyMouseProtocol())
	}

	q := engine.NewQueue()
	reg := bridge.NewRegistry(p, q, logger)
	h := bridge.New(p, reg, q, logger, opts...)

	done := make(chan struct{})
	go func() {
		defer close(done)
		q.Dispatch(printIntake{w: os.Stdout})
	}()

	logger.Info("monitoring input devices", "devices", len(p.DeviceIDs()))
	err := p.Monitor(ctx, h)
	q.Close()
	<-done

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
