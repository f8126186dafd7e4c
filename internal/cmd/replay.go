package cmd

import (
	"log/slog"
	"os"

	"github.com/aknorr/inputbridge/bridge"
	"github.com/aknorr/inputbridge/engine"
	"github.com/aknorr/inputbridge/script"
)

type Replay struct {
	File   string `help:"Recorded input trace (YAML)" arg:"" type:"existingfile"`
	Legacy bool   `help:"Emit mouse buttons in the legacy mousePressed shape" env:"INPUTBRIDGE_LEGACY_MOUSE"`
}

// Run is called by Kong when the replay command is executed.
func (r *Replay) Run(logger *slog.Logger) error {
	s, err := script.LoadFile(r.File)
	if err != nil {
		return err
	}
	p, err := s.Platform()
	if err != nil {
		return err
	}

	var opts []bridge.Option
	if r.Legacy {
		opts = append(opts, bridge.WithLegacyMouseProtocol())
	}

	q := engine.NewQueue()
	reg := bridge.NewRegistry(p, q, logger)
	h := bridge.New(p, reg, q, logger, opts...)

	logger.Info("replaying trace", "file", r.File, "events", len(s.Events))
	if err := s.Replay(h); err != nil {
		return err
	}

	n := q.Drain(printIntake{w: os.Stdout})
	logger.Info("replay finished", "emissions", n)
	return nil
}
