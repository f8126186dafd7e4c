//go:build !linux

package cmd

import (
	"errors"
	"log/slog"
)

var errLinuxOnly = errors.New("live device access is only supported on linux")

// Run is called by Kong when the devices command is executed.
func (d *Devices) Run(logger *slog.Logger) error { return errLinuxOnly }

// Run is called by Kong when the monitor command is executed.
func (m *Monitor) Run(logger *slog.Logger) error { return errLinuxOnly }
