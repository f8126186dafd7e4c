// Package config defines the CLI structure and configuration for
// inputbridge.
package config

import (
	"github.com/aknorr/inputbridge/internal/cmd"
)

type Log struct {
	Level string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"INPUTBRIDGE_LOG_LEVEL"`
	File  string `help:"Log file path (default: none; logs only to console)" env:"INPUTBRIDGE_LOG_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log `embed:"" prefix:"log."`

	Config string `help:"Config file path (JSON, YAML or TOML)" env:"INPUTBRIDGE_CONFIG"`

	Replay  cmd.Replay  `cmd:"" help:"Replay a recorded input trace and print the normalized emissions"`
	Devices cmd.Devices `cmd:"" help:"List attached game controllers"`
	Monitor cmd.Monitor `cmd:"" help:"Stream live normalized input events from attached controllers"`
}
