package cmd

// Devices lists attached game controllers with their declared capabilities.
type Devices struct{}

// Monitor streams live normalized input events from attached controllers
// until interrupted.
type Monitor struct {
	Legacy bool `help:"Emit mouse buttons in the legacy mousePressed shape" env:"INPUTBRIDGE_LEGACY_MOUSE"`
}
