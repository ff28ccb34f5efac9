// Package input turns normalized game-controller snapshots into chassis
// movement parameters. Device polling stays outside: whatever reads the
// gamepad hands a State here.
package input

import (
	"math"
	"time"

	"github.com/IkuoShige/robomaster-s1-go/command"
)

// State is one normalized controller snapshot. Stick axes are in
// [-1, 1], triggers in [0, 1].
type State struct {
	LeftStickX  float64
	LeftStickY  float64
	RightStickX float64
	RightStickY float64

	LeftTrigger  float64
	RightTrigger float64

	South bool
	East  bool
	North bool
	West  bool

	Start  bool
	Select bool
}

// Mapper maps controller snapshots to movement, applying a deadzone and
// a speed ceiling.
type Mapper struct {
	// Deadzone is the analog magnitude below which an axis reads zero.
	Deadzone float64
	// MaxSpeed scales every axis after the deadzone.
	MaxSpeed float64
	// Timeout marks a snapshot stale; stale input maps to a stop.
	Timeout time.Duration
}

// NewMapper returns a mapper with the stock deadzone, full speed and a
// half-second staleness window.
func NewMapper() *Mapper {
	return &Mapper{
		Deadzone: 0.1,
		MaxSpeed: 1.0,
		Timeout:  500 * time.Millisecond,
	}
}

// Map converts a snapshot: left stick drives translation, right stick X
// drives rotation.
func (m *Mapper) Map(s State) command.MovementParams {
	return command.MovementParams{
		VX: m.axis(s.LeftStickY),
		VY: m.axis(s.LeftStickX),
		VZ: m.axis(s.RightStickX),
	}
}

// MapAged behaves like Map but returns a stop for snapshots older than
// the staleness window.
func (m *Mapper) MapAged(s State, age time.Duration) command.MovementParams {
	if m.Timeout > 0 && age > m.Timeout {
		return command.MovementParams{}
	}
	return m.Map(s)
}

func (m *Mapper) axis(v float64) float64 {
	if math.Abs(v) < m.Deadzone {
		return 0
	}
	if v > 1.0 {
		v = 1.0
	} else if v < -1.0 {
		v = -1.0
	}
	return v * m.MaxSpeed
}
