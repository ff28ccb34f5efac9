package robomaster

import "github.com/IkuoShige/robomaster-s1-go/command"

// Status LED presets.
var (
	LedRed   = command.LedColor{Red: 255}
	LedGreen = command.LedColor{Green: 255}
	LedBlue  = command.LedColor{Blue: 255}
	LedWhite = command.LedColor{Red: 255, Green: 255, Blue: 255}
	LedOff   = command.LedColor{}
)

// Movement accumulates normalized axis values, clamping each to
// [-1, 1]. The zero value is a full stop.
type Movement struct {
	params command.MovementParams
}

// Forward sets the forward/backward speed.
func (m Movement) Forward(speed float64) Movement {
	m.params.VX = clampAxis(speed)
	return m
}

// StrafeRight sets the strafe speed.
func (m Movement) StrafeRight(speed float64) Movement {
	m.params.VY = clampAxis(speed)
	return m
}

// RotateRight sets the rotation speed.
func (m Movement) RotateRight(speed float64) Movement {
	m.params.VZ = clampAxis(speed)
	return m
}

// Params returns the accumulated movement parameters.
func (m Movement) Params() command.MovementParams {
	return m.params
}

func clampAxis(v float64) float64 {
	if v < -1.0 {
		return -1.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
