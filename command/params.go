package command

// MovementParams holds normalized chassis velocities. Callers pass
// values in [-1, 1]; anything outside is clamped during encoding.
type MovementParams struct {
	// VX is the forward/backward velocity.
	VX float64
	// VY is the strafe velocity.
	VY float64
	// VZ is the rotation velocity.
	VZ float64
}

// GimbalParams holds normalized gimbal rates.
type GimbalParams struct {
	// RY is the pitch rate.
	RY float64
	// RZ is the yaw rate.
	RZ float64
}

// LedColor is the status LED color, sent on the wire unmodified.
type LedColor struct {
	Red   uint8
	Green uint8
	Blue  uint8
}
