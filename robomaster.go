// Package robomaster drives a RoboMaster S1 chassis, gimbal and status
// LED over the robot's CAN control channel. All commands and the one
// recognized telemetry pattern share a single 11-bit arbitration
// identifier; commands longer than a CAN frame are split into ordered
// 8-byte bursts that must not interleave on the wire.
package robomaster

import "time"

// ControlID is the standard 11-bit arbitration identifier of the robot
// control channel, used for every outbound command and for the inbound
// telemetry frames.
const ControlID uint16 = 0x201

// MaxFrameData is the CAN payload limit. Finished command buffers are
// split into chunks of at most this many bytes.
const MaxFrameData = 8

// DefaultTimeout bounds a single receive operation.
const DefaultTimeout = 200 * time.Millisecond

// DefaultSettleDelay is how long the device needs after the boot burst
// before it accepts movement commands.
const DefaultSettleDelay = 500 * time.Millisecond

const (
	// MaskIDSff is used to extract the valid 11-bit CAN identifier bits from the frame ID of a standard frame format.
	MaskIDSff = 0x000007FF
	// MaskEff is used to extract the eff flag (0 = standard frame, 1 = extended frame) from the frame ID
	MaskEff = 0x80000000
)

// telemetryMarker prefixes the one inbound frame the session decodes.
// The two bytes following it carry the device's joy counter,
// little-endian.
var telemetryMarker = []byte{0x55, 0x1b, 0x04, 0x75, 0x09, 0xc3}
