package robomaster

import (
	"github.com/FabianPetersen/can"
)

// A Frame is one chunk of at most MaxFrameData bytes destined for the
// control channel.
type Frame struct {
	Data []byte
}

// NewFrame returns a frame for the control channel, rejecting payloads
// that do not fit a single CAN frame.
func NewFrame(data []byte) (Frame, error) {
	if len(data) > MaxFrameData {
		return Frame{}, InvalidDataLength{Length: len(data)}
	}
	return Frame{Data: data}, nil
}

// CANFrame returns the CAN frame representing the control frame,
// addressed to the fixed arbitration identifier.
func (frm Frame) CANFrame() can.Frame {
	var data [8]uint8
	n := len(frm.Data)
	copy(data[:n], frm.Data[:n])

	return can.Frame{
		ID:     uint32(ControlID),
		Length: uint8(n),
		Data:   data,
	}
}

// ControlFrame returns the payload of a CAN frame on the control
// channel. It reports false for extended frames and for any other
// arbitration identifier.
func ControlFrame(frm can.Frame) ([]byte, bool) {
	if frm.ID&MaskEff != 0 {
		return nil, false
	}
	if frm.ID&MaskIDSff != uint32(ControlID) {
		return nil, false
	}

	n := int(frm.Length)
	if n > MaxFrameData {
		n = MaxFrameData
	}
	return frm.Data[:n], true
}
