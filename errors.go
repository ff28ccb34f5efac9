package robomaster

import (
	"errors"
	"fmt"
)

// ErrClosed is returned for any operation on a session that has been
// shut down.
var ErrClosed = errors.New("session is closed")

// OpenFailed reports that the bus handle for an interface could not be
// acquired.
type OpenFailed struct {
	Interface string
	Err       error
}

func (e OpenFailed) Error() string {
	return fmt.Sprintf("failed to open CAN interface %q: %v", e.Interface, e.Err)
}

func (e OpenFailed) Unwrap() error { return e.Err }

// SendFailed reports a transport error while publishing a frame.
type SendFailed struct {
	Err error
}

func (e SendFailed) Error() string {
	return fmt.Sprintf("failed to send CAN frame: %v", e.Err)
}

func (e SendFailed) Unwrap() error { return e.Err }

// ReceiveFailed reports a transport error while reading a frame. A
// receive timeout is not a ReceiveFailed; it simply yields no frame.
type ReceiveFailed struct {
	Err error
}

func (e ReceiveFailed) Error() string {
	return fmt.Sprintf("failed to receive CAN frame: %v", e.Err)
}

func (e ReceiveFailed) Unwrap() error { return e.Err }

// InvalidDataLength reports a payload that does not fit a single CAN
// frame.
type InvalidDataLength struct {
	Length int
}

func (e InvalidDataLength) Error() string {
	return fmt.Sprintf("invalid CAN data length: %d bytes (max: %d)", e.Length, MaxFrameData)
}
