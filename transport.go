package robomaster

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/FabianPetersen/can"
	"github.com/jpillora/maplock"
	"go.uber.org/zap"

	"github.com/IkuoShige/robomaster-s1-go/command"
)

// Lock serializes frame bursts per interface name. The device
// reconstructs multi-frame commands from the ordered payload stream, so
// two commands' bursts must never interleave on one bus.
var Lock = maplock.New()

// Transport owns the bus handle for one CAN interface and moves raw
// command buffers across it.
type Transport struct {
	Bus     *can.Bus
	Timeout time.Duration

	name   string
	log    *zap.Logger
	closed bool
}

// Open acquires the bus handle for a named interface. The handle is
// exclusive to one session; it fails with OpenFailed when the interface
// cannot be attached.
func Open(interfaceName string, log *zap.Logger) (*Transport, error) {
	if log == nil {
		log = zap.NewNop()
	}

	bus, err := can.NewBusForInterfaceWithName(interfaceName)
	if err != nil {
		return nil, OpenFailed{Interface: interfaceName, Err: err}
	}

	go func() {
		_ = bus.ConnectAndPublish()
	}()

	log.Info("CAN interface open", zap.String("interface", interfaceName))
	return &Transport{
		Bus:     bus,
		Timeout: DefaultTimeout,
		name:    interfaceName,
		log:     log,
	}, nil
}

// Name returns the interface name the transport was opened on.
func (t *Transport) Name() string { return t.name }

// Send publishes a single frame on the control channel.
func (t *Transport) Send(data []byte) error {
	if t.closed {
		return SendFailed{Err: ErrClosed}
	}

	frm, err := NewFrame(data)
	if err != nil {
		return err
	}
	if err := t.Bus.Publish(frm.CANFrame()); err != nil {
		return SendFailed{Err: err}
	}
	return nil
}

// SendFrames sends one logical command's frames strictly in order. The
// whole burst holds the interface lock: no other command's frames may
// reach the wire in between.
func (t *Transport) SendFrames(frames [][]byte) error {
	Lock.Lock(t.name)
	defer Lock.Unlock(t.name)

	for _, frame := range frames {
		if err := t.Send(frame); err != nil {
			return err
		}
	}
	return nil
}

// SendBurst splits a command buffer and sends it as one atomic burst.
func (t *Transport) SendBurst(cmd []byte) error {
	return t.SendFrames(SplitCommand(cmd))
}

// Receive waits up to Timeout for one inbound frame on the control
// channel. A timeout is a normal outcome and yields ok == false with a
// nil error.
func (t *Transport) Receive() (can.Frame, bool, error) {
	if t.closed {
		return can.Frame{}, false, ReceiveFailed{Err: ErrClosed}
	}

	rch := can.Wait(t.Bus, uint32(ControlID), t.Timeout)
	resp := <-rch
	if resp.Err != nil {
		t.log.Debug("receive timed out", zap.Duration("timeout", t.Timeout))
		return can.Frame{}, false, nil
	}
	return resp.Frame, true, nil
}

// ReceiveAndProcess reads one inbound frame and, when it carries the
// telemetry counter pattern, resynchronizes the joy counter to the
// device's value. Any other payload is ignored: receive is best-effort
// telemetry, not an acknowledgment.
func (t *Transport) ReceiveAndProcess(counters *command.Counters) error {
	frm, ok, err := t.Receive()
	if err != nil || !ok {
		return err
	}
	processTelemetry(frm, counters)
	return nil
}

func processTelemetry(frm can.Frame, counters *command.Counters) {
	data, ok := ControlFrame(frm)
	if !ok || len(data) < MaxFrameData {
		return
	}
	if !bytes.Equal(data[:len(telemetryMarker)], telemetryMarker) {
		return
	}
	counters.Joy = binary.LittleEndian.Uint16(data[6:8]) + 1
}

// Close releases the bus handle. It is idempotent and never reports an
// error; shutdown is fire-and-forget cleanup.
func (t *Transport) Close() {
	if t.closed {
		return
	}
	t.closed = true
	_ = t.Bus.Disconnect()
	t.log.Info("CAN interface closed", zap.String("interface", t.name))
}
