package robomaster

import (
	"bytes"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/IkuoShige/robomaster-s1-go/command"
)

// fakeBus records traffic instead of touching a CAN interface. failures
// makes the next N send calls fail.
type fakeBus struct {
	bursts   [][]byte
	frames   [][][]byte
	failures int
	closed   bool
}

func (f *fakeBus) SendBurst(cmd []byte) error {
	if f.failures > 0 {
		f.failures--
		return SendFailed{Err: errors.New("tx queue full")}
	}
	f.bursts = append(f.bursts, append([]byte(nil), cmd...))
	return nil
}

func (f *fakeBus) SendFrames(frames [][]byte) error {
	if f.failures > 0 {
		f.failures--
		return SendFailed{Err: errors.New("tx queue full")}
	}
	call := make([][]byte, 0, len(frames))
	for _, frm := range frames {
		call = append(call, append([]byte(nil), frm...))
	}
	f.frames = append(f.frames, call)
	return nil
}

func (f *fakeBus) ReceiveAndProcess(counters *command.Counters) error { return nil }

func (f *fakeBus) Close() { f.closed = true }

// fakeDialer stands in for reopening the CAN interface; every dial
// yields a fresh recording bus.
type fakeDialer struct {
	opened []*fakeBus
	err    error
}

func (d *fakeDialer) dial() (transport, error) {
	if d.err != nil {
		return nil, d.err
	}
	bus := &fakeBus{}
	d.opened = append(d.opened, bus)
	return bus, nil
}

func newTestRobot(bus *fakeBus, dialer *fakeDialer) *Robot {
	r := &Robot{
		bus:     bus,
		builder: command.NewBuilder(),
		log:     zap.NewNop(),
		name:    "vcan0",
		timeout: DefaultTimeout,
		settle:  0,
	}
	r.reopen = dialer.dial
	return r
}

func bootSequence(t *testing.T) []byte {
	t.Helper()
	boot, err := command.NewBuilder().BootSequence()
	if err != nil {
		t.Fatal(err)
	}
	return boot
}

func TestMoveRunsBootHandshakeOnce(t *testing.T) {
	bus := &fakeBus{}
	r := newTestRobot(bus, &fakeDialer{})
	boot := bootSequence(t)

	if err := r.Move(command.MovementParams{VX: 0.5}); err != nil {
		t.Fatal(err)
	}
	if err := r.Move(command.MovementParams{VX: 0.5}); err != nil {
		t.Fatal(err)
	}

	// boot + (twist, gimbal) per move
	if len(bus.bursts) != 5 {
		t.Fatalf("expected 5 bursts, got %d", len(bus.bursts))
	}
	if !bytes.Equal(bus.bursts[0], boot) {
		t.Fatal("first burst is not the boot handshake")
	}
	for i, burst := range bus.bursts[1:] {
		if bytes.Equal(burst, boot) {
			t.Fatalf("boot handshake re-sent as burst %d", i+1)
		}
	}

	c := r.Counters()
	if c.Joy != 2 || c.Gimbal != 2 || c.Led != 0 {
		t.Fatalf("unexpected counters %+v", c)
	}
}

func TestMoveSendsTwistThenGimbal(t *testing.T) {
	bus := &fakeBus{}
	r := newTestRobot(bus, &fakeDialer{})
	if err := r.Initialize(); err != nil {
		t.Fatal(err)
	}

	p := command.MovementParams{VX: 0.25, VZ: -0.5}
	if err := r.Move(p); err != nil {
		t.Fatal(err)
	}

	b := command.NewBuilder()
	wantTwist, err := b.Twist(p, &command.Counters{})
	if err != nil {
		t.Fatal(err)
	}
	wantGimbal, err := b.Gimbal(command.GimbalParams{RZ: p.VZ}, &command.Counters{})
	if err != nil {
		t.Fatal(err)
	}

	if len(bus.bursts) != 3 {
		t.Fatalf("expected 3 bursts, got %d", len(bus.bursts))
	}
	if !bytes.Equal(bus.bursts[1], wantTwist) {
		t.Fatalf("unexpected twist burst % x", bus.bursts[1])
	}
	if !bytes.Equal(bus.bursts[2], wantGimbal) {
		t.Fatalf("unexpected gimbal burst % x", bus.bursts[2])
	}
}

func TestStopIsZeroMove(t *testing.T) {
	bus := &fakeBus{}
	r := newTestRobot(bus, &fakeDialer{})
	if err := r.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := r.Stop(); err != nil {
		t.Fatal(err)
	}

	want, err := command.NewBuilder().Twist(command.MovementParams{}, &command.Counters{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(bus.bursts[1], want) {
		t.Fatalf("stop did not send a zero twist: % x", bus.bursts[1])
	}
}

func TestControlLedSkipsBootHandshake(t *testing.T) {
	bus := &fakeBus{}
	r := newTestRobot(bus, &fakeDialer{})

	if err := r.ControlLed(LedRed); err != nil {
		t.Fatal(err)
	}

	if len(bus.bursts) != 1 {
		t.Fatalf("expected 1 burst, got %d", len(bus.bursts))
	}
	if bytes.Equal(bus.bursts[0], bootSequence(t)) {
		t.Fatal("led command triggered the boot handshake")
	}

	c := r.Counters()
	if c.Led != 1 || c.Joy != 0 || c.Gimbal != 0 {
		t.Fatalf("unexpected counters %+v", c)
	}
}

func TestSendTouchSendsTwoFramesAtomically(t *testing.T) {
	bus := &fakeBus{}
	r := newTestRobot(bus, &fakeDialer{})

	if err := r.SendTouch(); err != nil {
		t.Fatal(err)
	}

	if len(bus.frames) != 1 || len(bus.frames[0]) != 2 {
		t.Fatalf("expected one two-frame burst, got %v", bus.frames)
	}

	want := command.NewBuilder().Touch(&command.Counters{})
	if !bytes.Equal(bus.frames[0][0], want[0]) || !bytes.Equal(bus.frames[0][1], want[1]) {
		t.Fatalf("unexpected touch frames % x", bus.frames[0])
	}
	if r.Counters().Joy != 1 {
		t.Fatalf("joy counter not advanced: %d", r.Counters().Joy)
	}
}

func TestJoyCounterWrapsAround(t *testing.T) {
	bus := &fakeBus{}
	r := newTestRobot(bus, &fakeDialer{})
	r.counters.Joy = 0xffff

	if err := r.SendTouch(); err != nil {
		t.Fatal(err)
	}

	if r.Counters().Joy != 0 {
		t.Fatalf("counter did not wrap: %d", r.Counters().Joy)
	}
	// The frame sent before the increment carries 0xffff little-endian.
	first := bus.frames[0][0]
	if first[6] != 0xff || first[7] != 0xff {
		t.Fatalf("unexpected counter bytes % x", first)
	}
}

func TestMoveFailurePreservesCounters(t *testing.T) {
	bus := &fakeBus{}
	r := newTestRobot(bus, &fakeDialer{})
	if err := r.Initialize(); err != nil {
		t.Fatal(err)
	}

	bus.failures = 1
	err := r.Move(command.MovementParams{VX: 1.0})
	if _, ok := err.(SendFailed); !ok {
		t.Fatalf("expected SendFailed, got %v", err)
	}

	c := r.Counters()
	if c.Joy != 0 || c.Gimbal != 0 {
		t.Fatalf("counters advanced on failed send: %+v", c)
	}
}

func TestShutdownIsTerminal(t *testing.T) {
	bus := &fakeBus{}
	r := newTestRobot(bus, &fakeDialer{})

	r.Shutdown()
	if !bus.closed {
		t.Fatal("transport not closed")
	}

	ops := map[string]error{
		"move":       r.Move(command.MovementParams{}),
		"led":        r.ControlLed(LedGreen),
		"touch":      r.SendTouch(),
		"receive":    r.ReceiveMessages(),
		"initialize": r.Initialize(),
		"reopen":     r.Reopen(),
	}
	for name, err := range ops {
		if err != ErrClosed {
			t.Fatalf("%s after shutdown: got %v, want ErrClosed", name, err)
		}
	}

	// Second shutdown is a no-op.
	r.Shutdown()
}

func TestReopenRerunsBootHandshake(t *testing.T) {
	bus := &fakeBus{}
	dialer := &fakeDialer{}
	r := newTestRobot(bus, dialer)
	if err := r.Initialize(); err != nil {
		t.Fatal(err)
	}

	if err := r.Reopen(); err != nil {
		t.Fatal(err)
	}

	if !bus.closed {
		t.Fatal("old transport not closed")
	}
	if len(dialer.opened) != 1 {
		t.Fatalf("expected one fresh transport, got %d", len(dialer.opened))
	}
	fresh := dialer.opened[0]
	if len(fresh.bursts) != 1 || !bytes.Equal(fresh.bursts[0], bootSequence(t)) {
		t.Fatal("boot handshake not re-sent on the fresh transport")
	}
}

func TestMovementBuilderClamps(t *testing.T) {
	p := Movement{}.Forward(2.0).StrafeRight(-3.0).RotateRight(0.5).Params()
	want := command.MovementParams{VX: 1.0, VY: -1.0, VZ: 0.5}
	if p != want {
		t.Fatalf("got %+v, want %+v", p, want)
	}
}
