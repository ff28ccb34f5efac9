package robomaster

import (
	"time"

	"go.uber.org/zap"

	"github.com/IkuoShige/robomaster-s1-go/command"
	"github.com/IkuoShige/robomaster-s1-go/config"
)

// transport is the bus-session surface the control session drives. The
// CAN Transport implements it; tests substitute a fake.
type transport interface {
	SendBurst(cmd []byte) error
	SendFrames(frames [][]byte) error
	ReceiveAndProcess(counters *command.Counters) error
	Close()
}

// Robot is the stateful control session for one robot on one CAN
// interface. It owns the transport, the per-subsystem sequence counters
// and the initialization state. Operations are not internally locked;
// concurrent callers must serialize externally.
type Robot struct {
	bus      transport
	builder  *command.Builder
	counters command.Counters
	log      *zap.Logger

	name        string
	timeout     time.Duration
	settle      time.Duration
	initialized bool
	closed      bool

	// reopen replaces the transport after repeated failures; see
	// Supervisor.
	reopen func() (transport, error)
}

// Option configures a Robot.
type Option func(*Robot)

// WithLogger attaches a structured logger to the session and its
// transport.
func WithLogger(log *zap.Logger) Option {
	return func(r *Robot) { r.log = log }
}

// WithTimeout overrides the receive timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Robot) { r.timeout = d }
}

// WithSettleDelay overrides the pause after the boot burst.
func WithSettleDelay(d time.Duration) Option {
	return func(r *Robot) { r.settle = d }
}

// New opens the CAN interface and returns a session in the
// uninitialized state. The boot handshake runs on the first movement
// command, or explicitly via Initialize.
func New(interfaceName string, opts ...Option) (*Robot, error) {
	r := &Robot{
		builder: command.NewBuilder(),
		log:     zap.NewNop(),
		name:    interfaceName,
		timeout: DefaultTimeout,
		settle:  DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.reopen = func() (transport, error) {
		t, err := Open(r.name, r.log)
		if err != nil {
			return nil, err
		}
		t.Timeout = r.timeout
		return t, nil
	}

	bus, err := r.reopen()
	if err != nil {
		return nil, err
	}
	r.bus = bus
	return r, nil
}

// NewFromConfig opens a session using the interface, receive timeout
// and settle delay from cfg. Options given here override the config.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Robot, error) {
	base := []Option{
		WithTimeout(cfg.CAN.Timeout),
		WithSettleDelay(cfg.Control.SettleDelay),
	}
	return New(cfg.CAN.Interface, append(base, opts...)...)
}

// Initialize sends the boot handshake once and waits for the device to
// settle. It is a no-op on a session that is already ready.
func (r *Robot) Initialize() error {
	if r.closed {
		return ErrClosed
	}
	if r.initialized {
		return nil
	}

	r.log.Info("initializing", zap.String("interface", r.name))
	boot, err := r.builder.BootSequence()
	if err != nil {
		return err
	}
	if err := r.bus.SendBurst(boot); err != nil {
		return err
	}
	time.Sleep(r.settle)

	r.initialized = true
	r.log.Info("initialized", zap.String("interface", r.name))
	return nil
}

func (r *Robot) ensureInitialized() error {
	if !r.initialized {
		return r.Initialize()
	}
	return nil
}

// Move drives the chassis. Every move also issues a gimbal command
// whose yaw follows the rotation axis, with pitch held at zero; the
// device expects the pair. Both the joy and gimbal counters advance by
// one.
func (r *Robot) Move(p command.MovementParams) error {
	if r.closed {
		return ErrClosed
	}
	if err := r.ensureInitialized(); err != nil {
		return err
	}

	twist, err := r.builder.Twist(p, &r.counters)
	if err != nil {
		return err
	}
	gimbal, err := r.builder.Gimbal(command.GimbalParams{RZ: p.VZ}, &r.counters)
	if err != nil {
		return err
	}

	if err := r.bus.SendBurst(twist); err != nil {
		return err
	}
	if err := r.bus.SendBurst(gimbal); err != nil {
		return err
	}

	r.counters.Joy++
	r.counters.Gimbal++
	return nil
}

// Stop halts all axes.
func (r *Robot) Stop() error {
	return r.Move(command.MovementParams{})
}

// ControlLed sets the status LED color. It does not require the boot
// handshake; the led counter advances by one.
func (r *Robot) ControlLed(color command.LedColor) error {
	if r.closed {
		return ErrClosed
	}

	led, err := r.builder.Led(color, &r.counters)
	if err != nil {
		return err
	}
	if err := r.bus.SendBurst(led); err != nil {
		return err
	}

	r.counters.Led++
	return nil
}

// SendTouch sends the two-frame keepalive; the joy counter advances by
// one.
func (r *Robot) SendTouch() error {
	if r.closed {
		return ErrClosed
	}

	if err := r.bus.SendFrames(r.builder.Touch(&r.counters)); err != nil {
		return err
	}

	r.counters.Joy++
	return nil
}

// ReceiveMessages reads one inbound frame and may resynchronize the joy
// counter from device telemetry. A timeout is not an error.
func (r *Robot) ReceiveMessages() error {
	if r.closed {
		return ErrClosed
	}
	return r.bus.ReceiveAndProcess(&r.counters)
}

// Counters returns a snapshot of the sequence counters.
func (r *Robot) Counters() command.Counters {
	return r.counters
}

// InterfaceName returns the CAN interface the session was opened on.
func (r *Robot) InterfaceName() string {
	return r.name
}

// Reopen discards the current bus handle, opens a fresh one and re-runs
// the boot handshake. It is the recovery path after repeated transport
// failures, not part of normal operation.
func (r *Robot) Reopen() error {
	if r.closed {
		return ErrClosed
	}

	r.bus.Close()
	bus, err := r.reopen()
	if err != nil {
		return err
	}
	r.bus = bus
	r.initialized = false
	return r.Initialize()
}

// Shutdown closes the transport. The session is terminal afterwards:
// every further operation returns ErrClosed. Shutdown itself never
// fails and is safe to call more than once.
func (r *Robot) Shutdown() {
	if r.closed {
		return
	}
	r.closed = true
	r.bus.Close()
	r.log.Info("shutdown", zap.String("interface", r.name))
}
