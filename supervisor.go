package robomaster

import (
	"time"

	"github.com/avast/retry-go"
)

// Supervisor applies the recovery policy for transport failures: retry
// an operation with a fixed delay, and after the attempt budget is
// spent, reopen the transport, re-run the boot handshake and try one
// more round. The session never retries on its own.
type Supervisor struct {
	Robot *Robot

	// Attempts per round; 0 means DefaultAttempts.
	Attempts uint
	// Delay between attempts; 0 means DefaultRetryDelay.
	Delay time.Duration
}

// DefaultAttempts is the per-round attempt budget.
const DefaultAttempts uint = 5

// DefaultRetryDelay is the pause between attempts.
const DefaultRetryDelay = 100 * time.Millisecond

func (s *Supervisor) attempts() uint {
	if s.Attempts == 0 {
		return DefaultAttempts
	}
	return s.Attempts
}

func (s *Supervisor) delay() time.Duration {
	if s.Delay == 0 {
		return DefaultRetryDelay
	}
	return s.Delay
}

// Run executes op against the session, retrying per the policy. A
// closed session is never retried or reopened.
func (s *Supervisor) Run(op func(*Robot) error) error {
	do := func() error { return op(s.Robot) }
	opts := []retry.Option{
		retry.Attempts(s.attempts()),
		retry.Delay(s.delay()),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return err != ErrClosed }),
	}

	err := retry.Do(do, opts...)
	if err == nil || err == ErrClosed {
		return err
	}

	// Escalate: fresh transport, fresh handshake, one more round.
	if err := s.Robot.Reopen(); err != nil {
		return err
	}
	return retry.Do(do, opts...)
}
