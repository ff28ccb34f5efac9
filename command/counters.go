package command

// Counters holds the three per-subsystem sequence counters the device
// uses to detect stale or duplicate commands. Each increments exactly
// once per built command of its family; wraparound from 65535 to 0 is
// defined behavior. They belong to one control session and are passed
// by pointer into the builder, never shared.
type Counters struct {
	Joy    uint16
	Led    uint16
	Gimbal uint16
}
