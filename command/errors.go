package command

import "fmt"

// CommandNotFound is returned when a command identifier is outside the
// template table. This is a programming or configuration defect, not a
// transient condition.
type CommandNotFound struct {
	ID int
}

func (e CommandNotFound) Error() string {
	return fmt.Sprintf("command not found: %d", e.ID)
}

// InvalidCommandLength is returned when a template's declared length
// disagrees with the template itself, e.g. a length too short to hold
// the checksum trailer.
type InvalidCommandLength struct {
	ID int
}

func (e InvalidCommandLength) Error() string {
	return fmt.Sprintf("invalid command length for command %d", e.ID)
}
