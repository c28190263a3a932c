package chatfmt

import "errors"

// Sentinel errors for the engine.
var (
	// ErrNoFormat indicates no format rule matched the sender.
	// End the rule list with an unconditional rule to avoid it.
	ErrNoFormat = errors.New("no format rule matched")
)
