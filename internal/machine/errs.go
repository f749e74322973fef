package machine

import "errors"

// ErrUnknownMachine indicates that the requested cost-center identifier is
// not in the static profile table.
var ErrUnknownMachine = errors.New("machine: unknown cost center")
