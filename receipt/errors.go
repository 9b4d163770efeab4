package receipt

import "errors"

var (
	// ErrBadJournal indicates journal bytes could not be decoded.
	ErrBadJournal = errors.New("receipt: malformed journal")
)
