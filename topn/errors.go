package topn

import "errors"

var (
	// ErrNoCandidates indicates the proof input carries an empty candidate list.
	ErrNoCandidates = errors.New("topn: candidate list is empty")

	// ErrZeroN indicates the requested N is zero or negative.
	ErrZeroN = errors.New("topn: n must be positive")

	// ErrNTooLarge indicates N exceeds the candidate list length.
	ErrNTooLarge = errors.New("topn: n exceeds candidate list length")

	// ErrDuplicateCandidate indicates the candidate list names an address twice.
	ErrDuplicateCandidate = errors.New("topn: duplicate candidate address")
)
