package participant

import "errors"

var (
	// ErrNameTaken indicates a live participant already owns the name.
	ErrNameTaken = errors.New("participant name already taken")
	// ErrUnknownParticipant indicates no live participant owns the name.
	ErrUnknownParticipant = errors.New("unknown participant")
)
