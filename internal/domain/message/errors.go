package message

import "errors"

var (
	// ErrMessageNotFound indicates the message doesn't exist.
	ErrMessageNotFound = errors.New("message not found")
	// ErrNotAuthor indicates the actor is not the message author.
	ErrNotAuthor = errors.New("not the message author")
	// ErrUnknownUser indicates the acting identity is not a live participant.
	ErrUnknownUser = errors.New("unknown user")
)
