package domain

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomClosing       = errors.New("room closing")
	ErrAlreadyJoined     = errors.New("already joined")
	ErrNotAMember        = errors.New("not a member")
	ErrSessionNotFound   = errors.New("session not found")
	ErrCapacityExhausted = errors.New("room code space exhausted")
)
