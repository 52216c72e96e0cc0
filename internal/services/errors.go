package services

import "errors"

// Errors surfaced by the service layer. Handlers map these onto HTTP status
// codes; anything else collapses to a generic 500.
var (
	ErrInvalidReactionType = errors.New("invalid reaction type")
	ErrParentNotFound      = errors.New("parent comment not found")
	ErrParentWrongPost     = errors.New("parent comment belongs to a different post")
	ErrAccountNotFound     = errors.New("account not found or not active")
	ErrInvalidCode         = errors.New("invalid or expired code")
	ErrCodeNotVerified     = errors.New("code not verified or verification expired")
	ErrUserNotFound        = errors.New("user not found")
	ErrTooManyRequests     = errors.New("reset requested too recently")
)
