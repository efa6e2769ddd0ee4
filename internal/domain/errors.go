package domain

import "errors"

var (
	ErrInvalidThreadSpec    = errors.New("invalid thread spec")
	ErrThreadNotFound       = errors.New("thread not found")
	ErrSenderNotAuthorized  = errors.New("sender not authorized for this thread")
	ErrNotAuthorized        = errors.New("insufficient organization role")
	ErrPartnerUnreachable   = errors.New("partner organization unreachable")
	ErrCounterInconsistency = errors.New("notification counter inconsistency")
)
