package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrEmptyPrompt        = errors.New("empty prompt")
	ErrCommandNotFound    = errors.New("command not found")
	ErrCallbackNotFound   = errors.New("callback not found")

	// ErrBackendUnavailable marks an AI call that exhausted its retry
	// budget. Callers turn it into a friendly message, never raw output.
	ErrBackendUnavailable = errors.New("ai backend unavailable")

	// ErrDeliveryFailed marks an outbound send that exhausted its retry
	// budget.
	ErrDeliveryFailed = errors.New("message delivery failed")
)
