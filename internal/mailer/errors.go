package mailer

import "fmt"

// SendError represents a per-recipient delivery failure. Send errors are
// logged and do not halt the run.
type SendError struct {
	Recipient string
	Cause     error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send error: %s: %v", e.Recipient, e.Cause)
}

func (e *SendError) Unwrap() error {
	return e.Cause
}
