package notifier

import "fmt"

// NotifyError reports a failed delivery to the chat webhook.
type NotifyError struct {
	Notifier   string
	StatusCode int
	Err        error
}

func (e *NotifyError) Error() string {
	if e.Notifier == "" {
		return fmt.Sprintf("webhook failed: %v", e.Err)
	}
	return fmt.Sprintf("%s webhook failed: %v", e.Notifier, e.Err)
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}
