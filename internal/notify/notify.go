// Package notify delivers decision emails to request owners. Delivery is
// best-effort: failures are logged and dropped, never retried, and never
// surface to the decision that triggered them.
package notify

import "time"

// DecisionData is the template payload of a decision email.
type DecisionData struct {
	Name          string    // Recipient display name
	Status        string    // approved or rejected
	LeaveType     string    // Leave category
	FromDate      time.Time // First day of leave
	ToDate        time.Time // Last day of leave
	Reason        string    // Application reason
	AdminComments string    // Optional decision comment
}

// Notification is one message to deliver.
type Notification struct {
	Recipient string       // Recipient email address
	Subject   string       // Message subject
	Data      DecisionData // Template payload
}

// Notifier delivers a single notification.
type Notifier interface {
	Send(n Notification) error
}
