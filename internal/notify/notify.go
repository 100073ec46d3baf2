// Package notify implements the fire-and-forget notification collaborator.
// Lifecycle code calls Notify and moves on; delivery failures are logged,
// never propagated.
package notify

import "log"

// LogNotifier is the fallback used when no delivery channel is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(userID, message string) {
	log.Printf("NOTIFY %s: %s", userID, message)
}
