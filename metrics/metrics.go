// Package metrics records operational counters for the webhook and dashboard.
// File: metrics/metrics.go
package metrics

// outcome labels
const (
	OutcomeOK       = "ok"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

// Recorder is implemented by each metrics sink.
type Recorder interface {
	// WebhookRequest counts one webhook call by intent kind and outcome.
	WebhookRequest(kind, outcome string)
	// PersistFailure counts a store write that failed behind a success reply.
	PersistFailure(collection string)
	// ModerationAction counts an admin dashboard action.
	ModerationAction(action, outcome string)
	// LiveWatchers reports the number of open live dashboard connections.
	LiveWatchers(n int)
}

// Nop discards everything.
type Nop struct{}

func (Nop) WebhookRequest(string, string)   {}
func (Nop) PersistFailure(string)           {}
func (Nop) ModerationAction(string, string) {}
func (Nop) LiveWatchers(int)                {}

// Multi fans out to several recorders.
type Multi []Recorder

func (m Multi) WebhookRequest(kind, outcome string) {
	for _, r := range m {
		r.WebhookRequest(kind, outcome)
	}
}

func (m Multi) PersistFailure(collection string) {
	for _, r := range m {
		r.PersistFailure(collection)
	}
}

func (m Multi) ModerationAction(action, outcome string) {
	for _, r := range m {
		r.ModerationAction(action, outcome)
	}
}

func (m Multi) LiveWatchers(n int) {
	for _, r := range m {
		r.LiveWatchers(n)
	}
}
