package publishers

import "time"

// Version kinds announced by the watcher.
const (
	KindGameData     = "gamedata"
	KindLocalization = "localization"
)

// Event announces that the remote service moved to a new version.
type Event struct {
	Kind            string    `json:"kind"`
	Version         string    `json:"version"`
	PreviousVersion string    `json:"previous_version,omitempty"`
	Source          string    `json:"source"`
	ObservedAt      time.Time `json:"observed_at"`
}

// NewEvent constructs an Event for a version change seen on source at the given time.
func NewEvent(kind, version, previous, source string, at time.Time) Event {
	return Event{
		Kind:            kind,
		Version:         version,
		PreviousVersion: previous,
		Source:          source,
		ObservedAt:      at.UTC(),
	}
}

// attributes are the routing attributes every queue-style sink attaches.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"kind":    e.Kind,
		"version": e.Version,
	}
}
