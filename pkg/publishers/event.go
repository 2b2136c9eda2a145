package publishers

import (
	"time"

	"github.com/Adda-Baaj/launch-harvester/internal/domain"
)

// EventKind distinguishes scheduled launches from launch outcomes.
type EventKind string

const (
	EventLaunchUpcoming EventKind = "launch.upcoming"
	EventLaunchResult   EventKind = "launch.result"

	attrEventKind = "event_kind"
	attrLaunchID  = "launch_id"
)

// Event represents the payload published downstream.
type Event struct {
	Kind        EventKind           `json:"kind"`
	Report      domain.LaunchReport `json:"report"`
	CollectedAt time.Time           `json:"collected_at"`
}

// NewEvent constructs an Event for the given launch report.
func NewEvent(kind EventKind, report domain.LaunchReport) Event {
	return Event{
		Kind:        kind,
		Report:      report,
		CollectedAt: time.Now().UTC(),
	}
}

// Attributes returns the routing attributes queue-based sinks attach to the message.
func (e Event) Attributes() map[string]string {
	return map[string]string{
		attrEventKind: string(e.Kind),
		attrLaunchID:  e.Report.LaunchID,
	}
}
