package model

// EventKind discriminates progress events flowing from workers to a front end
type EventKind string

const (
	// EventLog carries one log line for the front end's log view
	EventLog EventKind = "log"

	// EventProgress carries a fractional transfer progress in [0,1]
	EventProgress EventKind = "progress"

	// EventStatus carries a short status text for the status line
	EventStatus EventKind = "status"

	// EventItemDone marks one item's terminal outcome; the runner emits it
	// in completion order so front ends can count finished items
	EventItemDone EventKind = "item_done"

	// EventDone is the terminal event of a batch: the front end resets to
	// idle and the progress display returns to zero
	EventDone EventKind = "done"
)

// Event is one entry in the progress stream. Events from the same item keep
// their emission order; events from different items interleave freely.
type Event struct {
	Kind     EventKind
	Message  string  // log text, status text, URL for item_done, final status for done
	Fraction float64 // transfer progress for EventProgress, 0 otherwise
	Outcome  Outcome // set for EventItemDone only
}
