package batch

import (
	"fmt"

	"github.com/ytget/ytbatch/internal/model"
)

// SinkBufferSize is the event buffer between workers and the front end
const SinkBufferSize = 256

// Sink is the many-producer/single-consumer progress stream of one batch.
// Regular emits never block: when the consumer lags behind the buffer the
// event is dropped instead of stalling a worker. The terminal event is
// always delivered. A nil *Sink discards everything, so pipeline code can
// emit unconditionally.
type Sink struct {
	events chan model.Event
}

// NewSink creates a sink with the default buffer
func NewSink() *Sink {
	return &Sink{events: make(chan model.Event, SinkBufferSize)}
}

// Events returns the consumer side of the stream. The channel is closed
// after the terminal event.
func (s *Sink) Events() <-chan model.Event {
	return s.events
}

// Log emits one log line
func (s *Sink) Log(text string) {
	s.send(model.Event{Kind: model.EventLog, Message: text})
}

// Logf emits one formatted log line
func (s *Sink) Logf(format string, args ...interface{}) {
	s.Log(fmt.Sprintf(format, args...))
}

// Progress emits a fractional transfer progress in [0,1]
func (s *Sink) Progress(fraction float64) {
	s.send(model.Event{Kind: model.EventProgress, Fraction: fraction})
}

// Status emits a short status line
func (s *Sink) Status(text string) {
	s.send(model.Event{Kind: model.EventStatus, Message: text})
}

// ItemDone emits one item's terminal outcome
func (s *Sink) ItemDone(url string, outcome model.Outcome) {
	s.send(model.Event{Kind: model.EventItemDone, Message: url, Outcome: outcome})
}

// Done delivers the terminal event and closes the stream. Unlike the other
// emits it blocks until the consumer has room, so the final status cannot
// be dropped. Call exactly once, after all producers have stopped.
func (s *Sink) Done(finalStatus string) {
	if s == nil {
		return
	}
	s.events <- model.Event{Kind: model.EventDone, Message: finalStatus}
	close(s.events)
}

func (s *Sink) send(ev model.Event) {
	if s == nil {
		return
	}
	select {
	case s.events <- ev:
	default:
	}
}
