package launcher

import (
	"log/slog"
	"sync"
	"time"
)

// LogEvent is a single timestamped entry in the activity journal.
// Events are never mutated after they are appended.
type LogEvent struct {
	// Timestamp is when the event was recorded.
	Timestamp time.Time `json:"timestamp"`

	// Source names the component that emitted the event.
	Source string `json:"source"`

	// Level is the event severity.
	Level slog.Level `json:"level"`

	// Message is the event text. For process output events this is one raw line.
	Message string `json:"message"`
}

// Journal is the append-only activity log shared by the core components.
// Appends are totally ordered; subscribers receive events in append order.
type Journal struct {
	mu     sync.Mutex
	events []LogEvent
	subs   map[int]chan LogEvent
	nextID int
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{
		subs: make(map[int]chan LogEvent),
	}
}

// Append records an event and fans it out to subscribers. A zero timestamp is
// filled with the current time. Subscribers that cannot keep up drop events
// rather than block the producer.
func (journal *Journal) Append(event LogEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	journal.mu.Lock()
	defer journal.mu.Unlock()

	journal.events = append(journal.events, event)

	for _, sub := range journal.subs {
		select {
		case sub <- event:
		default:
			slog.Warn("Journal event dropped because the subscriber channel is full.",
				slog.String("source", event.Source))
		}
	}
}

// Events returns a copy of all recorded events in append order.
func (journal *Journal) Events() []LogEvent {
	journal.mu.Lock()
	defer journal.mu.Unlock()

	out := make([]LogEvent, len(journal.events))
	copy(out, journal.events)

	return out
}

// Len returns the number of recorded events.
func (journal *Journal) Len() int {
	journal.mu.Lock()
	defer journal.mu.Unlock()

	return len(journal.events)
}

// Subscribe registers a buffered subscriber channel and returns it together
// with a cancel function. Cancelling closes the channel.
func (journal *Journal) Subscribe(buffer int) (<-chan LogEvent, func()) {
	if buffer <= 0 {
		buffer = 64
	}

	journal.mu.Lock()
	defer journal.mu.Unlock()

	id := journal.nextID
	journal.nextID++

	sub := make(chan LogEvent, buffer)
	journal.subs[id] = sub

	cancel := func() {
		journal.mu.Lock()
		defer journal.mu.Unlock()

		if ch, ok := journal.subs[id]; ok {
			delete(journal.subs, id)
			close(ch)
		}
	}

	return sub, cancel
}
