package provisioning

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"
)

// Observer reports the progress of a provisioning run.
type Observer interface {
	Printf(format string, v ...any)
	Event(event Event)
}

// Event is a structured provisioning event.
type Event struct {
	Type      EventType
	State     string
	Message   string
	Instance  string
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventStateStarted indicates a run entered a state.
	EventStateStarted EventType = "state.started"
	// EventStateCompleted indicates a state finished.
	EventStateCompleted EventType = "state.completed"
	// EventStateFailed indicates a state failed.
	EventStateFailed EventType = "state.failed"

	// EventInstanceSubmitted indicates the provider accepted the instance.
	EventInstanceSubmitted EventType = "instance.submitted"
	// EventInstanceStatus reports a status check.
	EventInstanceStatus EventType = "instance.status"
)

// ConsoleObserver writes events as log lines.
type ConsoleObserver struct {
	out *log.Logger
}

// NewConsoleObserver creates an observer writing to w.
func NewConsoleObserver(w io.Writer) *ConsoleObserver {
	return &ConsoleObserver{out: log.New(w, "", log.LstdFlags)}
}

// Printf writes a free-form line.
func (o *ConsoleObserver) Printf(format string, v ...any) {
	o.out.Printf(format, v...)
}

// Event writes a structured event.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	o.out.Print(formatEvent(event))
}

func formatEvent(event Event) string {
	parts := []string{string(event.Type)}
	if event.State != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.State))
	}
	if event.Instance != "" {
		parts = append(parts, fmt.Sprintf("instance=%s", event.Instance))
	}
	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		keys := make([]string, 0, len(event.Fields))
		for k := range event.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fieldParts := make([]string, 0, len(keys))
		for _, k := range keys {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, event.Fields[k]))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// LogStateStart logs a state start event.
func LogStateStart(observer Observer, state State) {
	observer.Event(Event{
		Type:    EventStateStarted,
		State:   state.String(),
		Message: "starting",
	})
}

// LogStateComplete logs a state completion event.
func LogStateComplete(observer Observer, state State, duration time.Duration) {
	observer.Event(Event{
		Type:    EventStateCompleted,
		State:   state.String(),
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogStateFailed logs a state failure event.
func LogStateFailed(observer Observer, state State, err error) {
	observer.Event(Event{
		Type:    EventStateFailed,
		State:   state.String(),
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogInstanceSubmitted logs an accepted submission.
func LogInstanceSubmitted(observer Observer, name, instanceID string) {
	observer.Event(Event{
		Type:     EventInstanceSubmitted,
		State:    StateStartClone.String(),
		Instance: instanceID,
		Message:  "instance accepted",
		Fields:   map[string]string{"name": name},
	})
}

// LogInstanceStatus logs the result of a status check.
func LogInstanceStatus(observer Observer, instanceID, message string, done bool) {
	observer.Event(Event{
		Type:     EventInstanceStatus,
		State:    StateCheckClone.String(),
		Instance: instanceID,
		Message:  message,
		Fields:   map[string]string{"done": fmt.Sprintf("%t", done)},
	})
}
