package monitor

import (
	"sort"
	"strings"
)

// Event is a single line of the execution engine's log.
type Event struct {
	Timestamp int64  `json:"timestamp"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
}

// EventLog is an immutable snapshot of a run's log, ordered by timestamp
// with ties kept in their original order. Exact duplicates are dropped.
type EventLog struct {
	events []Event
}

type eventIdentity struct {
	timestamp int64
	message   string
}

// NewEventLog normalizes events into an EventLog. The input slice is not
// modified.
func NewEventLog(events []Event) EventLog {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	seen := make(map[eventIdentity]struct{}, len(sorted))
	out := sorted[:0]
	for _, e := range sorted {
		id := eventIdentity{e.Timestamp, e.Message}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, e)
	}
	return EventLog{events: out}
}

// Append returns a new log holding the receiver's events followed by more.
// The result equals NewEventLog over the concatenated input.
func (l EventLog) Append(more ...Event) EventLog {
	all := make([]Event, 0, len(l.events)+len(more))
	all = append(all, l.events...)
	all = append(all, more...)
	return NewEventLog(all)
}

// Events returns a copy of the ordered events.
func (l EventLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

func (l EventLog) Len() int {
	return len(l.events)
}

// lastTimestamp returns the newest timestamp in the log, or fallback when
// the log is empty.
func (l EventLog) lastTimestamp(fallback int64) int64 {
	if len(l.events) == 0 {
		return fallback
	}
	return l.events[len(l.events)-1].Timestamp
}

// DocumentKey returns the final path segment of a stored document path.
// It is the join key between documents and log lines.
func DocumentKey(path string) string {
	path = strings.TrimSpace(path)
	path = strings.TrimRight(path, `/\`)
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
