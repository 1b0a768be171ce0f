package monitor

import "strings"

// Status is the lifecycle state of a process or of a single document.
type Status string

const (
	StatusSetup         Status = "Setup"
	StatusInput         Status = "Input"
	StatusActive        Status = "Active"
	StatusRunning       Status = "Running"
	StatusShutdown      Status = "Shutdown"
	StatusOutput        Status = "Output"
	StatusCompleted     Status = "Completed"
	StatusCancelled     Status = "Cancelled"
	StatusFailed        Status = "Failed"
	StatusUnknown       Status = "Unknown"
	StatusDecode        Status = "Decode"
	StatusDeserialize   Status = "Deserialize"
	StatusWaiting       Status = "Waiting"
	StatusSkipped       Status = "Skipped"
	StatusInstantiating Status = "Instantiating"
)

var processStatuses = []Status{
	StatusSetup,
	StatusInput,
	StatusActive,
	StatusRunning,
	StatusShutdown,
	StatusOutput,
	StatusCompleted,
	StatusCancelled,
	StatusFailed,
	StatusUnknown,
}

var documentStatuses = append(append([]Status{}, processStatuses...),
	StatusDecode,
	StatusDeserialize,
	StatusWaiting,
	StatusSkipped,
	StatusInstantiating,
)

// backend variants spell a few names differently
var statusAliases = map[string]Status{
	"canceled":     StatusCancelled,
	"unknow":       StatusUnknown,
	"instatiating": StatusInstantiating,
}

var statusLookup = func() map[string]Status {
	m := make(map[string]Status, len(documentStatuses)+len(statusAliases))
	for _, s := range documentStatuses {
		m[strings.ToLower(string(s))] = s
	}
	for k, s := range statusAliases {
		m[k] = s
	}
	return m
}()

// ParseStatus maps free text to a Status, ignoring case and surrounding
// whitespace. Unrecognized input yields StatusUnknown.
func ParseStatus(s string) Status {
	if st, ok := statusLookup[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st
	}
	return StatusUnknown
}

// Active reports whether the status means work is still progressing.
func (s Status) Active() bool {
	switch s {
	case StatusSetup, StatusInput, StatusActive, StatusRunning, StatusShutdown, StatusOutput:
		return true
	}
	return false
}

// Terminal is the complement of Active.
func (s Status) Terminal() bool {
	return !s.Active()
}

// Ended reports whether no further events are expected for a run.
func (s Status) Ended() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusFailed:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// IsActive is defined for every string; unknown input is not active.
func IsActive(status string) bool {
	return ParseStatus(status).Active()
}

// ProcessStatuses lists the statuses a run can report.
func ProcessStatuses() []Status {
	return append([]Status{}, processStatuses...)
}

// DocumentStatuses lists the statuses a document can report.
func DocumentStatuses() []Status {
	return append([]Status{}, documentStatuses...)
}
