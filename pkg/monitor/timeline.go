package monitor

import (
	"fmt"
	"sort"
)

// Document is the part of a stored document the timeline needs.
type Document struct {
	Name         string
	Path         string
	WaitDuration int64
}

// Key returns the document's join key with the log.
func (d Document) Key() string {
	if d.Path != "" {
		return DocumentKey(d.Path)
	}
	return DocumentKey(d.Name)
}

// TimelineSegment is one bar of a document's Gantt chart. Open segments
// have not ended yet; their End is the time the timeline was built.
type TimelineSegment struct {
	Label string `json:"label"`
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	Open  bool   `json:"open"`
}

func (s TimelineSegment) Duration() int64 {
	return s.End - s.Start
}

const (
	labelSetup   = "Setup"
	labelWaiting = "Waiting"
)

// BuildTimeline reconstructs the stage intervals of doc ordered by start.
// now closes stages that are still running; the run's FinishedAt closes
// stages of a run that ended without a matching exit line. An ended run
// without FinishedAt closes them at the last event of the log.
func BuildTimeline(log EventLog, stages []string, run Run, doc Document, now int64) []TimelineSegment {
	key := doc.Key()
	t := traces(log, key)[key]

	setupEnd := run.StartedAt + doc.WaitDuration
	segments := []TimelineSegment{segment(labelSetup, run.StartedAt, setupEnd, false)}
	if t == nil {
		return segments
	}
	if t.waitingAt != nil {
		segments = append(segments, segment(labelWaiting, setupEnd, *t.waitingAt, false))
	}

	for _, s := range stageSlots(stages) {
		in := t.entered[s.name]
		if len(in) <= s.occurrence {
			continue
		}
		start := in[s.occurrence]
		label := fmt.Sprintf("%s (%d)", s.name, s.occurrence+1)

		if out := t.left[s.name]; len(out) > s.occurrence {
			segments = append(segments, segment(label, start, out[s.occurrence], false))
		} else if run.FinishedAt != nil {
			segments = append(segments, segment(label, start, *run.FinishedAt, false))
		} else if run.Status.Ended() {
			segments = append(segments, segment(label, start, log.lastTimestamp(start), false))
		} else {
			segments = append(segments, segment(label, start, now, true))
		}
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})
	return segments
}

// segment never produces a negative duration.
func segment(label string, start, end int64, open bool) TimelineSegment {
	if end < start {
		end = start
	}
	return TimelineSegment{Label: label, Start: start, End: end, Open: open}
}
