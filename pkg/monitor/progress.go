package monitor

import "math"

// Run carries the externally recorded facts about a process.
type Run struct {
	StartedAt     int64
	FinishedAt    *int64
	Status        Status
	DocumentNames []string
}

// TerminalPolicy decides what a document without its own completion
// evidence reports once its run failed or was cancelled.
type TerminalPolicy int

const (
	// InheritRunStatus reports the run's Failed/Cancelled status.
	InheritRunStatus TerminalPolicy = iota
	// OwnEvidenceOnly derives the status from the document's own events.
	OwnEvidenceOnly
)

type Options struct {
	TerminalPolicy TerminalPolicy
}

// DocumentProgress is the inferred state of one document.
type DocumentProgress struct {
	Key        string `json:"key"`
	StageIndex int    `json:"stage_index"`
	Status     Status `json:"status"`
	Stage      string `json:"stage,omitempty"`
	IsFinished bool   `json:"is_finished"`
	Percent    int    `json:"percent"`
}

// ProcessProgress aggregates the documents of a run.
type ProcessProgress struct {
	Status    Status             `json:"status"`
	Finished  int                `json:"finished"`
	Total     int                `json:"total"`
	Fraction  float64            `json:"fraction"`
	Percent   int                `json:"percent"`
	Documents []DocumentProgress `json:"documents"`
}

// trace collects the classified events of a single document.
type trace struct {
	entered     map[string][]int64
	left        map[string][]int64
	completed   bool
	completedAt int64
	waitingAt   *int64
	last        Kind
}

func newTrace() *trace {
	return &trace{
		entered: make(map[string][]int64),
		left:    make(map[string][]int64),
	}
}

func (t *trace) add(m Match) {
	switch m.Kind {
	case KindDocumentEnteredStage:
		t.entered[m.Component] = append(t.entered[m.Component], m.Timestamp)
	case KindDocumentLeftStage:
		t.left[m.Component] = append(t.left[m.Component], m.Timestamp)
	case KindDocumentFullyProcessed:
		if !t.completed {
			t.completed = true
			t.completedAt = m.Timestamp
		}
	case KindDocumentStartedWaiting:
		if t.waitingAt == nil {
			ts := m.Timestamp
			t.waitingAt = &ts
		}
	}
	t.last = m.Kind
}

func isDocumentKind(k Kind) bool {
	switch k {
	case KindDocumentEnteredStage, KindDocumentLeftStage, KindDocumentFullyProcessed,
		KindDocumentStartedWaiting, KindDocumentDecoding, KindDocumentDeserializing:
		return true
	}
	return false
}

// traces folds the log into one trace per document key. When only is
// non-empty, other documents are skipped.
func traces(log EventLog, only string) map[string]*trace {
	out := make(map[string]*trace)
	for _, e := range log.events {
		m := Classify(e)
		if !isDocumentKind(m.Kind) {
			continue
		}
		if only != "" && m.Document != only {
			continue
		}
		t, ok := out[m.Document]
		if !ok {
			t = newTrace()
			out[m.Document] = t
		}
		t.add(m)
	}
	return out
}

// stageSlot is one occurrence of a component in the pipeline. occurrence
// is zero based.
type stageSlot struct {
	name       string
	occurrence int
}

func stageSlots(stages []string) []stageSlot {
	seen := make(map[string]int, len(stages))
	slots := make([]stageSlot, len(stages))
	for i, name := range stages {
		slots[i] = stageSlot{name: name, occurrence: seen[name]}
		seen[name]++
	}
	return slots
}

// ComputeDocumentProgress infers how far the document identified by key
// has travelled through stages.
func ComputeDocumentProgress(log EventLog, stages []string, run Run, key string, opts Options) DocumentProgress {
	run.Status = InferRunStatus(log, run.Status)
	return documentProgress(traces(log, key)[key], stages, run, key, opts)
}

func documentProgress(t *trace, stages []string, run Run, key string, opts Options) DocumentProgress {
	p := DocumentProgress{Key: key, Status: StatusWaiting}
	if t == nil {
		return p
	}

	slots := stageSlots(stages)
	for _, s := range slots {
		if len(t.left[s.name]) > s.occurrence {
			p.StageIndex++
		}
	}
	if t.completed {
		p.StageIndex = len(stages)
	}
	p.StageIndex = clamp(p.StageIndex, 0, len(stages))
	p.IsFinished = t.completed || (p.StageIndex == len(stages) && run.Status.Ended())
	p.Percent = Percent(p.StageIndex, len(stages))

	failedRun := run.Status == StatusFailed || run.Status == StatusCancelled
	switch {
	case failedRun && !t.completed && opts.TerminalPolicy == InheritRunStatus:
		p.Status = run.Status
	case p.IsFinished:
		p.Status = StatusCompleted
	case !run.Status.Ended() && openStage(t, slots) != "":
		p.Status = StatusRunning
		p.Stage = openStage(t, slots)
	case t.last == KindDocumentDecoding:
		p.Status = StatusDecode
	case t.last == KindDocumentDeserializing:
		p.Status = StatusDeserialize
	}
	return p
}

// openStage returns the most recently entered stage that has not been left.
func openStage(t *trace, slots []stageSlot) string {
	var (
		name   string
		latest int64 = math.MinInt64
	)
	for _, s := range slots {
		in, out := t.entered[s.name], t.left[s.name]
		if len(in) > s.occurrence && len(out) <= s.occurrence && in[s.occurrence] >= latest {
			name = s.name
			latest = in[s.occurrence]
		}
	}
	return name
}

// InferRunStatus returns recorded unless it is unknown, in which case the
// status is derived from component lifecycle lines in the log.
func InferRunStatus(log EventLog, recorded Status) Status {
	if recorded != StatusUnknown && recorded != "" {
		return recorded
	}
	phase := StatusUnknown
	rank := map[Status]int{StatusUnknown: 0, StatusSetup: 1, StatusInput: 2, StatusActive: 3, StatusShutdown: 4}
	for _, e := range log.events {
		var next Status
		switch k := Classify(e).Kind; {
		case k == KindComponentAdded || k == KindComponentInstantiating:
			next = StatusSetup
		case k == KindComponentSetupFinished:
			next = StatusInput
		case isDocumentKind(k):
			next = StatusActive
		case k == KindComponentShuttingDown:
			next = StatusShutdown
		default:
			continue
		}
		if rank[next] > rank[phase] {
			phase = next
		}
	}
	return phase
}

// ComputeProcessProgress infers every document of the run in one pass over
// the log and aggregates them.
func ComputeProcessProgress(log EventLog, stages []string, run Run, opts Options) ProcessProgress {
	all := traces(log, "")
	out := ProcessProgress{
		Status:    InferRunStatus(log, run.Status),
		Total:     len(run.DocumentNames),
		Documents: make([]DocumentProgress, 0, len(run.DocumentNames)),
	}
	run.Status = out.Status
	for _, name := range run.DocumentNames {
		key := DocumentKey(name)
		dp := documentProgress(all[key], stages, run, key, opts)
		if dp.IsFinished {
			out.Finished++
		}
		out.Documents = append(out.Documents, dp)
	}
	if out.Total > 0 {
		out.Fraction = float64(out.Finished) / float64(out.Total)
	}
	out.Percent = Percent(out.Finished, out.Total)
	return out
}

// Percent is value/max as a rounded percentage in [0,100]; 0 when max is
// not positive.
func Percent(value, max int) int {
	if max <= 0 {
		return 0
	}
	return clamp(int(math.Round(float64(value)/float64(max)*100)), 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
