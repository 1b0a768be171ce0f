package monitor

import "strings"

// Kind is the semantic meaning of a log line.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindComponentAdded
	KindComponentInstantiating
	KindComponentSetupFinished
	KindComponentShuttingDown
	KindDocumentEnteredStage
	KindDocumentLeftStage
	KindDocumentFullyProcessed
	KindDocumentStartedWaiting
	KindDocumentDecoding
	KindDocumentDeserializing
)

func (k Kind) String() string {
	switch k {
	case KindComponentAdded:
		return "ComponentAdded"
	case KindComponentInstantiating:
		return "ComponentInstantiating"
	case KindComponentSetupFinished:
		return "ComponentSetupFinished"
	case KindComponentShuttingDown:
		return "ComponentShuttingDown"
	case KindDocumentEnteredStage:
		return "DocumentEnteredStage"
	case KindDocumentLeftStage:
		return "DocumentLeftStage"
	case KindDocumentFullyProcessed:
		return "DocumentFullyProcessed"
	case KindDocumentStartedWaiting:
		return "DocumentStartedWaiting"
	case KindDocumentDecoding:
		return "DocumentDecoding"
	case KindDocumentDeserializing:
		return "DocumentDeserializing"
	default:
		return "Unrecognized"
	}
}

// Match is a classified event. Document holds the document key, not the
// full path found in the message.
type Match struct {
	Kind      Kind
	Document  string
	Component string
	Timestamp int64
}

const (
	markerEntered       = " is being processed by component "
	markerLeft          = " has been processed by component "
	markerProcessed     = " has been processed"
	markerByComponent   = " by component"
	prefixWaiting       = "Starting to process "
	prefixDecoding      = "Decoding document "
	prefixDeserializing = "Deserializing document "
	prefixAdded         = "Added component "
	prefixInstantiating = "Instantiating component "
	prefixInstantiated  = "Instantiated component "
	prefixShuttingDown  = "Shutting down component "
)

type matcher struct {
	kind  Kind
	match func(msg string) (document, component string, ok bool)
}

// matchers is ordered most specific first. Left-stage must precede the
// fully-processed matcher because its marker contains the latter's.
var matchers = []matcher{
	{KindDocumentLeftStage, documentAtComponent(markerLeft)},
	{KindDocumentEnteredStage, documentAtComponent(markerEntered)},
	{KindDocumentFullyProcessed, fullyProcessed},
	{KindDocumentStartedWaiting, documentAfter(prefixWaiting)},
	{KindDocumentDecoding, documentAfter(prefixDecoding)},
	{KindDocumentDeserializing, documentAfter(prefixDeserializing)},
	{KindComponentInstantiating, componentAfter(prefixInstantiating)},
	{KindComponentSetupFinished, componentAfter(prefixInstantiated)},
	{KindComponentShuttingDown, componentAfter(prefixShuttingDown)},
	{KindComponentAdded, componentAfter(prefixAdded)},
}

// Classify maps one event onto at most one Kind.
func Classify(e Event) Match {
	for _, m := range matchers {
		if doc, comp, ok := m.match(e.Message); ok {
			return Match{Kind: m.kind, Document: doc, Component: comp, Timestamp: e.Timestamp}
		}
	}
	return Match{Kind: KindUnrecognized, Timestamp: e.Timestamp}
}

// matchingKinds returns every Kind whose matcher accepts msg, ignoring
// precedence.
func matchingKinds(msg string) []Kind {
	var kinds []Kind
	for _, m := range matchers {
		if _, _, ok := m.match(msg); ok {
			kinds = append(kinds, m.kind)
		}
	}
	return kinds
}

func documentAtComponent(marker string) func(string) (string, string, bool) {
	return func(msg string) (string, string, bool) {
		doc, comp, ok := strings.Cut(msg, marker)
		if !ok {
			return "", "", false
		}
		doc = documentFromPrefix(doc)
		comp = strings.TrimSpace(comp)
		if doc == "" || comp == "" {
			return "", "", false
		}
		return doc, comp, true
	}
}

func fullyProcessed(msg string) (string, string, bool) {
	if strings.Contains(msg, markerEntered) || strings.Contains(msg, markerLeft) {
		return "", "", false
	}
	i := strings.Index(msg, markerProcessed)
	if i < 0 {
		return "", "", false
	}
	if strings.HasPrefix(msg[i+len(markerProcessed):], markerByComponent) {
		return "", "", false
	}
	doc := documentFromPrefix(msg[:i])
	if doc == "" {
		return "", "", false
	}
	return doc, "", true
}

func documentAfter(prefix string) func(string) (string, string, bool) {
	return func(msg string) (string, string, bool) {
		rest, ok := strings.CutPrefix(stripTag(msg), prefix)
		if !ok {
			return "", "", false
		}
		doc := DocumentKey(rest)
		if doc == "" {
			return "", "", false
		}
		return doc, "", true
	}
}

func componentAfter(prefix string) func(string) (string, string, bool) {
	return func(msg string) (string, string, bool) {
		rest, ok := strings.CutPrefix(stripTag(msg), prefix)
		if !ok {
			return "", "", false
		}
		comp := strings.TrimSpace(rest)
		if comp == "" {
			return "", "", false
		}
		return "", comp, true
	}
}

// documentFromPrefix takes the text in front of a marker.
func documentFromPrefix(s string) string {
	return DocumentKey(stripTag(s))
}

// stripTag drops a leading sender tag such as "[DOCUMENT]: " that some
// engines write into the message itself.
func stripTag(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		if _, rest, ok := strings.Cut(s, "]:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return s
}
