package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEventLog_SortsByTimestampStable(t *testing.T) {
	raw := []Event{
		{Timestamp: 30, Message: "c"},
		{Timestamp: 10, Message: "a"},
		{Timestamp: 30, Message: "b"},
		{Timestamp: 20, Message: "x"},
	}

	log := NewEventLog(raw)

	got := log.Events()
	assert.Equal(t, []string{"a", "x", "c", "b"}, messages(got))
	assert.Equal(t, int64(30), raw[0].Timestamp, "input must not be reordered")
}

func TestNewEventLog_DropsExactDuplicates(t *testing.T) {
	log := NewEventLog([]Event{
		{Timestamp: 10, Sender: "DOCUMENT", Message: "a"},
		{Timestamp: 10, Sender: "READER", Message: "a"},
		{Timestamp: 11, Message: "a"},
	})

	assert.Equal(t, 2, log.Len())
}

func TestEventLog_AppendMatchesFullRecompute(t *testing.T) {
	first := []Event{{Timestamp: 5, Message: "b"}, {Timestamp: 1, Message: "a"}}
	second := []Event{{Timestamp: 5, Message: "c"}, {Timestamp: 3, Message: "d"}, {Timestamp: 1, Message: "a"}}

	incremental := NewEventLog(first).Append(second...)
	full := NewEventLog(append(append([]Event{}, first...), second...))

	assert.Equal(t, full.Events(), incremental.Events())
}

func TestDocumentKey(t *testing.T) {
	tests := map[string]string{
		"input/sample_txt/sample_14_92120.txt": "sample_14_92120.txt",
		"sample.txt":                           "sample.txt",
		`C:\data\file.xmi`:                     "file.xmi",
		"folder/":                              "folder",
		"":                                     "",
		" /a/b c.txt ":                         "b c.txt",
	}

	for in, want := range tests {
		assert.Equal(t, want, DocumentKey(in), in)
	}
}

func messages(events []Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Message
	}
	return out
}
