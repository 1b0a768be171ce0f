// Package monitor reconstructs the state of a pipeline run from the
// free-text log its execution engine emits.
//
// Every function takes a full log snapshot and returns fresh values. No
// state survives between calls, so callers may poll a growing log from as
// many goroutines as they like. Inference is monotonic: a longer log never
// reports fewer finished stages than a prefix of it.
package monitor
