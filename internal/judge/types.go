// Package judge is the client side of the execution backend protocol:
// submit a buffer, correlate by token, poll for a result, and turn the
// loosely-typed result payload into display text.
package judge

// Submission is built per run and not retained afterwards.
type Submission struct {
	SourceText string
	Stdin      string
	TargetID   int
}

// RawResult mirrors the backend's result record. Every field may be
// absent; StatusID and Done keep explicit presence because zero values
// are meaningful to the done predicate.
type RawResult struct {
	Stdout            string
	Stderr            string
	CompileOutput     string
	StatusDescription string
	StatusID          *int
	Done              *bool
}

// SubmissionHandle is what a submit call yields: exactly one of Token
// (asynchronous case), Result (embedded synchronous result), or Raw
// (opaque body surfaced verbatim) is meaningful.
type SubmissionHandle struct {
	Token  string
	Result *RawResult
	Raw    string
}

// RawLanguage is one entry of the backend catalog before the playground
// assigns it a syntax mode. ID is -1 when the raw entry carried nothing
// parseable as a non-negative integer id.
type RawLanguage struct {
	ID      int
	Name    string
	Version string
}
