// Package run drives a submission from buffer to decoded output: submit,
// branch on token presence, poll within a bounded attempt budget, decode.
// One submission at a time; the busy flag doubles as the UI trigger guard.
package run

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nae2121/ISC-onlinejudge/internal/judge"
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StatePolling    State = "polling"
	StateDone       State = "done"
	StateTimedOut   State = "timed_out"
	StateFailed     State = "failed"
)

// ErrBusy rejects a run started while another is still in flight. There
// is no queue and no mid-flight cancellation of the remote job.
var ErrBusy = errors.New("a submission is already in flight")

const runningCaption = "Running..."

// Sink receives user-visible side effects. SetBusy mirrors the
// disabled state of the run trigger for the submission's duration.
type Sink interface {
	SetBusy(busy bool)
	SetStatus(text string)
	SetOutput(text string)
}

type backend interface {
	Submit(ctx context.Context, sub judge.Submission) (judge.SubmissionHandle, error)
	FetchResult(ctx context.Context, token string) (judge.RawResult, error)
}

// Sleeper suspends between poll attempts. Injected so tests run the loop
// without wall-clock time.
type Sleeper func(ctx context.Context, d time.Duration) error

func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type Config struct {
	Interval         time.Duration
	MaxAttempts      int
	RunningStatusMax int
	DefaultTargetID  int
}

// Outcome is the terminal summary of one run. Output always holds the
// text shown to the user, including diagnostics for failed runs.
type Outcome struct {
	ID       string
	State    State
	Output   string
	Token    string
	Attempts int
}

type Controller struct {
	client  backend
	sink    Sink
	history *HistoryStore
	cfg     Config
	sleep   Sleeper
	logger  *zap.Logger

	busy chan struct{}
}

func NewController(client backend, sink Sink, history *HistoryStore, cfg Config, logger *zap.Logger) *Controller {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 30
	}
	busy := make(chan struct{}, 1)
	busy <- struct{}{}
	return &Controller{
		client:  client,
		sink:    sink,
		history: history,
		cfg:     cfg,
		sleep:   SleepWithContext,
		logger:  logger,
		busy:    busy,
	}
}

// SetSleeper replaces the poll delay. Test hook.
func (c *Controller) SetSleeper(sleep Sleeper) {
	c.sleep = sleep
}

// Run executes one full submission lifecycle. A second Run while one is
// active returns ErrBusy without touching the network.
func (c *Controller) Run(ctx context.Context, sub judge.Submission) (Outcome, error) {
	select {
	case <-c.busy:
	default:
		return Outcome{State: StateIdle}, ErrBusy
	}
	defer func() { c.busy <- struct{}{} }()

	c.sink.SetBusy(true)
	defer c.sink.SetBusy(false)

	if sub.TargetID < 0 {
		sub.TargetID = c.cfg.DefaultTargetID
	}

	outcome := Outcome{ID: uuid.NewString(), State: StateSubmitting}
	record := Record{
		ID:        outcome.ID,
		TargetID:  sub.TargetID,
		State:     StateSubmitting,
		CreatedAt: time.Now().UTC(),
	}
	c.recordProgress(ctx, &record)

	c.sink.SetStatus("Submitting...")
	c.logger.Info("submitting",
		zap.String("run", outcome.ID),
		zap.Int("target", sub.TargetID),
		zap.Int("source_bytes", len(sub.SourceText)))

	handle, err := c.client.Submit(ctx, sub)
	if err != nil {
		return c.fail(ctx, &record, outcome, err)
	}

	switch {
	case handle.Token != "":
		outcome.Token = handle.Token
		record.Token = handle.Token
		return c.poll(ctx, &record, outcome)
	case handle.Result != nil:
		return c.finish(ctx, &record, outcome, judge.Decode(*handle.Result))
	default:
		// No token and no recognizable result: surface the body as-is.
		return c.finish(ctx, &record, outcome, handle.Raw)
	}
}

func (c *Controller) poll(ctx context.Context, record *Record, outcome Outcome) (Outcome, error) {
	outcome.State = StatePolling
	c.recordProgress(ctx, record)

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if err := c.sleep(ctx, c.cfg.Interval); err != nil {
			return c.fail(ctx, record, outcome, err)
		}

		result, err := c.client.FetchResult(ctx, outcome.Token)
		if err != nil {
			// A fetch-level error ends the run; polling is not retried
			// past it.
			return c.fail(ctx, record, outcome, err)
		}
		outcome.Attempts = attempt

		if c.done(result) {
			return c.finish(ctx, record, outcome, judge.Decode(result))
		}

		caption := result.StatusDescription
		if caption == "" {
			caption = runningCaption
		}
		c.sink.SetStatus(caption)
	}

	outcome.State = StateTimedOut
	message := fmt.Sprintf("Execution timed out after %d attempts.", c.cfg.MaxAttempts)
	c.sink.SetStatus("Timed out")
	c.sink.SetOutput(message)
	outcome.Output = message
	record.State = StateTimedOut
	record.Output = message
	record.Attempts = outcome.Attempts
	c.recordProgress(ctx, record)
	return outcome, judge.ErrTimedOut
}

// done prefers the explicit boolean; without one, a status id above the
// configured still-running threshold is terminal. Neither field present
// means keep polling.
func (c *Controller) done(result judge.RawResult) bool {
	if result.Done != nil {
		return *result.Done
	}
	if result.StatusID != nil {
		return *result.StatusID > c.cfg.RunningStatusMax
	}
	return false
}

func (c *Controller) finish(ctx context.Context, record *Record, outcome Outcome, output string) (Outcome, error) {
	outcome.State = StateDone
	outcome.Output = output
	c.sink.SetStatus("Done")
	c.sink.SetOutput(output)

	record.State = StateDone
	record.Output = output
	record.Attempts = outcome.Attempts
	c.recordProgress(ctx, record)

	c.logger.Info("run finished",
		zap.String("run", outcome.ID),
		zap.Int("attempts", outcome.Attempts))
	return outcome, nil
}

func (c *Controller) fail(ctx context.Context, record *Record, outcome Outcome, cause error) (Outcome, error) {
	outcome.State = StateFailed

	// Show the backend's own diagnostic body verbatim when there is one.
	diag := cause.Error()
	var httpErr *judge.HTTPError
	if errors.As(cause, &httpErr) && httpErr.Body != "" {
		diag = httpErr.Body
	}
	outcome.Output = diag
	c.sink.SetStatus("Failed")
	c.sink.SetOutput(diag)

	record.State = StateFailed
	record.Output = diag
	record.Attempts = outcome.Attempts
	c.recordProgress(ctx, record)

	c.logger.Warn("run failed", zap.String("run", outcome.ID), zap.Error(cause))
	return outcome, cause
}

func (c *Controller) recordProgress(ctx context.Context, record *Record) {
	if c.history == nil {
		return
	}
	record.UpdatedAt = time.Now().UTC()
	c.history.put(ctx, *record)
}
