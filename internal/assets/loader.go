// Package assets fetches third-party editor modules exactly once per
// process. Dependency ordering between modules is the caller's job; the
// loader only guarantees idempotency and single-flight fetching.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// LoadError is fatal to initialization: callers must not bring up
// components that depend on the failed resource.
type LoadError struct {
	ID  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load module %q: %v", e.ID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type Resource struct {
	ID  string
	URL string
	// Install runs once with the fetched body, while the resource is
	// still marked loading. Optional.
	Install func([]byte) error
}

type state int

const (
	stateNotLoaded state = iota
	stateLoading
	stateLoaded
)

type Loader struct {
	http   *http.Client
	logger *zap.Logger

	group  singleflight.Group
	mu     sync.Mutex
	states map[string]state
}

func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
		states: make(map[string]state),
	}
}

// EnsureLoaded resolves immediately when the resource is already present.
// Concurrent calls for the same id share one in-flight fetch. A failed
// fetch resets the resource to not-loaded so a later call can retry.
func (l *Loader) EnsureLoaded(ctx context.Context, res Resource) error {
	l.mu.Lock()
	if l.states[res.ID] == stateLoaded {
		l.mu.Unlock()
		return nil
	}
	l.states[res.ID] = stateLoading
	l.mu.Unlock()

	_, err, _ := l.group.Do(res.ID, func() (any, error) {
		return nil, l.fetch(ctx, res)
	})

	l.mu.Lock()
	if err != nil {
		l.states[res.ID] = stateNotLoaded
	} else {
		l.states[res.ID] = stateLoaded
	}
	l.mu.Unlock()

	if err != nil {
		return &LoadError{ID: res.ID, Err: err}
	}
	return nil
}

// Loaded reports whether the resource finished loading successfully.
func (l *Loader) Loaded(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.states[id] == stateLoaded
}

func (l *Loader) fetch(ctx context.Context, res Resource) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, res.URL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read module body: %w", err)
	}

	if res.Install != nil {
		if err := res.Install(body); err != nil {
			return fmt.Errorf("install: %w", err)
		}
	}

	l.logger.Debug("module loaded", zap.String("id", res.ID), zap.Int("bytes", len(body)))
	return nil
}
