// Package catalog maintains the list of selectable execution targets,
// rebuilt in full on every refresh from the backend's language listing.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nae2121/ISC-onlinejudge/internal/judge"
)

// Target is one selectable execution environment. ID is -1 for entries
// whose raw catalog record carried no parseable id; those stay listed but
// are never auto-selected.
type Target struct {
	ID          int
	DisplayName string
	SyntaxMode  string
}

type languageFetcher interface {
	FetchLanguages(ctx context.Context) ([]judge.RawLanguage, error)
}

type Service struct {
	fetcher languageFetcher
	logger  *zap.Logger

	mu       sync.Mutex
	targets  []Target
	selected *Target
}

func NewService(fetcher languageFetcher, logger *zap.Logger) *Service {
	return &Service{fetcher: fetcher, logger: logger}
}

// Refresh rebuilds the target list. On any error the previously held
// list and selection stay untouched, so a flaky backend never blanks an
// already populated picker.
func (s *Service) Refresh(ctx context.Context) error {
	raw, err := s.fetcher.FetchLanguages(ctx)
	if err != nil {
		return fmt.Errorf("fetch languages: %w", err)
	}

	targets := make([]Target, 0, len(raw))
	for _, lang := range raw {
		targets = append(targets, normalizeTarget(lang))
	}

	collator := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(targets, func(i, j int) bool {
		return collator.CompareString(targets[i].DisplayName, targets[j].DisplayName) < 0
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = targets

	// Re-resolve the selection against the fresh list; a vanished target
	// drops the selection rather than pointing at a stale entry.
	if s.selected != nil {
		previous := s.selected.ID
		s.selected = nil
		for i := range s.targets {
			if s.targets[i].ID == previous {
				s.selected = &s.targets[i]
				break
			}
		}
	}

	s.logger.Debug("catalog refreshed", zap.Int("targets", len(targets)))
	return nil
}

// Targets returns a copy of the current list.
func (s *Service) Targets() []Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Target, len(s.targets))
	copy(out, s.targets)
	return out
}

// Select marks the target with the given id as active. Ids below zero
// never match, so unparseable catalog entries cannot become the default.
func (s *Service) Select(id int) (Target, bool) {
	if id < 0 {
		return Target{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.targets {
		if s.targets[i].ID == id {
			s.selected = &s.targets[i]
			return s.targets[i], true
		}
	}
	return Target{}, false
}

func (s *Service) Selected() (Target, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return Target{}, false
	}
	return *s.selected, true
}

func normalizeTarget(lang judge.RawLanguage) Target {
	name := lang.Name
	if name == "" {
		name = "Unknown"
	}
	if lang.Version != "" {
		name = name + " (" + lang.Version + ")"
	}
	return Target{
		ID:          lang.ID,
		DisplayName: name,
		SyntaxMode:  inferMode(name),
	}
}
