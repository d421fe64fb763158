// Package complete derives ranked completion candidates from a static
// per-mode keyword table plus a live scan of the buffer. Suggestions are
// best-effort: a failure here must never take the editing session down.
package complete

import (
	"fmt"
	"regexp"
	"strings"
)

type SourceKind int

const (
	SourceKeyword SourceKind = iota
	SourceBufferWord
)

type Candidate struct {
	Text string
	Kind SourceKind
}

// Identifier characters: letters, digits, underscore, and currency
// symbols (so "$var"-style names survive tokenization).
var wordPattern = regexp.MustCompile(`[\p{L}\p{Nd}_\p{Sc}]+`)

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Complete recomputes the candidate list from scratch on every call.
// Keyword matches come first in table order, then buffer tokens in order
// of first occurrence; a buffer token identical to an offered keyword is
// dropped. An empty prefix yields no candidates.
func (e *Engine) Complete(buffer, modeID, prefix string) (candidates []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			candidates = nil
			err = fmt.Errorf("completion failed: %v", r)
		}
	}()

	if prefix == "" {
		return nil, nil
	}

	lowerPrefix := strings.ToLower(prefix)
	seen := make(map[string]struct{})

	for _, keyword := range keywordsFor(modeID) {
		if strings.HasPrefix(strings.ToLower(keyword), lowerPrefix) {
			if _, dup := seen[keyword]; dup {
				continue
			}
			seen[keyword] = struct{}{}
			candidates = append(candidates, Candidate{Text: keyword, Kind: SourceKeyword})
		}
	}

	for _, token := range wordPattern.FindAllString(buffer, -1) {
		if len(token) < len(prefix) {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(token), lowerPrefix) {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		candidates = append(candidates, Candidate{Text: token, Kind: SourceBufferWord})
	}

	return candidates, nil
}
