package editor

import (
	"sync"

	"github.com/nae2121/ISC-onlinejudge/internal/complete"
)

// Headless is a Surface with no rendering: a plain buffer plus recorded
// presentation state. It backs the CLI entrypoint and tests.
type Headless struct {
	mu        sync.Mutex
	value     string
	mode      string
	theme     string
	fontSize  int
	shortcuts map[string]func()
	completer Completer
}

func NewHeadless() *Headless {
	return &Headless{shortcuts: make(map[string]func())}
}

func (h *Headless) Value() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value
}

func (h *Headless) SetValue(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.value = text
}

func (h *Headless) SetMode(modeID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mode = modeID
}

func (h *Headless) Mode() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mode
}

func (h *Headless) SetTheme(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.theme = name
}

func (h *Headless) Theme() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.theme
}

func (h *Headless) SetFontSize(size int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fontSize = size
}

func (h *Headless) FontSize() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fontSize
}

func (h *Headless) RegisterShortcut(combo string, action func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shortcuts[combo] = action
}

// Trigger fires a registered shortcut; it reports whether one existed.
func (h *Headless) Trigger(combo string) bool {
	h.mu.Lock()
	action, ok := h.shortcuts[combo]
	h.mu.Unlock()
	if ok {
		action()
	}
	return ok
}

func (h *Headless) SetCompleter(c Completer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completer = c
}

// Suggest asks the attached completer for candidates at the given prefix.
func (h *Headless) Suggest(prefix string) ([]complete.Candidate, error) {
	h.mu.Lock()
	completer := h.completer
	buffer := h.value
	mode := h.mode
	h.mu.Unlock()
	if completer == nil {
		return nil, nil
	}
	return completer.Complete(buffer, mode, prefix)
}
