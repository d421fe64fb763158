// Package editor defines the narrow capability surface the playground
// consumes from the editor widget. The widget itself (rendering, cursor,
// undo) lives outside this module; components receive a Surface
// explicitly instead of reaching for a global instance.
package editor

import "github.com/nae2121/ISC-onlinejudge/internal/complete"

// Completer is the pluggable suggestion source the widget calls on
// keystrokes.
type Completer interface {
	Complete(buffer, modeID, prefix string) ([]complete.Candidate, error)
}

type Surface interface {
	Value() string
	SetValue(text string)
	SetMode(modeID string)
	SetTheme(name string)
	SetFontSize(size int)
	RegisterShortcut(combo string, action func())
	SetCompleter(c Completer)
}
