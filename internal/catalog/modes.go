package catalog

import "strings"

// FallbackMode is used when no rule matches the display name.
const FallbackMode = "text"

type modeRule struct {
	substr string
	mode   string
}

// Ordered most-specific-first: "c++" must be tried before bare "c", and
// "javascript" before "java".
var modeRules = []modeRule{
	{"c++", "c_cpp"},
	{"cpp", "c_cpp"},
	{"c#", "csharp"},
	{"typescript", "typescript"},
	{"javascript", "javascript"},
	{"node", "javascript"},
	{"python", "python"},
	{"java", "java"},
	{"kotlin", "kotlin"},
	{"swift", "swift"},
	{"golang", "golang"},
	{"go ", "golang"},
	{"go (", "golang"},
	{"ruby", "ruby"},
	{"rust", "rust"},
	{"php", "php"},
	{"bash", "sh"},
	{"shell", "sh"},
	{"sql", "sql"},
	{"c ", "c_cpp"},
	{"c (", "c_cpp"},
}

// inferMode maps a display name to a syntax mode. First matching
// substring rule wins; matching is case-insensitive.
func inferMode(displayName string) string {
	name := strings.ToLower(strings.TrimSpace(displayName))
	// A bare language name has no trailing version text, so the
	// suffix-sensitive rules ("go ", "c ") get a padded copy to match.
	padded := name + " "
	for _, rule := range modeRules {
		if strings.Contains(padded, rule.substr) {
			return rule.mode
		}
	}
	return FallbackMode
}
