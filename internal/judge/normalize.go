package judge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// The backend and the proxy in front of it do not agree on field names,
// and half the fields are optional. All "first of several spellings"
// resolution lives here so the state machine never touches raw JSON.

// parseHandle classifies a submit response body. A token is probed under
// both the flat and the nested spelling; without one, an object body is
// taken as an immediate result and anything else is surfaced verbatim.
func parseHandle(body []byte) SubmissionHandle {
	if !gjson.ValidBytes(body) {
		return SubmissionHandle{Raw: string(body)}
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return SubmissionHandle{Raw: string(body)}
	}

	for _, path := range []string{"token", "result.token"} {
		if token := parsed.Get(path); token.Type == gjson.String && token.String() != "" {
			return SubmissionHandle{Token: token.String()}
		}
	}

	if embedded := parsed.Get("result"); embedded.IsObject() {
		result := resultFromJSON(embedded)
		return SubmissionHandle{Result: &result}
	}

	result := resultFromJSON(parsed)
	return SubmissionHandle{Result: &result}
}

func parseResult(body []byte) (RawResult, error) {
	if !gjson.ValidBytes(body) {
		return RawResult{}, fmt.Errorf("malformed result payload: %q", truncate(string(body), 200))
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return RawResult{}, fmt.Errorf("result payload is not an object: %q", truncate(string(body), 200))
	}
	return resultFromJSON(parsed), nil
}

func resultFromJSON(v gjson.Result) RawResult {
	result := RawResult{
		Stdout:        v.Get("stdout").String(),
		Stderr:        v.Get("stderr").String(),
		CompileOutput: v.Get("compile_output").String(),
	}

	if desc := v.Get("status.description"); desc.Type == gjson.String {
		result.StatusDescription = desc.String()
	} else if desc := v.Get("status_description"); desc.Type == gjson.String {
		result.StatusDescription = desc.String()
	}

	if id, ok := intField(v, "status_id", "status.id"); ok {
		result.StatusID = &id
	}
	if done := v.Get("done"); done.IsBool() {
		b := done.Bool()
		result.Done = &b
	}

	return result
}

func parseLanguages(body []byte) ([]RawLanguage, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("malformed languages payload")
	}

	parsed := gjson.ParseBytes(body)
	list := parsed
	if !parsed.IsArray() {
		list = parsed.Get("languages")
		if !list.IsArray() {
			return nil, fmt.Errorf("languages payload is not a list")
		}
	}

	var languages []RawLanguage
	list.ForEach(func(_, entry gjson.Result) bool {
		languages = append(languages, languageFromJSON(entry))
		return true
	})
	return languages, nil
}

func languageFromJSON(v gjson.Result) RawLanguage {
	lang := RawLanguage{ID: -1}

	if id, ok := intField(v, "id", "language_id", "languageId"); ok && id >= 0 {
		lang.ID = id
	}

	if name := v.Get("name"); name.Type == gjson.String && name.String() != "" {
		lang.Name = name.String()
	} else if name := v.Get("language"); name.Type == gjson.String {
		lang.Name = name.String()
	}

	if version := v.Get("version"); version.Type == gjson.String {
		lang.Version = version.String()
	}

	return lang
}

// intField resolves the first of the given paths holding an integral
// number, tolerating numeric strings.
func intField(v gjson.Result, paths ...string) (int, bool) {
	for _, path := range paths {
		field := v.Get(path)
		switch field.Type {
		case gjson.Number:
			if f := field.Float(); f == float64(int(f)) {
				return int(f), true
			}
		case gjson.String:
			if n, err := strconv.Atoi(strings.TrimSpace(field.String())); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
