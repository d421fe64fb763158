package judge

// EmptyOutputPlaceholder is shown when an execution produced no output at
// all, so the user always gets visible feedback.
const EmptyOutputPlaceholder = "[no output]"

// Decode composes the final display text from a raw result. Pure and
// total: any combination of absent fields yields a string, never an error.
//
// Order: compile output first, then stdout, double newline between them
// when both are present; stderr last behind a "stderr:" label line.
func Decode(result RawResult) string {
	out := result.Stdout

	if result.CompileOutput != "" {
		if out != "" {
			out = result.CompileOutput + "\n\n" + out
		} else {
			out = result.CompileOutput
		}
	}

	if result.Stderr != "" {
		if out != "" {
			out += "\n\n"
		}
		out += "stderr:\n" + result.Stderr
	}

	if out == "" {
		return EmptyOutputPlaceholder
	}
	return out
}
