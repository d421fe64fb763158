package complete

// Keyword tables are keyed by syntax mode. Order within a table is the
// order candidates are offered in, so common keywords come first.
var keywordTables = map[string][]string{
	"python": {
		"print", "def", "return", "if", "elif", "else", "for", "while",
		"import", "from", "as", "class", "try", "except", "finally",
		"with", "lambda", "pass", "break", "continue", "raise", "yield",
		"global", "nonlocal", "assert", "del", "in", "is", "not", "and",
		"or", "True", "False", "None", "range", "len", "input", "open",
	},
	"c_cpp": {
		"printf", "scanf", "include", "int", "char", "float", "double",
		"void", "return", "if", "else", "for", "while", "do", "switch",
		"case", "default", "break", "continue", "struct", "typedef",
		"sizeof", "const", "static", "unsigned", "signed", "long",
		"short", "std", "cout", "cin", "endl", "namespace", "using",
		"class", "public", "private", "protected", "template", "new",
		"delete", "nullptr", "vector", "string",
	},
	"golang": {
		"func", "package", "import", "return", "if", "else", "for",
		"range", "switch", "case", "default", "break", "continue", "go",
		"chan", "select", "defer", "var", "const", "type", "struct",
		"interface", "map", "make", "new", "len", "cap", "append",
		"nil", "true", "false", "error", "string", "int", "fmt",
	},
	"java": {
		"public", "private", "protected", "static", "void", "class",
		"interface", "extends", "implements", "return", "if", "else",
		"for", "while", "do", "switch", "case", "default", "break",
		"continue", "new", "this", "super", "try", "catch", "finally",
		"throw", "throws", "import", "package", "final", "abstract",
		"String", "System", "println", "int", "boolean", "null",
	},
	"javascript": {
		"function", "return", "if", "else", "for", "while", "do",
		"switch", "case", "default", "break", "continue", "var", "let",
		"const", "new", "this", "typeof", "instanceof", "try", "catch",
		"finally", "throw", "class", "extends", "async", "await",
		"console", "log", "null", "undefined", "true", "false",
	},
}

// genericKeywords backs modes without a dedicated table.
var genericKeywords = []string{
	"if", "else", "for", "while", "return", "function", "class",
	"import", "true", "false", "null",
}

func keywordsFor(modeID string) []string {
	if table, ok := keywordTables[modeID]; ok {
		return table
	}
	return genericKeywords
}
