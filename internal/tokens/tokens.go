// Package tokens holds the closed set of token-class names a NameLeaf may
// resolve to, and the fixed table mapping punctuation spellings to numeric
// token type codes that a StringLeaf resolves against. Both tables are
// contract data shared between the generator and the runtime parser support
// library described in spec §4.5: the generator only needs to know which
// names and spellings exist and what numeric code each punctuation spelling
// carries, not how the runtime actually recognizes them at parse time.
package tokens

// classes is the closed set of identifiers that resolve to a token fetch
// primitive rather than a recursive rule invocation when they appear as a
// NameLeaf.
var classes = map[string]bool{
	"NAME":       true,
	"NUMBER":     true,
	"STRING":     true,
	"CUT":        true,
	"CURLY_STUFF": true,
	"NEWLINE":    true,
	"DEDENT":     true,
	"INDENT":     true,
	"ENDMARKER":  true,
	"ASYNC":      true,
	"AWAIT":      true,
}

// IsClass returns whether name is one of the known token classes.
func IsClass(name string) bool {
	return classes[name]
}

// punctuation is the fixed table mapping recognized punctuation spellings to
// their numeric token type code. The codes are assigned in declaration order
// starting at 1; what matters to the emitter is only that the mapping is
// stable across a generation pass, not that it match any particular external
// numbering scheme.
var punctuation = buildPunctuationTable([]string{
	"(", ")", "[", "]", "{", "}", ",", ":", ".", ";", "...",
	"+", "-", "*", "**", "/", "//", "%", "@", "&", "|", "^", "~",
	"<<", ">>",
	"<", ">", "<=", ">=", "==", "!=",
	"=", "+=", "-=", "*=", "/=", "//=", "%=", "@=", "&=", "|=", "^=",
	">>=", "<<=", "**=",
	"->", ":=",
})

func buildPunctuationTable(spellings []string) map[string]int {
	table := make(map[string]int, len(spellings))
	for i, spelling := range spellings {
		table[spelling] = i + 1
	}
	return table
}

// PunctuationCode returns the numeric token type code for spelling and
// whether it was recognized.
func PunctuationCode(spelling string) (int, bool) {
	code, ok := punctuation[spelling]
	return code, ok
}
