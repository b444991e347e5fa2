package shell

import "strings"

// Operators recognised by the shell. They only count when they appear as
// standalone tokens.
const (
	OpRedirectIn  = "<"
	OpRedirectOut = ">"
	OpPipe        = "|"
)

// Tokenize splits a line on runs of whitespace. A token can never contain
// whitespace. Blank input yields no tokens.
func Tokenize(line string) []string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// IsRedirect reports whether tok is a redirection operator.
func IsRedirect(tok string) bool {
	return tok == OpRedirectIn || tok == OpRedirectOut
}

// ArgsBeforeRedirect returns the leading tokens up to, but not including, the
// first redirection operator.
func ArgsBeforeRedirect(tokens []string) []string {
	for i, tok := range tokens {
		if IsRedirect(tok) {
			return tokens[:i]
		}
	}
	return tokens
}
