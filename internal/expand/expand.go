// Package expand rewrites $VAR and ${VAR} references in configuration
// strings. Expansion is a single left-to-right pass: substituted values are
// never rescanned, so a variable whose value contains another reference
// cannot loop.
package expand

import (
	"os"
	"strings"
)

// Lookup resolves a variable name. The boolean reports whether the variable
// is defined; a defined-but-empty value is still a hit.
type Lookup func(name string) (string, bool)

// Env returns a Lookup backed by the process environment.
func Env() Lookup {
	return os.LookupEnv
}

// Map returns a Lookup backed by a fixed map, mainly for tests.
func Map(vars map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

// Expand replaces $NAME and ${NAME} tokens in s with values from lookup.
//
// $NAME takes the longest run of letters, digits, and underscores after the
// dollar sign, and must start with a letter or underscore; a dollar sign
// followed by anything else ("price: $5") is a literal. ${NAME} takes
// everything up to the closing brace. Tokens whose variable is undefined are
// left verbatim in the output and the variable name is appended to missing,
// so a render can finish best-effort and report what was unresolved. An
// empty ${} or an unterminated ${ is not a token and passes through as-is.
func Expand(s string, lookup Lookup) (out string, missing []string) {
	if !strings.ContainsRune(s, '$') {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))

	i := 0
	for i < len(s) {
		c := s[i]
		if c != '$' || i+1 >= len(s) {
			b.WriteByte(c)
			i++
			continue
		}

		if s[i+1] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				// No closing brace; the rest is literal.
				b.WriteString(s[i:])
				break
			}
			name := s[i+2 : i+2+end]
			token := s[i : i+3+end]
			switch {
			case name == "":
				b.WriteString(token)
			default:
				if v, ok := lookup(name); ok {
					b.WriteString(v)
				} else {
					b.WriteString(token)
					missing = append(missing, name)
				}
			}
			i += 3 + end
			continue
		}

		if !isIdentStart(s[i+1]) {
			b.WriteByte(c)
			i++
			continue
		}

		j := i + 1
		for j < len(s) && isIdentChar(s[j]) {
			j++
		}
		name := s[i+1 : j]
		if v, ok := lookup(name); ok {
			b.WriteString(v)
		} else {
			b.WriteString(s[i:j])
			missing = append(missing, name)
		}
		i = j
	}

	return b.String(), missing
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
