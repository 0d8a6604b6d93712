package rules

import (
	"strings"
	"unicode"
)

// maskLiterals returns a copy of s where the contents of string and char
// literals are replaced by spaces. Quote characters are kept so that
// offsets into the result are valid offsets into s.
// An unterminated literal masks everything up to the end of the line.
func maskLiterals(s string) string {
	b := []byte(s)
	var quote byte
	for i := 0; i < len(b); i++ {
		c := b[i]
		if quote == 0 {
			if c == '"' || c == '\'' {
				quote = c
			}
			continue
		}
		switch c {
		case '\\':
			b[i] = ' '
			if i+1 < len(b) {
				i++
				b[i] = ' '
			}
		case quote:
			quote = 0
		default:
			b[i] = ' '
		}
	}
	return string(b)
}

// splitTrailingComment separates the code part of a stripped line from a
// trailing `//` or `/*` comment outside literals. The code part is returned
// with trailing whitespace removed; comment keeps its leading whitespace.
func splitTrailingComment(stripped string) (code, comment string) {
	masked := maskLiterals(stripped)
	idx := -1
	if i := strings.Index(masked, "//"); i >= 0 {
		idx = i
	}
	if i := strings.Index(masked, "/*"); i >= 0 && (idx < 0 || i < idx) {
		idx = i
	}
	if idx < 0 {
		return stripped, ""
	}
	code = strings.TrimRightFunc(stripped[:idx], unicode.IsSpace)
	return code, stripped[len(code):]
}

// leadingIndent returns the whitespace prefix of line.
func leadingIndent(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// scanIdent returns the identifier at the start of s, or "".
func scanIdent(s string) string {
	if s == "" || !isIdentStart(s[0]) {
		return ""
	}
	i := 1
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i]
}

// truncate returns at most n bytes of s.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// parenBalance returns the count of `(` minus `)` and `[` minus `]` in a
// masked string.
func parenBalance(masked string) (parens, brackets int) {
	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '(':
			parens++
		case ')':
			parens--
		case '[':
			brackets++
		case ']':
			brackets--
		}
	}
	return parens, brackets
}

// baseTypeKeywords are specifiers that complete a type on their own.
var baseTypeKeywords = map[string]bool{
	"int":      true,
	"void":     true,
	"char":     true,
	"float":    true,
	"double":   true,
	"long":     true,
	"short":    true,
	"unsigned": true,
	"signed":   true,
	"_Bool":    true,
	"bool":     true,
}

// qualifierKeywords never complete a type on their own.
var qualifierKeywords = map[string]bool{
	"const":    true,
	"static":   true,
	"extern":   true,
	"register": true,
	"volatile": true,
	"inline":   true,
	"auto":     true,
	"restrict": true,
}

var tagKeywords = map[string]bool{
	"struct": true,
	"union":  true,
	"enum":   true,
}

// skipSpecifiers consumes the declaration specifiers at the start of a
// masked, stripped line: keywords, a struct/union/enum tag, or a single
// typedef name when no base type was given. It returns the unconsumed
// remainder and whether a complete type was seen.
func skipSpecifiers(s string) (rest string, complete bool) {
	rest = s
	for {
		rest = strings.TrimLeft(rest, " \t")
		word := scanIdent(rest)
		switch {
		case word == "":
			return rest, complete
		case baseTypeKeywords[word]:
			complete = true
			rest = rest[len(word):]
		case qualifierKeywords[word]:
			rest = rest[len(word):]
		case tagKeywords[word]:
			rest = strings.TrimLeft(rest[len(word):], " \t")
			tag := scanIdent(rest)
			if tag == "" {
				return rest, false
			}
			rest = rest[len(tag):]
			complete = true
		case !complete:
			// typedef name such as size_t or FILE
			rest = rest[len(word):]
			complete = true
		default:
			return rest, complete
		}
	}
}

// hasDeclarator reports whether the masked text names a declarator after
// its declaration specifiers, as in `int a` or `static char *buf[4]`.
func hasDeclarator(masked string) bool {
	rest, complete := skipSpecifiers(masked)
	if !complete {
		return false
	}
	rest = strings.TrimLeft(rest, " \t*")
	return scanIdent(rest) != ""
}

// isBareDeclaration reports whether the masked code is a declaration list
// without initializers or terminator: `int a`, `char buf[8]`, `int *p, q`.
func isBareDeclaration(masked string) bool {
	if !typeKeywordPrefix.MatchString(masked) {
		return false
	}
	rest, complete := skipSpecifiers(masked)
	if !complete {
		return false
	}
	for {
		rest = strings.TrimLeft(rest, " \t*")
		name := scanIdent(rest)
		if name == "" {
			return false
		}
		rest = strings.TrimLeft(rest[len(name):], " \t")
		for strings.HasPrefix(rest, "[") {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return false
			}
			rest = strings.TrimLeft(rest[end+1:], " \t")
		}
		if rest == "" {
			return true
		}
		if rest[0] != ',' {
			return false
		}
		rest = rest[1:]
		if strings.TrimSpace(rest) == "" {
			return false
		}
	}
}
