// Package reflow re-indents repaired C code.
package reflow

import (
	"regexp"
	"strings"
)

// DefaultIndent is one indentation level.
const DefaultIndent = "    "

var controlParen = regexp.MustCompile(`\b(if|for|while|switch)\(`)

// Options controls the reflow.
type Options struct {
	// Indent is the text of one indentation level. Empty means DefaultIndent.
	Indent string
}

// state is the accumulator threaded through the line fold.
type state struct {
	depth     int
	inComment bool
	lines     []string
	unit      string
}

// Format re-indents code by brace depth: a line starting with `}` is
// dedented before it is written and a line ending with `{` indents the
// lines after it. Control keywords get a space before their parenthesis.
// Blank lines stay blank and the result ends with a newline.
func Format(code string, opts Options) string {
	if code == "" {
		return ""
	}
	indent := opts.Indent
	if indent == "" {
		indent = DefaultIndent
	}

	st := state{unit: indent}
	for _, line := range strings.Split(strings.TrimSuffix(code, "\n"), "\n") {
		st = st.step(strings.TrimRight(line, "\r"))
	}
	return strings.Join(st.lines, "\n") + "\n"
}

func (s state) step(line string) state {
	stripped := strings.TrimSpace(line)

	switch {
	case stripped == "":
		s.lines = append(s.lines, "")
		return s
	case s.inComment:
		// comment bodies keep their own layout
		s.lines = append(s.lines, line)
		s.inComment = !strings.Contains(stripped, "*/")
		return s
	case strings.HasPrefix(stripped, "#"):
		s.lines = append(s.lines, stripped)
		return s
	}

	code := stripped
	if strings.HasPrefix(stripped, "/*") && !strings.Contains(stripped, "*/") {
		s.inComment = true
	} else if !strings.HasPrefix(stripped, "//") {
		code = controlParen.ReplaceAllString(stripped, "$1 (")
	}

	if strings.HasPrefix(code, "}") && s.depth > 0 {
		s.depth--
	}
	s.lines = append(s.lines, strings.Repeat(s.unit, s.depth)+code)
	if strings.HasSuffix(code, "{") {
		s.depth++
	}
	return s
}
