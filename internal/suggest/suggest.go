// Package suggest points at code shapes that usually hide a better
// algorithm or data structure. Findings are advisory only.
package suggest

import (
	"fmt"
	"go/token"
	"regexp"
	"strings"

	tt "github.com/gnolang/cfix/internal/types"
)

// rule names
const (
	LinearSearch  = "linear-search"
	QuadraticSort = "quadratic-sort"
	NestedLoops   = "nested-loops"
	Recursion     = "recursion"
)

var (
	literal   = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`)
	forHeader = regexp.MustCompile(`\bfor\s*\(`)

	// sizeBound matches a loop condition bounded by a length or size.
	sizeBound = regexp.MustCompile(`<=?\s*[^;]*(?:\.length|\bsize|\blen|\bcount|\bn\b)`)
	equality  = regexp.MustCompile(`\bif\s*\(.*==.*\)`)
	swapping  = regexp.MustCompile(`\bswap\w*\s*\(|\btemp\b|\btmp\b`)

	funcDefinition = regexp.MustCompile(`^[A-Za-z_][\w\s\*]*?\b([A-Za-z_]\w*)\s*\([^;]*\)\s*\{?$`)
	controlWords   = map[string]bool{"if": true, "for": true, "while": true, "switch": true, "return": true, "else": true}
)

// loop is a `for` statement and the line range of its body.
type loop struct {
	header int // index of the `for` line
	end    int // index of the last body line
	depth  int // number of enclosing loops
}

type source struct {
	lines  []string // code with literals and line comments removed
	before []int    // brace depth before each line
}

func newSource(code string) source {
	raw := strings.Split(strings.TrimSuffix(code, "\n"), "\n")
	src := source{
		lines:  make([]string, len(raw)),
		before: make([]int, len(raw)+1),
	}
	depth := 0
	for i, line := range raw {
		line = literal.ReplaceAllString(line, `""`)
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		src.lines[i] = strings.TrimSpace(line)
		src.before[i] = depth
		depth += strings.Count(line, "{") - strings.Count(line, "}")
	}
	src.before[len(raw)] = depth
	return src
}

// blockEnd returns the index of the line closing the block opened at
// line open, or the last line when the block never closes.
func (s source) blockEnd(open int) int {
	inside := s.before[open] + 1
	for j := open; j < len(s.lines); j++ {
		if s.before[j+1] < inside {
			return j
		}
	}
	return len(s.lines) - 1
}

func (s source) nextCode(i int) int {
	for j := i + 1; j < len(s.lines); j++ {
		if s.lines[j] != "" {
			return j
		}
	}
	return -1
}

// bodyEnd returns the last line of the statement or block that starts
// right after the header at line i.
func (s source) bodyEnd(i int) int {
	if strings.HasSuffix(s.lines[i], "{") {
		return s.blockEnd(i)
	}
	if strings.HasSuffix(s.lines[i], ";") {
		return i
	}
	next := s.nextCode(i)
	switch {
	case next < 0:
		return i
	case strings.HasPrefix(s.lines[next], "{"):
		return s.blockEnd(next)
	case forHeader.MatchString(s.lines[next]):
		return s.bodyEnd(next)
	}
	return next
}

func (s source) loops() []loop {
	var loops []loop
	for i, line := range s.lines {
		if !forHeader.MatchString(line) {
			continue
		}
		l := loop{header: i, end: s.bodyEnd(i)}
		for _, outer := range loops {
			if outer.header < i && i <= outer.end {
				l.depth++
			}
		}
		loops = append(loops, l)
	}
	return loops
}

func (s source) contains(from, to int, re *regexp.Regexp) bool {
	for i := from; i <= to && i < len(s.lines); i++ {
		if re.MatchString(s.lines[i]) {
			return true
		}
	}
	return false
}

// Analyze returns complexity suggestions for code in source order.
func Analyze(filename, code string) []tt.Issue {
	if strings.TrimSpace(code) == "" {
		return nil
	}
	src := newSource(code)
	var issues []tt.Issue

	loops := src.loops()
	for i, l := range loops {
		if l.depth == 0 && sizeBound.MatchString(src.lines[l.header]) && src.contains(l.header+1, l.end, equality) {
			issues = append(issues, newIssue(filename, LinearSearch, l.header,
				"detected possible linear search; if the data is sorted, consider binary search for O(log n) lookups"))
		}

		if l.depth != 0 || !hasInnerLoop(loops[i+1:], l) {
			continue
		}
		if src.contains(l.header, l.end, swapping) {
			issues = append(issues, newIssue(filename, QuadraticSort, l.header,
				"nested loops with swapping detected; consider merge sort or quicksort for faster sorting"))
			continue
		}
		issues = append(issues, newIssue(filename, NestedLoops, l.header,
			"nested loops detected; consider hashing or a better data structure to reduce complexity"))
	}

	for i, line := range src.lines {
		if src.before[i] != 0 {
			continue
		}
		m := funcDefinition.FindStringSubmatch(line)
		if m == nil || controlWords[m[1]] {
			continue
		}
		open := i
		if !strings.HasSuffix(line, "{") {
			open = src.nextCode(i)
			if open < 0 || !strings.HasPrefix(src.lines[open], "{") {
				continue
			}
		}
		call := regexp.MustCompile(`\b` + regexp.QuoteMeta(m[1]) + `\s*\(`)
		if src.contains(open+1, src.blockEnd(open), call) {
			issues = append(issues, newIssue(filename, Recursion, i,
				fmt.Sprintf("recursion detected in function '%s'; if performance is an issue, consider an iterative approach", m[1])))
		}
	}

	return issues
}

func hasInnerLoop(later []loop, outer loop) bool {
	for _, l := range later {
		if l.header > outer.end {
			return false
		}
		if l.depth > outer.depth {
			return true
		}
	}
	return false
}

func newIssue(filename, rule string, index int, msg string) tt.Issue {
	pos := token.Position{Filename: filename, Line: index + 1, Column: 1}
	return tt.Issue{
		Rule:     rule,
		Kind:     tt.KindSuggestion,
		Severity: tt.SeverityInfo,
		Filename: filename,
		Message:  msg,
		Start:    pos,
		End:      pos,
	}
}
