package rules

import (
	"fmt"
	"regexp"
	"strings"

	tt "github.com/gnolang/cfix/internal/types"
)

// addressArg matches an address-of argument such as `&a` or `& count`.
var addressArg = regexp.MustCompile(`&\s*[A-Za-z_][A-Za-z0-9_]*`)

// FixArgumentCommas repairs scanf/printf calls whose address-of arguments
// are missing a separating comma: `&a & b` becomes `&a, & b`.
//
// Only lines mentioning scanf or printf are considered. In check mode the
// line is reported but not edited. The rewritten line stays available to
// later rules.
func FixArgumentCommas(line Line, mode tt.Mode) Outcome {
	if !strings.Contains(line.Text, "scanf") && !strings.Contains(line.Text, "printf") {
		return Outcome{}
	}

	fixed := insertArgumentCommas(line.Text)
	if fixed == line.Text {
		return Outcome{}
	}

	before := strings.TrimSpace(line.Text)
	if !mode.IsFix() {
		return Outcome{
			Issues: []tt.Issue{
				newIssue(ArgumentComma, tt.KindMissingSeparator, tt.SeverityWarning, line.Number,
					fmt.Sprintf("possible missing comma in args at line %d: %s", line.Number, before)),
			},
		}
	}

	return Outcome{
		Lines: []string{fixed},
		Issues: []tt.Issue{
			newIssue(ArgumentComma, tt.KindMissingSeparator, tt.SeverityWarning, line.Number,
				fmt.Sprintf("fixed missing comma in args at line %d: %s -> %s", line.Number, before, strings.TrimSpace(fixed))),
		},
	}
}

// insertArgumentCommas replaces the whitespace between an address-of
// argument and a following single `&` with `, `. Matches inside literals and
// `&&` operators are left alone.
func insertArgumentCommas(text string) string {
	masked := maskLiterals(text)
	matches := addressArg.FindAllStringIndex(masked, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		// the `&` must not be the second half of `&&`
		if start > 0 && masked[start-1] == '&' {
			continue
		}
		next := end
		for next < len(masked) && (masked[next] == ' ' || masked[next] == '\t') {
			next++
		}
		if next >= len(masked) || masked[next] != '&' {
			continue
		}
		if next+1 < len(masked) && masked[next+1] == '&' {
			continue
		}
		b.WriteString(text[last:end])
		b.WriteString(", ")
		last = next
	}
	b.WriteString(text[last:])
	return b.String()
}
