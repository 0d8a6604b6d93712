package rules

import (
	"fmt"
	"regexp"
	"strings"

	tt "github.com/gnolang/cfix/internal/types"
)

var (
	controlHeader = regexp.MustCompile(`^(?:(?:if|for|while|switch)\s*\(|(?:else|do)\b)`)

	// functionHeader matches `int main()` or `static void f(int a)`: type
	// words, a name and a parameter list with nothing after it.
	functionHeader = regexp.MustCompile(`^(?:[A-Za-z_][A-Za-z0-9_]*[\s*]+)+[A-Za-z_][A-Za-z0-9_]*\s*\([^=]*\)$`)

	// continuedExpression matches code that obviously goes on at the next line.
	continuedExpression = regexp.MustCompile(`(?:[,(\\:?+\-*/%&|^<>=!~.]|->)$`)
)

// InsertSemicolon appends a missing `;` to a statement-like line.
//
// A line is a candidate when its code part contains `(` or `=`, or is a bare
// declaration such as `int a`, and does not already end with `;`. Control
// headers, function headers, lines continued at the next line and entries of
// enum or initializer lists are never terminated.
func InsertSemicolon(line Line, mode tt.Mode) Outcome {
	if line.InList {
		return Outcome{}
	}
	stripped := line.Stripped()
	code, _ := splitTrailingComment(stripped)
	if !isStatementCandidate(code) {
		return Outcome{}
	}

	issues := []tt.Issue{
		newIssue(Semicolon, tt.KindMissingTerminator, tt.SeverityWarning, line.Number,
			fmt.Sprintf("possible missing semicolon at line %d: %s", line.Number, stripped)),
	}
	if !mode.IsFix() {
		return Outcome{Issues: issues}
	}

	issues = append(issues, newIssue(Semicolon, tt.KindMissingTerminator, tt.SeverityInfo, line.Number,
		fmt.Sprintf("auto-inserted ';' at line %d", line.Number)))
	return Outcome{
		Lines:  []string{terminate(line.Text)},
		Issues: issues,
		Done:   true,
	}
}

func isStatementCandidate(code string) bool {
	if code == "" || strings.HasSuffix(code, ";") {
		return false
	}
	masked := maskLiterals(code)
	if !strings.ContainsAny(masked, "(=") && !isBareDeclaration(masked) {
		return false
	}
	if controlHeader.MatchString(masked) {
		return false
	}
	if functionHeader.MatchString(masked) && !strings.HasPrefix(masked, "return ") {
		return false
	}
	if continuedExpression.MatchString(masked) && !strings.HasSuffix(masked, "++") && !strings.HasSuffix(masked, "--") {
		return false
	}
	if parens, brackets := parenBalance(masked); parens != 0 || brackets != 0 {
		return false
	}
	return true
}

// terminate appends `;` to the code part of text, in front of any trailing
// comment, and keeps the indentation.
func terminate(text string) string {
	indent := leadingIndent(text)
	code, comment := splitTrailingComment(strings.TrimSpace(text))
	return indent + code + ";" + comment
}
