package rules

import (
	"fmt"
	"regexp"
	"strings"

	tt "github.com/gnolang/cfix/internal/types"
)

const restPreviewLen = 40

var (
	// typeKeywordPrefix matches the keywords that introduce a declaration.
	typeKeywordPrefix = regexp.MustCompile(`^(?:int|void|char|float|double|long|short|unsigned|signed|struct|const|static)\b`)

	// statementStart matches the start of an identifier-led statement:
	// a call, an assignment, an increment or a return.
	statementStart = regexp.MustCompile(
		`^(?:return\b|` +
			`[A-Za-z_][A-Za-z0-9_]*` + // identifier
			`(?:\s*(?:\.|->)\s*[A-Za-z_][A-Za-z0-9_]*|\s*\[[^\]]*\])*` + // member or index chain
			`\s*(?:\(|=(?:[^=]|$)|[-+*/%&|^]=|<<=|>>=|\+\+|--))`,
	)
)

// SplitDeclaration detects a declaration glued to a following statement on
// the same line, as in `int a = 1 printf("x");`, and splits it into
// `int a = 1;` and `printf("x");` keeping the original indentation.
//
// In check mode the line is reported and left unchanged. Either way a
// matching line is not offered to later rules.
func SplitDeclaration(line Line, mode tt.Mode) Outcome {
	if line.InList {
		return Outcome{}
	}
	stripped := line.Stripped()
	decl, rest, ok := findDeclarationSplit(stripped)
	if !ok {
		return Outcome{}
	}
	if !mode.IsFix() {
		return Outcome{
			Lines: []string{line.Text},
			Issues: []tt.Issue{
				newIssue(DeclarationSplit, tt.KindCombinedStatement, tt.SeverityWarning, line.Number,
					fmt.Sprintf("possible missing semicolon at line %d between declaration and statement: '%s' | '%s...'",
						line.Number, decl, truncate(rest, restPreviewLen))),
			},
			Done: true,
		}
	}

	indent := leadingIndent(line.Text)
	return Outcome{
		Lines: []string{indent + decl + ";", indent + rest},
		Issues: []tt.Issue{
			newIssue(DeclarationSplit, tt.KindCombinedStatement, tt.SeverityError, line.Number,
				fmt.Sprintf("split combined declaration+statement at line %d: '%s' | '%s...'",
					line.Number, decl, truncate(rest, restPreviewLen))),
		},
		Done: true,
	}
}

// findDeclarationSplit returns the declaration and statement parts of a
// stripped line. Split points are whitespace followed by an identifier
// outside literals, so the statement part never starts inside or at a
// string or char literal. The rightmost point that leaves a complete declaration
// on the left and a statement on the right wins.
func findDeclarationSplit(stripped string) (decl, rest string, ok bool) {
	if !typeKeywordPrefix.MatchString(stripped) {
		return "", "", false
	}
	masked := maskLiterals(stripped)

	for i := len(masked) - 1; i > 0; i-- {
		if !isIdentStart(masked[i]) || (masked[i-1] != ' ' && masked[i-1] != '\t') {
			continue
		}
		left := strings.TrimRight(masked[:i], " \t")
		if strings.ContainsAny(left, ";{") {
			continue
		}
		if !isCompleteDeclaration(left) {
			continue
		}
		if !statementStart.MatchString(masked[i:]) {
			continue
		}
		return strings.TrimRight(stripped[:i], " \t"), stripped[i:], true
	}
	return "", "", false
}

// isCompleteDeclaration reports whether the masked text can stand on its own
// as a declaration once terminated.
func isCompleteDeclaration(masked string) bool {
	if masked == "" || !hasDeclarator(masked) {
		return false
	}
	parens, brackets := parenBalance(masked)
	if parens != 0 || brackets != 0 {
		return false
	}
	last := masked[len(masked)-1]
	return isIdentChar(last) || last == ')' || last == ']' || last == '"' || last == '\''
}
