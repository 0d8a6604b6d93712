package rules

import (
	"go/token"

	tt "github.com/gnolang/cfix/internal/types"
)

// rule names
const (
	BraceBalance     = "brace-balance"
	QuoteGuard       = "quote-guard"
	DeclarationSplit = "declaration-split"
	ArgumentComma    = "argument-comma"
	Semicolon        = "semicolon"
)

// Outcome is the decision of a line rule for one line.
//
// When Done is set, Lines replaces the original line and no later rule sees
// it. Otherwise a single entry in Lines becomes the working text handed to
// the next rule; nil Lines means the rule left the line alone.
type Outcome struct {
	Lines  []string
	Issues []tt.Issue
	Done   bool
}

func newIssue(rule string, kind tt.Kind, severity tt.Severity, line int, msg string) tt.Issue {
	return tt.Issue{
		Rule:     rule,
		Kind:     kind,
		Severity: severity,
		Message:  msg,
		Start:    token.Position{Line: line, Column: 1},
		End:      token.Position{Line: line, Column: 1},
	}
}
