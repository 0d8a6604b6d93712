package internal

import (
	"github.com/gnolang/cfix/internal/rules"
	tt "github.com/gnolang/cfix/internal/types"
)

/*
* Implement each repair rule as a separate struct
 */

// TextRule is a repair rule that sees the whole text at once.
type TextRule interface {
	// Apply runs the rule over text and returns the new text and its issues.
	Apply(text string, mode tt.Mode) (string, []tt.Issue)

	// Name returns the name of the rule.
	Name() string

	// Severity and SetSeverity control how detected issues are reported.
	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

// LineRule is a repair rule applied to one line at a time.
type LineRule interface {
	// Apply decides what happens to line.
	Apply(line rules.Line, mode tt.Mode) rules.Outcome

	Name() string
	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

type severityHolder struct {
	severity tt.Severity
}

func (s *severityHolder) Severity() tt.Severity {
	return s.severity
}

func (s *severityHolder) SetSeverity(severity tt.Severity) {
	s.severity = severity
}

type BraceBalanceRule struct {
	severityHolder
}

func NewBraceBalanceRule() TextRule {
	return &BraceBalanceRule{severityHolder{tt.SeverityError}}
}

func (r *BraceBalanceRule) Apply(text string, mode tt.Mode) (string, []tt.Issue) {
	return rules.BalanceBraces(text, mode)
}

func (r *BraceBalanceRule) Name() string {
	return rules.BraceBalance
}

// QuoteGuardRule cannot be disabled: it is what keeps the other rules away
// from string and char literals.
type QuoteGuardRule struct {
	severityHolder
}

func NewQuoteGuardRule() LineRule {
	return &QuoteGuardRule{severityHolder{tt.SeverityWarning}}
}

func (r *QuoteGuardRule) Apply(line rules.Line, _ tt.Mode) rules.Outcome {
	return rules.GuardQuotes(line)
}

func (r *QuoteGuardRule) Name() string {
	return rules.QuoteGuard
}

type DeclarationSplitRule struct {
	severityHolder
}

func NewDeclarationSplitRule() LineRule {
	return &DeclarationSplitRule{severityHolder{tt.SeverityError}}
}

func (r *DeclarationSplitRule) Apply(line rules.Line, mode tt.Mode) rules.Outcome {
	return rules.SplitDeclaration(line, mode)
}

func (r *DeclarationSplitRule) Name() string {
	return rules.DeclarationSplit
}

type ArgumentCommaRule struct {
	severityHolder
}

func NewArgumentCommaRule() LineRule {
	return &ArgumentCommaRule{severityHolder{tt.SeverityWarning}}
}

func (r *ArgumentCommaRule) Apply(line rules.Line, mode tt.Mode) rules.Outcome {
	return rules.FixArgumentCommas(line, mode)
}

func (r *ArgumentCommaRule) Name() string {
	return rules.ArgumentComma
}

type SemicolonRule struct {
	severityHolder
}

func NewSemicolonRule() LineRule {
	return &SemicolonRule{severityHolder{tt.SeverityWarning}}
}

func (r *SemicolonRule) Apply(line rules.Line, mode tt.Mode) rules.Outcome {
	return rules.InsertSemicolon(line, mode)
}

func (r *SemicolonRule) Name() string {
	return rules.Semicolon
}
