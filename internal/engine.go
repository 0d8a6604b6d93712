package internal

import (
	"fmt"
	"os"
	"strings"

	"github.com/gnolang/cfix/internal/rules"
	tt "github.com/gnolang/cfix/internal/types"
)

// Engine runs the repair pipeline.
//
// An Engine only holds configuration, so one value can repair any number
// of texts, including from several goroutines at once.
type Engine struct {
	ignoredRules map[string]bool
	textRules    []TextRule
	lineRules    []LineRule
	cache        *Cache
}

// NewEngine creates a new repair engine with the default rule set adjusted
// by the given per-rule configuration.
func NewEngine(rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{}
	engine.applyRules(rules)

	return engine, nil
}

type (
	textRuleConstructor func() TextRule
	lineRuleConstructor func() LineRule
)

// The pipeline order is fixed: text rules first, then line rules in
// the order listed here.
var (
	allTextRules = []textRuleConstructor{
		NewBraceBalanceRule,
	}
	allLineRules = []lineRuleConstructor{
		NewQuoteGuardRule,
		NewDeclarationSplitRule,
		NewArgumentCommaRule,
		NewSemicolonRule,
	}
)

// RuleNames lists every rule in pipeline order.
func RuleNames() []string {
	names := make([]string, 0, len(allTextRules)+len(allLineRules))
	for _, newRule := range allTextRules {
		names = append(names, newRule().Name())
	}
	for _, newRule := range allLineRules {
		names = append(names, newRule().Name())
	}
	return names
}

// DefaultRules returns every rule with its built-in severity.
func DefaultRules() map[string]tt.ConfigRule {
	config := make(map[string]tt.ConfigRule)
	for _, newRule := range allTextRules {
		r := newRule()
		config[r.Name()] = tt.ConfigRule{Severity: r.Severity()}
	}
	for _, newRule := range allLineRules {
		r := newRule()
		config[r.Name()] = tt.ConfigRule{Severity: r.Severity()}
	}
	return config
}

func (e *Engine) applyRules(config map[string]tt.ConfigRule) {
	e.textRules = e.textRules[:0]
	for _, newRule := range allTextRules {
		r := newRule()
		if c, ok := config[r.Name()]; ok {
			r.SetSeverity(c.Severity)
		}
		if r.Severity() == tt.SeverityOff {
			e.IgnoreRule(r.Name())
		}
		e.textRules = append(e.textRules, r)
	}

	e.lineRules = e.lineRules[:0]
	for _, newRule := range allLineRules {
		r := newRule()
		if c, ok := config[r.Name()]; ok {
			r.SetSeverity(c.Severity)
		}
		if r.Severity() == tt.SeverityOff {
			e.IgnoreRule(r.Name())
		}
		e.lineRules = append(e.lineRules, r)
	}
}

// IgnoreRule disables a rule by name. The quote guard cannot be disabled.
func (e *Engine) IgnoreRule(rule string) {
	if rule == rules.QuoteGuard {
		return
	}
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// UseCache makes Run memoise results in c.
func (e *Engine) UseCache(c *Cache) {
	e.cache = c
}

// Repair runs the pipeline over text.
//
// The text rules run once over the whole text. Then every line is
// classified and, unless it is structural, offered to the line rules in
// order until one of them is done with it.
//
// In check mode the returned text is the input unchanged. In fix mode it is
// the repaired lines joined by newlines, with a trailing newline. Carriage
// returns are dropped, except on lines held back by the quote guard.
func (e *Engine) Repair(text string, mode tt.Mode) tt.RepairResult {
	var log tt.IssueLog

	working := text
	for _, rule := range e.textRules {
		if e.ignoredRules[rule.Name()] {
			continue
		}
		var issues []tt.Issue
		working, issues = rule.Apply(working, mode)
		log.Append(stampSeverity(rule.Severity(), issues)...)
	}

	lines := splitLines(working)
	repaired := make([]string, 0, len(lines))
	var ctx rules.Context
	for i, raw := range lines {
		text := strings.TrimSuffix(raw, "\r")
		class, next := ctx.Classify(text)
		line := rules.Line{Number: i + 1, Text: text, InList: ctx.InList()}
		ctx = next

		if class.Structural() {
			repaired = append(repaired, text)
			continue
		}
		out, guarded := e.repairLine(line, mode, &log)
		if guarded {
			// a guarded line is emitted byte for byte, line ending included
			out = []string{raw}
		}
		repaired = append(repaired, out...)
	}

	if !mode.IsFix() {
		return tt.RepairResult{Text: text, Issues: log.Issues()}
	}
	return tt.RepairResult{Text: joinLines(repaired), Issues: log.Issues()}
}

// repairLine offers line to the line rules in order. guarded is set when the
// quote guard consumed the line.
func (e *Engine) repairLine(line rules.Line, mode tt.Mode, log *tt.IssueLog) (out []string, guarded bool) {
	for _, rule := range e.lineRules {
		if e.ignoredRules[rule.Name()] {
			continue
		}
		outcome := rule.Apply(line, mode)
		log.Append(stampSeverity(rule.Severity(), outcome.Issues)...)
		if outcome.Done {
			return outcome.Lines, rule.Name() == rules.QuoteGuard
		}
		if len(outcome.Lines) == 1 {
			line.Text = outcome.Lines[0]
		}
	}
	return []string{line.Text}, false
}

// stampSeverity applies the configured severity to detection issues. Issues
// recording an applied edit stay informational.
func stampSeverity(severity tt.Severity, issues []tt.Issue) []tt.Issue {
	for i := range issues {
		if issues[i].Severity != tt.SeverityInfo {
			issues[i].Severity = severity
		}
	}
	return issues
}

// Run repairs the file at filename.
func (e *Engine) Run(filename string, mode tt.Mode) (tt.FileResult, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return tt.FileResult{}, fmt.Errorf("error reading file: %w", err)
	}

	source := string(content)
	if e.cache != nil {
		if cached, ok := e.cache.Get(filename, source, mode); ok {
			return tt.FileResult{Filename: filename, Mode: mode, Source: source, RepairResult: cached}, nil
		}
	}

	result := e.Repair(source, mode)
	for i := range result.Issues {
		result.Issues[i].Filename = filename
		result.Issues[i].Start.Filename = filename
		result.Issues[i].End.Filename = filename
	}

	if e.cache != nil {
		if err := e.cache.Set(filename, source, mode, result); err != nil {
			return tt.FileResult{}, fmt.Errorf("error caching result: %w", err)
		}
	}

	return tt.FileResult{Filename: filename, Mode: mode, Source: source, RepairResult: result}, nil
}

// RunSource repairs an in-memory source.
func (e *Engine) RunSource(source []byte, mode tt.Mode) (tt.FileResult, error) {
	text := string(source)
	return tt.FileResult{Mode: mode, Source: text, RepairResult: e.Repair(text, mode)}, nil
}

// splitLines splits text on '\n'. Carriage returns stay on the lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(string(content)), nil
}

// NewSourceCode splits text into lines for rendering.
func NewSourceCode(text string) *SourceCode {
	return &SourceCode{Lines: strings.Split(text, "\n")}
}
