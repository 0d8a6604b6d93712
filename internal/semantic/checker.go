// Package semantic runs declare-before-use and unused-variable checks over
// C sources that already parse.
//
// Sources are parsed with modernc.org/cc/v4. Included headers are not read:
// the typedef names of common standard headers are declared instead. Names
// are resolved per block scope. Anything that does not parse is reported as
// a *ParseError so the caller can suggest repairing the file first.
package semantic

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	tt "github.com/gnolang/cfix/internal/types"
	"modernc.org/cc/v4"
)

// rule names
const (
	UseBeforeDeclaration = "use-before-declaration"
	UnusedVariable       = "unused-variable"
)

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("parse failed")

// ParseError reports the first syntax error found in a source.
type ParseError struct {
	Filename string
	Line     int
	Msg      string
}

func (e *ParseError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.Filename, e.Line, e.Msg)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Checker analyses a syntactically valid C source.
type Checker interface {
	Check(ctx context.Context, filename string, src []byte) ([]tt.Issue, error)
}

// LexicalChecker is the built-in Checker.
type LexicalChecker struct {
	abi *cc.ABI
}

func New() *LexicalChecker {
	c := &LexicalChecker{}
	// parsing works without an ABI
	if abi, err := cc.NewABI(runtime.GOOS, runtime.GOARCH); err == nil {
		c.abi = abi
	}
	return c
}

const (
	preludeName = "<prelude>"
	stdinName   = "<stdin>"
)

// Check parses src and returns the findings in source order: uses before
// declaration first, then unused variables. Parameters and extern
// declarations are never reported as unused.
func (c *LexicalChecker) Check(ctx context.Context, filename string, src []byte) ([]tt.Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := filename
	if name == "" {
		name = stdinName
	}
	text, headers := preprocess(string(src))
	ast, err := cc.Parse(&cc.Config{ABI: c.abi}, []cc.Source{
		{Name: preludeName, Value: prelude(headers)},
		{Name: name, Value: text},
	})
	if err != nil {
		return nil, newParseError(filename, err)
	}

	w := newScopeWalker(name)
	for tu := ast.TranslationUnit; tu != nil; tu = tu.TranslationUnit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w.walk(tu.ExternalDeclaration)
	}

	var issues []tt.Issue
	reported := make(map[string]bool)
	for _, u := range w.unresolved {
		if reported[u.name] {
			continue
		}
		sym := w.laterDeclaration(u)
		if sym == nil {
			continue
		}
		sym.uses++
		reported[u.name] = true
		issues = append(issues, newIssue(filename, UseBeforeDeclaration, tt.SeverityWarning, u.line,
			fmt.Sprintf("variable '%s' used before declaration (use line %d, decl line %d)", u.name, u.line, sym.line)))
	}

	for _, sym := range w.symbols {
		if sym.uses > 0 || sym.param || sym.extern {
			continue
		}
		issues = append(issues, newIssue(filename, UnusedVariable, tt.SeverityInfo, sym.line,
			fmt.Sprintf("declared variable '%s' at line %d seems unused", sym.name, sym.line)))
	}

	return issues, nil
}

// errorPosition matches the position prefix of a parser diagnostic:
// `file:line:column: message`.
var errorPosition = regexp.MustCompile(`^(.*?):(\d+)(?::\d+)?: (.*)$`)

// newParseError keeps the first diagnostic of a failed parse.
func newParseError(filename string, err error) *ParseError {
	first, _, _ := strings.Cut(err.Error(), "\n")
	perr := &ParseError{Filename: filename, Msg: first}
	if m := errorPosition.FindStringSubmatch(first); m != nil {
		perr.Line, _ = strconv.Atoi(m[2])
		perr.Msg = m[3]
	}
	return perr
}

func newIssue(filename, rule string, severity tt.Severity, line int, msg string) tt.Issue {
	pos := token.Position{Filename: filename, Line: line, Column: 1}
	return tt.Issue{
		Rule:     rule,
		Kind:     tt.KindSemantic,
		Severity: severity,
		Filename: filename,
		Message:  msg,
		Start:    pos,
		End:      pos,
	}
}
