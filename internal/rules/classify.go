package rules

import (
	"regexp"
	"strings"
)

// LineClass is the classification of a physical line at one pipeline stage.
type LineClass uint8

const (
	ClassUnchanged LineClass = iota
	ClassBlank
	ClassDirective
	ClassLineComment
	ClassBlockCommentOpen
	ClassBlockComment
	ClassBlockOpen
	ClassBlockClose
	ClassQuoteUnsafe
	ClassDeclarationPlusRest
	ClassStatementCandidate
)

var lineClassNames = [...]string{
	ClassUnchanged:           "unchanged",
	ClassBlank:               "blank",
	ClassDirective:           "directive",
	ClassLineComment:         "line-comment",
	ClassBlockCommentOpen:    "block-comment-open",
	ClassBlockComment:        "block-comment",
	ClassBlockOpen:           "block-open",
	ClassBlockClose:          "block-close",
	ClassQuoteUnsafe:         "quote-unsafe",
	ClassDeclarationPlusRest: "declaration-plus-rest",
	ClassStatementCandidate:  "statement-candidate",
}

func (c LineClass) String() string {
	if int(c) < len(lineClassNames) {
		return lineClassNames[c]
	}
	return "unknown"
}

// Structural reports whether lines of this class are passed through
// without being offered to any repair rule.
func (c LineClass) Structural() bool {
	switch c {
	case ClassBlank, ClassDirective, ClassLineComment, ClassBlockCommentOpen,
		ClassBlockComment, ClassBlockOpen, ClassBlockClose:
		return true
	}
	return false
}

// Line is one physical line of the working text.
type Line struct {
	// Number is the 1-based line number in the text handed to the line pass.
	Number int
	Text   string
	// InList is set when the line sits inside an enum or initializer brace
	// list, where entries are separated by commas rather than terminated.
	InList bool
}

// Stripped returns the line without surrounding whitespace.
func (l Line) Stripped() string {
	return strings.TrimSpace(l.Text)
}

// Context is the lexical state threaded through the fold over the lines of
// one text. The zero value is the state at the top of a file.
type Context struct {
	inComment    bool
	continuation bool
	// braces records, for every open brace, whether it opened a list.
	braces   []bool
	lastCode string
}

// listOpener matches the code before a brace that opens a list: an enum head
// with at most a tag, or an initializer. A parameter list or a return type
// followed by a function name is never a list.
var listOpener = regexp.MustCompile(`(?:\benum\b(?:\s+[A-Za-z_]\w*)?|=)\s*$`)

// Classify derives the structural class of line under ctx and returns the
// context for the next line. Only structural classes are decided here;
// every other line comes back as ClassUnchanged.
func (ctx Context) Classify(text string) (LineClass, Context) {
	stripped := strings.TrimSpace(text)
	next := ctx

	switch {
	case ctx.inComment:
		if strings.Contains(stripped, "*/") {
			next.inComment = false
		}
		return ClassBlockComment, next
	case ctx.continuation:
		next.continuation = strings.HasSuffix(stripped, "\\")
		return ClassDirective, next
	case stripped == "":
		return ClassBlank, next
	case strings.HasPrefix(stripped, "#"):
		next.continuation = strings.HasSuffix(stripped, "\\")
		return ClassDirective, next
	case strings.HasPrefix(stripped, "//"):
		return ClassLineComment, next
	case strings.HasPrefix(stripped, "/*"):
		if !strings.Contains(stripped[2:], "*/") {
			next.inComment = true
		}
		return ClassBlockCommentOpen, next
	}

	code, comment := splitTrailingComment(stripped)
	next = next.trackBraces(code)
	if c := strings.TrimSpace(comment); strings.HasPrefix(c, "/*") && !strings.Contains(c[2:], "*/") {
		next.inComment = true
	}
	if strings.HasSuffix(code, "{") {
		return ClassBlockOpen, next
	}
	if strings.HasPrefix(code, "}") || strings.HasSuffix(code, "}") {
		return ClassBlockClose, next
	}
	if strings.HasSuffix(code, "\\") {
		next.continuation = true
	}
	return ClassUnchanged, next
}

// InList reports whether the innermost open brace opened an enum or
// initializer list.
func (ctx Context) InList() bool {
	return len(ctx.braces) > 0 && ctx.braces[len(ctx.braces)-1]
}

func (ctx Context) trackBraces(code string) Context {
	masked := maskLiterals(code)
	braces := append([]bool(nil), ctx.braces...)
	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '{':
			before := strings.TrimSpace(masked[:i])
			if before == "" {
				before = ctx.lastCode
			}
			braces = append(braces, listOpener.MatchString(before) || (len(braces) > 0 && braces[len(braces)-1]))
		case '}':
			if len(braces) > 0 {
				braces = braces[:len(braces)-1]
			}
		}
	}
	ctx.braces = braces
	if code != "" {
		ctx.lastCode = masked
	}
	return ctx
}

// hasOddQuotes reports whether s holds an odd number of `"` or `'`.
func hasOddQuotes(s string) bool {
	return strings.Count(s, `"`)%2 != 0 || strings.Count(s, "'")%2 != 0
}
