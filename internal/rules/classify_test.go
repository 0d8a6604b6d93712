package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	lines := []struct {
		text   string
		class  LineClass
		inList bool
	}{
		{"#include <stdio.h>", ClassDirective, false},
		{"#define TWICE(x) \\", ClassDirective, false},
		{"    ((x) * 2)", ClassDirective, false},
		{"/* header", ClassBlockCommentOpen, false},
		{"   still a comment */", ClassBlockComment, false},
		{"/* one line */", ClassBlockCommentOpen, false},
		{"// note", ClassLineComment, false},
		{"", ClassBlank, false},
		{"enum color { RED,", ClassUnchanged, false},
		{"    GREEN", ClassUnchanged, true},
		{"};", ClassBlockClose, true},
		{"int table[] = {", ClassBlockOpen, false},
		{"    1, 2", ClassUnchanged, true},
		{"};", ClassBlockClose, true},
		{"int main() {", ClassBlockOpen, false},
		{"    int a", ClassUnchanged, false},
		{"    if (a) { a = 1 }", ClassBlockClose, false},
		{"    int x = 1; /* starts", ClassUnchanged, false},
		{"       ends */", ClassBlockComment, false},
		{"    puts(\"{\")", ClassUnchanged, false},
		{"}", ClassBlockClose, false},
		{"enum mode", ClassUnchanged, false},
		{"{", ClassBlockOpen, false},
		{"    FAST", ClassUnchanged, true},
		{"}", ClassBlockClose, true},
		{"void set_mode(enum mode m) {", ClassBlockOpen, false},
		{"    m = next(m)", ClassUnchanged, false},
		{"}", ClassBlockClose, false},
		{"enum color pick(int x)", ClassUnchanged, false},
		{"{", ClassBlockOpen, false},
		{"    x = 1", ClassUnchanged, false},
		{"}", ClassBlockClose, false},
		{"static enum color shade(void) {", ClassBlockOpen, false},
		{"}", ClassBlockClose, false},
		{"typedef enum {", ClassBlockOpen, false},
		{"    OFF", ClassUnchanged, true},
		{"} state;", ClassBlockClose, true},
	}

	var ctx Context
	for i, line := range lines {
		assert.Equal(t, line.inList, ctx.InList(), "line %d: %q", i+1, line.text)
		class, next := ctx.Classify(line.text)
		assert.Equal(t, line.class, class, "line %d: %q", i+1, line.text)
		ctx = next
	}
	assert.False(t, ctx.InList())
}

func TestLineClassStructural(t *testing.T) {
	t.Parallel()
	structural := []LineClass{
		ClassBlank, ClassDirective, ClassLineComment, ClassBlockCommentOpen,
		ClassBlockComment, ClassBlockOpen, ClassBlockClose,
	}
	for _, c := range structural {
		assert.True(t, c.Structural(), c.String())
	}
	for _, c := range []LineClass{ClassUnchanged, ClassQuoteUnsafe, ClassDeclarationPlusRest, ClassStatementCandidate} {
		assert.False(t, c.Structural(), c.String())
	}
	assert.Equal(t, "block-close", ClassBlockClose.String())
	assert.Equal(t, "unknown", LineClass(200).String())
}
