package rules

import (
	"testing"

	tt "github.com/gnolang/cfix/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDeclaration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "call after initializer",
			text: `    int a = 1 printf("x");`,
			want: []string{"    int a = 1;", `    printf("x");`},
		},
		{
			name: "string initializer with spaces",
			text: `	char *s = "a b" puts(s);`,
			want: []string{`	char *s = "a b";`, "	puts(s);"},
		},
		{
			name: "return after static declaration",
			text: "static int count = 0 return count;",
			want: []string{"static int count = 0;", "return count;"},
		},
		{
			name: "assignment after bare declaration",
			text: "  int a  a = 5",
			want: []string{"  int a;", "  a = 5"},
		},
		{
			name: "increment",
			text: "unsigned long n = 0 n++;",
			want: []string{"unsigned long n = 0;", "n++;"},
		},
		{name: "plain declaration", text: "    int a = b"},
		{name: "bare declaration", text: "    int x"},
		{name: "two declarators", text: "int a, b"},
		{name: "remainder is not a statement", text: "    int a b"},
		{name: "not a declaration", text: "    x = 1 y = 2"},
		{name: "already terminated", text: "int a = 1; printf(\"x\");"},
		{name: "function header", text: "int main(int argc, char **argv)"},
		{name: "identifier inside literal", text: `char *s = "x puts(s)"`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			outcome := SplitDeclaration(Line{Number: 1, Text: tc.text}, tt.ModeFix)
			if tc.want == nil {
				assert.Equal(t, Outcome{}, outcome)
				return
			}
			assert.True(t, outcome.Done)
			assert.Equal(t, tc.want, outcome.Lines)
			require.Len(t, outcome.Issues, 1)
			assert.Equal(t, tt.KindCombinedStatement, outcome.Issues[0].Kind)
		})
	}
}

func TestSplitDeclarationCheckMode(t *testing.T) {
	t.Parallel()
	text := `    int a = 1 printf("x");`
	outcome := SplitDeclaration(Line{Number: 4, Text: text}, tt.ModeCheck)

	assert.True(t, outcome.Done)
	assert.Equal(t, []string{text}, outcome.Lines)
	require.Len(t, outcome.Issues, 1)
	assert.Equal(t, tt.SeverityWarning, outcome.Issues[0].Severity)
	assert.Equal(t,
		`possible missing semicolon at line 4 between declaration and statement: 'int a = 1' | 'printf("x");...'`,
		outcome.Issues[0].Message)
}

func TestSplitDeclarationMessage(t *testing.T) {
	t.Parallel()
	outcome := SplitDeclaration(
		Line{Number: 2, Text: `int total = 0 printf("a fairly long format string %d\n", total);`}, tt.ModeFix)
	require.Len(t, outcome.Issues, 1)
	assert.Equal(t,
		`split combined declaration+statement at line 2: 'int total = 0' | 'printf("a fairly long format string %d\n...'`,
		outcome.Issues[0].Message)
}

func TestSplitDeclarationInList(t *testing.T) {
	t.Parallel()
	outcome := SplitDeclaration(Line{Number: 1, Text: "int a = 1 f(a)", InList: true}, tt.ModeFix)
	assert.Equal(t, Outcome{}, outcome)
}
