package rules

import (
	"testing"

	tt "github.com/gnolang/cfix/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixArgumentCommas(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "two arguments",
			text: `    scanf("%d %d", &a & b);`,
			want: `    scanf("%d %d", &a, & b);`,
		},
		{
			name: "three arguments",
			text: `scanf("%d%d%d", &a &b &c);`,
			want: `scanf("%d%d%d", &a, &b, &c);`,
		},
		{
			name: "printf",
			text: `printf("%p %p", &x &y)`,
			want: `printf("%p %p", &x, &y)`,
		},
		{name: "already separated", text: `scanf("%d %d", &a, &b);`},
		{name: "logical and", text: `printf("%d", a && b);`},
		{name: "ampersands in format", text: `printf("&x &y");`},
		{name: "not an io call", text: "x = &a & b;"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			outcome := FixArgumentCommas(Line{Number: 5, Text: tc.text}, tt.ModeFix)
			if tc.want == "" {
				assert.Equal(t, Outcome{}, outcome)
				return
			}
			assert.False(t, outcome.Done)
			assert.Equal(t, []string{tc.want}, outcome.Lines)
			require.Len(t, outcome.Issues, 1)
			assert.Equal(t, tt.KindMissingSeparator, outcome.Issues[0].Kind)
			assert.Equal(t, 5, outcome.Issues[0].Start.Line)
		})
	}
}

func TestFixArgumentCommasMessages(t *testing.T) {
	t.Parallel()
	line := Line{Number: 2, Text: `    scanf("%d %d", &a & b);`}

	fixed := FixArgumentCommas(line, tt.ModeFix)
	require.Len(t, fixed.Issues, 1)
	assert.Equal(t,
		`fixed missing comma in args at line 2: scanf("%d %d", &a & b); -> scanf("%d %d", &a, & b);`,
		fixed.Issues[0].Message)

	checked := FixArgumentCommas(line, tt.ModeCheck)
	assert.Nil(t, checked.Lines)
	assert.False(t, checked.Done)
	require.Len(t, checked.Issues, 1)
	assert.Equal(t, `possible missing comma in args at line 2: scanf("%d %d", &a & b);`, checked.Issues[0].Message)
}
