package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		code     string
		wantRule []string
		wantLine []int
	}{
		{
			name: "empty",
			code: "",
		},
		{
			name: "linear search",
			code: `int find(int *a, int n, int key) {
    for (int i = 0; i < n; i++) {
        if (a[i] == key) {
            return i;
        }
    }
    return -1;
}
`,
			wantRule: []string{LinearSearch},
			wantLine: []int{2},
		},
		{
			name: "bubble sort",
			code: `void sort(int *a, int n) {
    for (int i = 0; i < n - 1; i++) {
        for (int j = 0; j < n - i - 1; j++) {
            if (a[j] > a[j + 1]) {
                int temp = a[j];
                a[j] = a[j + 1];
                a[j + 1] = temp;
            }
        }
    }
}
`,
			wantRule: []string{QuadraticSort},
			wantLine: []int{2},
		},
		{
			name: "nested loops without braces",
			code: `int count_pairs(int *a, int n) {
    int c = 0;
    for (int i = 0; i < n; i++)
        for (int j = i + 1; j < n; j++)
            c += a[i] + a[j] > 0;
    return c;
}
`,
			wantRule: []string{NestedLoops},
			wantLine: []int{3},
		},
		{
			name: "recursion",
			code: `int fact(int n)
{
    if (n <= 1) {
        return 1;
    }
    return n * fact(n - 1);
}
`,
			wantRule: []string{Recursion},
			wantLine: []int{1},
		},
		{
			name: "loops inside literals are ignored",
			code: `int main() {
    printf("for (i = 0; i < n; i++) for (;;)");
    return 0;
}
`,
		},
		{
			name: "sequential loops are not nested",
			code: `void twice(int n) {
    for (int i = 0; i < 3; i++) {
        step(i);
    }
    for (int j = 0; j < 3; j++) {
        step(j);
    }
}
`,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			issues := Analyze("prog.c", tc.code)
			require.Len(t, issues, len(tc.wantRule))
			for i, issue := range issues {
				assert.Equal(t, tc.wantRule[i], issue.Rule)
				assert.Equal(t, tc.wantLine[i], issue.Start.Line)
				assert.Equal(t, "prog.c", issue.Filename)
			}
		})
	}
}

func TestAnalyzeRecursionMessage(t *testing.T) {
	t.Parallel()
	issues := Analyze("f.c", "int fib(int n) {\n    return n < 2 ? n : fib(n - 1) + fib(n - 2);\n}\n")
	require.Len(t, issues, 1)
	assert.Equal(t, "recursion detected in function 'fib'; if performance is an issue, consider an iterative approach", issues[0].Message)
}
