package rules

import (
	"fmt"
	"strings"

	tt "github.com/gnolang/cfix/internal/types"
)

// BalanceBraces compares the number of `{` and `}` in text. The count is
// purely lexical: braces inside literals and comments are counted too.
//
// An excess of opening braces is repaired in fix mode by appending one `}`
// line per missing brace. An excess of closing braces is only reported.
func BalanceBraces(text string, mode tt.Mode) (string, []tt.Issue) {
	open := strings.Count(text, "{")
	closed := strings.Count(text, "}")
	if open == closed {
		return text, nil
	}

	lastLine := strings.Count(text, "\n") + 1
	if strings.HasSuffix(text, "\n") {
		lastLine--
	}

	issues := []tt.Issue{
		newIssue(BraceBalance, tt.KindStructuralImbalance, tt.SeverityError, lastLine,
			fmt.Sprintf("brace mismatch: { %d vs } %d", open, closed)),
	}
	if !mode.IsFix() || open < closed {
		return text, issues
	}

	missing := open - closed
	var b strings.Builder
	b.WriteString(text)
	if text != "" && !strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}
	for i := 0; i < missing; i++ {
		b.WriteString("}\n")
	}

	noun := "braces"
	if missing == 1 {
		noun = "brace"
	}
	issues = append(issues, newIssue(BraceBalance, tt.KindStructuralImbalance, tt.SeverityInfo, lastLine+1,
		fmt.Sprintf("auto-inserted %d closing %s at EOF", missing, noun)))

	return b.String(), issues
}
