package rules

import (
	"fmt"

	tt "github.com/gnolang/cfix/internal/types"
)

const quotePreviewLen = 60

// GuardQuotes refuses to touch a line holding an odd number of `"` or `'`.
// Such a line is passed through byte for byte in every mode.
func GuardQuotes(line Line) Outcome {
	stripped := line.Stripped()
	if !hasOddQuotes(stripped) {
		return Outcome{}
	}
	return Outcome{
		Lines: []string{line.Text},
		Issues: []tt.Issue{
			newIssue(QuoteGuard, tt.KindAmbiguousLiteral, tt.SeverityWarning, line.Number,
				fmt.Sprintf("skipping autofix for line %d due to unmatched quote: %s", line.Number, truncate(stripped, quotePreviewLen))),
		},
		Done: true,
	}
}
