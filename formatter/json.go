package formatter

import (
	"encoding/json"

	tt "github.com/gnolang/cfix/internal/types"
)

// FormatJSON renders results as an object mapping each filename to its
// issues. Files without issues map to an empty list.
func FormatJSON(results []tt.FileResult) ([]byte, error) {
	byFile := make(map[string][]tt.Issue, len(results))
	for _, r := range results {
		issues := byFile[r.Filename]
		if issues == nil {
			issues = []tt.Issue{}
		}
		byFile[r.Filename] = append(issues, r.Issues...)
	}
	return json.MarshalIndent(byFile, "", "  ")
}
