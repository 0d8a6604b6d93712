package types

// IssueLog is an ordered, append-only record of issues produced during one
// pipeline run.
type IssueLog struct {
	issues []Issue
}

// Append records issues in the order they were discovered.
func (l *IssueLog) Append(issues ...Issue) {
	l.issues = append(l.issues, issues...)
}

// Len returns the number of recorded issues.
func (l *IssueLog) Len() int {
	return len(l.issues)
}

// Issues returns a copy of the recorded issues.
func (l *IssueLog) Issues() []Issue {
	out := make([]Issue, len(l.issues))
	copy(out, l.issues)
	return out
}

// Messages returns the description of every issue, in order.
func (l *IssueLog) Messages() []string {
	out := make([]string, 0, len(l.issues))
	for _, issue := range l.issues {
		out = append(out, issue.Message)
	}
	return out
}

// RepairResult pairs the repaired text with the issues of the run.
type RepairResult struct {
	Text   string  `json:"-"`
	Issues []Issue `json:"issues"`
}

// Changed reports whether the repaired text differs from the given input.
func (r RepairResult) Changed(input string) bool {
	return r.Text != input
}

// FileResult is the outcome of repairing one file.
type FileResult struct {
	Filename string `json:"filename"`
	Mode     Mode   `json:"-"`
	// Source is the text as read from disk.
	Source string `json:"-"`
	RepairResult
}
