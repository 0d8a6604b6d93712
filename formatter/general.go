package formatter

type GeneralIssueFormatter struct{}

func (f *GeneralIssueFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{note .Note .Padding -}}
`
}

// ParseFailureFormatter renders a file the semantic checker could not parse.
// The snippet is omitted because line numbers refer to the repaired text.
type ParseFailureFormatter struct{}

func (f *ParseFailureFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{message .Message .Padding -}}
`
}

// SuggestionFormatter renders advisory complexity notes.
type SuggestionFormatter struct{}

func (f *SuggestionFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{message .Message .Padding -}}
`
}
