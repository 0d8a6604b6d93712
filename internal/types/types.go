package types

import (
	"fmt"
	"go/token"
	"strings"
)

// Issue represents a single diagnostic produced while repairing a C source file.
//
// The human-readable description lives in Message; the remaining fields are
// only used for rendering and filtering.
type Issue struct {
	Rule     string         `json:"rule"`
	Kind     Kind           `json:"kind"`
	Severity Severity       `json:"severity"`
	Filename string         `json:"filename"`
	Message  string         `json:"message"`
	Start    token.Position `json:"start"`
	End      token.Position `json:"end"`
}

// String returns the human-readable description of the issue.
func (i Issue) String() string {
	return i.Message
}

// Kind classifies an issue according to the repair error taxonomy.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindStructuralImbalance is a brace count mismatch over the whole text.
	KindStructuralImbalance
	// KindAmbiguousLiteral is a line with an unmatched quote character.
	KindAmbiguousLiteral
	// KindCombinedStatement is a declaration glued to a following statement.
	KindCombinedStatement
	// KindMissingSeparator is a missing comma between I/O call arguments.
	KindMissingSeparator
	// KindMissingTerminator is a statement without a trailing semicolon.
	KindMissingTerminator
	// KindDownstreamParseFailure is reported when the semantic checker cannot
	// parse the repaired text.
	KindDownstreamParseFailure
	// KindSemantic covers declare-before-use and unused variable findings.
	KindSemantic
	// KindSuggestion is an advisory note about algorithmic complexity.
	KindSuggestion
)

func (k Kind) String() string {
	switch k {
	case KindStructuralImbalance:
		return "structural-imbalance"
	case KindAmbiguousLiteral:
		return "ambiguous-literal"
	case KindCombinedStatement:
		return "combined-statement"
	case KindMissingSeparator:
		return "missing-separator"
	case KindMissingTerminator:
		return "missing-terminator"
	case KindDownstreamParseFailure:
		return "downstream-parse-failure"
	case KindSemantic:
		return "semantic"
	case KindSuggestion:
		return "suggestion"
	}
	return "unknown"
}

// MarshalText lets issues carry a readable kind in JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for c := KindUnknown; c <= KindSuggestion; c++ {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown issue kind %q", text)
}

// Severity represents how serious an issue is.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	}
	return "UNKNOWN"
}

// ParseSeverity converts the textual form used in configuration files.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return SeverityError, nil
	case "WARNING":
		return SeverityWarning, nil
	case "INFO":
		return SeverityInfo, nil
	case "OFF":
		return SeverityOff, nil
	}
	return SeverityOff, fmt.Errorf("unknown severity %q", s)
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML and UnmarshalYAML keep severities readable in .cfix.yaml.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	return s.UnmarshalText([]byte(raw))
}

// ConfigRule is the per-rule section of the configuration file.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}

// Mode selects whether the pipeline only reports or also repairs.
type Mode uint8

const (
	// ModeCheck reports issues and returns the text unchanged.
	ModeCheck Mode = iota
	// ModeFix reports issues and applies the repairs.
	ModeFix
)

func (m Mode) String() string {
	if m == ModeFix {
		return "fix"
	}
	return "check"
}

// IsFix reports whether edits should be applied.
func (m Mode) IsFix() bool {
	return m == ModeFix
}
