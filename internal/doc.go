// Package internal provides the core of a heuristic repair tool for C sources
// that do not compile because of small syntax slips.
//
// The engine does not parse C. It runs a fixed sequence of textual rules
// over a source file and records every decision as an issue:
//
// BraceBalanceRule: counts braces over the whole text and appends the
// missing closing braces at the end of the file.
//
// QuoteGuardRule: refuses to touch a line with an unmatched quote so that no
// later rule can corrupt a literal.
//
// DeclarationSplitRule: splits a declaration glued to a following statement
// into two lines.
//
// ArgumentCommaRule: inserts the missing comma between address-of arguments
// of scanf and printf calls.
//
// SemicolonRule: terminates statement lines that lack a semicolon.
//
// Engine: applies the brace rule once, then offers every non-structural line
// to the line rules in order. A rule may pass a rewritten line on to the
// next one or consume it. In check mode the text is returned unchanged.
//
// Cache: memoises results per file, mode and content hash.
//
// Watcher: re-runs the engine on C sources as they are saved.
//
// Usage:
//
//	engine, err := internal.NewEngine(internal.DefaultRules())
//	if err != nil {
//	    // handle error
//	}
//
//	result, err := engine.Run("path/to/file.c", types.ModeFix)
//	if err != nil {
//	    // handle error
//	}
//
//	for _, issue := range result.Issues {
//	    fmt.Printf("%s: %s\n", issue.Start, issue.Message)
//	}
//
// This package is intended for internal use within the repair tool and should not be
// imported by external packages.
package internal
