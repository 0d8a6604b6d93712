package semantic

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var includeDirective = regexp.MustCompile(`^\s*#\s*include\s*[<"]([^>"]+)[>"]`)

// preprocess blanks every #include directive so line numbers stay aligned
// with the source and returns the headers it named. Other directives are
// left to the C preprocessor.
func preprocess(src string) (string, []string) {
	lines := strings.Split(src, "\n")
	var headers []string
	for i, line := range lines {
		if m := includeDirective.FindStringSubmatch(line); m != nil {
			headers = append(headers, m[1])
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n"), headers
}

// prelude is parsed ahead of every source. It stands in for the included
// headers by declaring their typedef names.
func prelude(headers []string) string {
	names := typedefsFor(headers)
	names["bool"] = true
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	var b strings.Builder
	b.WriteString("int __predefined_declarator;\n")
	for _, name := range sorted {
		fmt.Fprintf(&b, "typedef int %s;\n", name)
	}
	return b.String()
}
