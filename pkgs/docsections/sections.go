package docsections

import (
	"regexp"
	"strings"
)

// Well-known section names, in man page order
const (
	Name          = "NAME"
	Description   = "DESCRIPTION"
	Examples      = "EXAMPLES"
	Author        = "AUTHOR"
	ReportingBugs = "REPORTING_BUGS"
	Copyright     = "COPYRIGHT"
	SeeAlso       = "SEE_ALSO"
)

// sectionPattern matches "#SECTION {{{body}}}"; at least one space or
// newline separates the name from the braces, the body may span lines and
// ends at the first closing "}}}".
var sectionPattern = regexp.MustCompile(`(?s)#([A-Z][A-Z0-9_]*)\s+\{\{\{(.*?)\}\}\}`)

// Sections maps a section name to its dedented body
type Sections map[string]string

// Extract scans doc text for section markers. Later duplicates of a
// section are ignored.
func Extract(doc string) Sections {
	sections := make(Sections)
	for _, m := range sectionPattern.FindAllStringSubmatch(doc, -1) {
		name, body := m[1], m[2]
		if _, seen := sections[name]; seen {
			continue
		}
		sections[name] = cleanBody(body)
	}
	return sections
}

// Get returns a section body and whether it was present
func (s Sections) Get(name string) (string, bool) {
	body, ok := s[name]
	return body, ok
}

// cleanBody drops the blank lines around a body and removes the common
// indentation of the rest.
func cleanBody(body string) string {
	lines := strings.Split(body, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return Dedent(strings.Join(lines, "\n"))
}

// Dedent removes the whitespace prefix common to every non-blank line.
// Blank lines are emptied.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")

	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix = indent
			first = false
			continue
		}
		prefix = commonPrefix(prefix, indent)
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}

// Indent prefixes every non-blank line
func Indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
