package docsections

import (
	"fmt"
	"strings"
)

// placeholder stands in for a section the doc text does not define
const placeholder = "..."

// epilogSections are rendered after the option help, in this order
var epilogSections = []struct {
	key   string
	title string
}{
	{Examples, "EXAMPLES"},
	{Author, "AUTHOR"},
	{ReportingBugs, "REPORTING BUGS"},
	{Copyright, "COPYRIGHT"},
	{SeeAlso, "SEE ALSO"},
}

// ManPage is the rendered help text split around the generated parts.
// The usage line goes between Prolog and Midlog, the option help between
// Midlog and Epilog.
type ManPage struct {
	Prolog string // NAME and the SYNOPSIS heading
	Midlog string // reuse hint and DESCRIPTION
	Epilog string // EXAMPLES through SEE ALSO
}

// Render lays out the man page for the command called name
func Render(name string, sections Sections) ManPage {
	var prolog strings.Builder
	short := placeholder
	if body, ok := sections.Get(Name); ok && body != "" {
		short = strings.Join(strings.Fields(body), " ")
	}
	fmt.Fprintf(&prolog, "NAME\n\t%s - %s\n\nSYNOPSIS\n", name, short)

	var midlog strings.Builder
	fmt.Fprintf(&midlog, "\t       %s %%\n\t\t# Reuse the previously used arguments.\n", name)
	midlog.WriteString("\nDESCRIPTION\n")
	midlog.WriteString(section(sections, Description))

	var epilog strings.Builder
	for i, s := range epilogSections {
		if i > 0 {
			epilog.WriteString("\n")
		}
		epilog.WriteString(s.title + "\n")
		epilog.WriteString(section(sections, s.key))
	}

	return ManPage{
		Prolog: prolog.String(),
		Midlog: midlog.String(),
		Epilog: epilog.String(),
	}
}

// Format assembles the full page around the usage line and option help
func (m ManPage) Format(usage, help string) string {
	var b strings.Builder
	b.WriteString(m.Prolog)
	b.WriteString(Indent(strings.TrimRight(usage, "\n"), "\t"))
	b.WriteString("\n")
	b.WriteString(m.Midlog)
	b.WriteString("\n")
	if help = strings.TrimRight(help, "\n"); help != "" {
		b.WriteString(Indent(help, "\t"))
		b.WriteString("\n\n")
	}
	b.WriteString(m.Epilog)
	return b.String()
}

func section(sections Sections, key string) string {
	body, ok := sections.Get(key)
	if !ok || body == "" {
		body = placeholder
	}
	return Indent(body, "\t") + "\n"
}
