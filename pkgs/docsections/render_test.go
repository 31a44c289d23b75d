package docsections

import (
	"strings"
	"testing"
)

func TestRender_FilledSections(t *testing.T) {
	page := Render("greet", Sections{
		Name:        "Greet people",
		Description: "Prints one line per name.",
		Author:      "Jane Doe",
	})

	if want := "NAME\n\tgreet - Greet people\n\nSYNOPSIS\n"; page.Prolog != want {
		t.Errorf("Prolog = %q, want %q", page.Prolog, want)
	}
	if !strings.Contains(page.Midlog, "greet %") {
		t.Errorf("Midlog should show the reuse form, got %q", page.Midlog)
	}
	if !strings.Contains(page.Midlog, "DESCRIPTION\n\tPrints one line per name.\n") {
		t.Errorf("Midlog missing description, got %q", page.Midlog)
	}
	if !strings.Contains(page.Epilog, "AUTHOR\n\tJane Doe\n") {
		t.Errorf("Epilog missing author, got %q", page.Epilog)
	}
}

func TestRender_MissingSectionsUsePlaceholder(t *testing.T) {
	page := Render("greet", Sections{})

	if !strings.Contains(page.Prolog, "greet - ...") {
		t.Errorf("Prolog should use placeholder, got %q", page.Prolog)
	}
	for _, title := range []string{"EXAMPLES", "AUTHOR", "REPORTING BUGS", "COPYRIGHT", "SEE ALSO"} {
		if !strings.Contains(page.Epilog, title+"\n\t...\n") {
			t.Errorf("Epilog missing placeholder for %s:\n%s", title, page.Epilog)
		}
	}
}

func TestManPage_FormatOrder(t *testing.T) {
	page := Render("greet", Sections{Name: "Greet people"})
	out := page.Format("greet [--foo FOO] [names ...]\n", "  --foo FOO   the foo\n")

	usage := strings.Index(out, "\tgreet [--foo FOO]")
	desc := strings.Index(out, "DESCRIPTION")
	help := strings.Index(out, "\t  --foo FOO")
	examples := strings.Index(out, "EXAMPLES")

	if !(usage > 0 && usage < desc && desc < help && help < examples) {
		t.Errorf("sections out of order (usage=%d desc=%d help=%d examples=%d):\n%s", usage, desc, help, examples, out)
	}
}
