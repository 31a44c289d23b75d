package synth

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/aledsdavies/cliarg/pkgs/argspec"
)

// usageLine renders "usage: name [-h] --foo FOO [names ...]" with the
// arguments in declared order.
func usageLine(name string, specs []argspec.ArgumentSpec) string {
	parts := []string{"usage:", name, "[-h]"}
	for _, spec := range specs {
		if spec.Positional() {
			parts = append(parts, positionalUsage(spec))
			continue
		}
		parts = append(parts, optionUsage(spec))
	}
	return strings.Join(parts, " ")
}

func positionalUsage(spec argspec.ArgumentSpec) string {
	m := spec.MetavarOrDefault()
	switch spec.Nargs {
	case argspec.One:
		return m
	case argspec.Optional:
		return "[" + m + "]"
	case argspec.ZeroOrMore:
		return "[" + m + " ...]"
	case argspec.OneOrMore:
		return m + " [" + m + " ...]"
	default:
		return strings.TrimSpace(strings.Repeat(m+" ", spec.Nargs.Min()))
	}
}

func optionUsage(spec argspec.ArgumentSpec) string {
	flag := "--" + spec.LongFlag()
	if spec.LongFlag() == "" {
		flag = "-" + spec.ShortFlag()
	}

	var text string
	switch {
	case spec.IsFlagSwitch():
		text = flag
	case spec.Nargs == argspec.Optional:
		text = flag + " [" + spec.MetavarOrDefault() + "]"
	default:
		text = flag + " " + spec.MetavarOrDefault()
	}

	if !spec.Required {
		text = "[" + text + "]"
	}
	if spec.Nargs.Multi() {
		text += "..."
	}
	return text
}

// helpListing renders the positional and option listings. Positionals are
// listed by hand; options come from pflag in registration order.
func helpListing(specs []argspec.ArgumentSpec, flags *pflag.FlagSet) string {
	var b strings.Builder

	var positionals []argspec.ArgumentSpec
	width := 0
	for _, spec := range specs {
		if spec.Positional() {
			positionals = append(positionals, spec)
			width = max(width, len(spec.MetavarOrDefault()))
		}
	}

	if len(positionals) > 0 {
		b.WriteString("positional arguments:\n")
		for _, spec := range positionals {
			help := spec.Help
			if help == "" {
				fmt.Fprintf(&b, "  %s\n", spec.MetavarOrDefault())
				continue
			}
			fmt.Fprintf(&b, "  %-*s   %s\n", width, spec.MetavarOrDefault(), help)
		}
		b.WriteString("\n")
	}

	b.WriteString("options:\n")
	b.WriteString(flags.FlagUsages())
	return b.String()
}
