package synth

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/aledsdavies/cliarg/core/types"
	"github.com/aledsdavies/cliarg/pkgs/argspec"
)

// tokenValue is the pflag.Value behind every synthesized option. It only
// collects raw tokens; conversion happens during resolution so command-line,
// persisted and default tokens all go through the same path.
type tokenValue struct {
	spec   argspec.ArgumentSpec
	tokens []string
	set    bool
}

var _ pflag.Value = (*tokenValue)(nil)

func newTokenValue(spec argspec.ArgumentSpec) *tokenValue {
	return &tokenValue{spec: spec}
}

// Set records one occurrence. Multi-valued options accumulate across
// repeated occurrences; scalar options keep the last one.
func (v *tokenValue) Set(token string) error {
	if v.spec.Nargs.Multi() {
		v.tokens = append(v.tokens, token)
	} else {
		v.tokens = []string{token}
	}
	v.set = true
	return nil
}

// String renders the declared default for help output
func (v *tokenValue) String() string {
	if v.set {
		return strings.Join(v.tokens, " ")
	}
	switch d := v.spec.Default.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(d, " ")
	case time.Duration:
		return types.FormatDuration(d)
	default:
		return fmt.Sprint(d)
	}
}

// Type doubles as the placeholder pflag prints in the flag listing
func (v *tokenValue) Type() string {
	if v.spec.IsFlagSwitch() {
		return "bool"
	}
	return v.spec.MetavarOrDefault()
}

// optionFlags registers one flag per option spec on fs, in declared order,
// and returns the values keyed by Dest.
func optionFlags(fs *pflag.FlagSet, specs []argspec.ArgumentSpec) map[string]*tokenValue {
	fs.SortFlags = false
	values := make(map[string]*tokenValue)

	for _, spec := range specs {
		if spec.Positional() {
			continue
		}

		value := newTokenValue(spec)
		name := spec.LongFlag()
		if name == "" {
			// pflag needs a long name; short-only options also answer to --<dest>
			name = spec.Dest
		}

		flag := fs.VarPF(value, name, spec.ShortFlag(), flagUsage(spec))
		switch {
		case spec.IsFlagSwitch():
			flag.NoOptDefVal = "true"
		case spec.Const != "":
			flag.NoOptDefVal = spec.Const
		}

		values[spec.Dest] = value
	}

	return values
}

// flagUsage is the help text pflag prints next to the flag
func flagUsage(spec argspec.ArgumentSpec) string {
	usage := spec.Help
	var notes []string
	if spec.Required {
		notes = append(notes, "required")
	}
	if spec.Nargs.Multi() {
		notes = append(notes, "repeatable")
	}
	if len(spec.Schema.Enum) > 0 {
		notes = append(notes, "one of "+strings.Join(spec.Schema.Enum, ", "))
	}
	if len(notes) > 0 {
		if usage != "" {
			usage += " "
		}
		usage += "(" + strings.Join(notes, "; ") + ")"
	}
	return usage
}
