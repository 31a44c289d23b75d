package argspec

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/aledsdavies/cliarg/core/types"
	clierrors "github.com/aledsdavies/cliarg/pkgs/errors"
)

// ArgBuilder provides a fluent API for declaring one CLI argument.
// Nothing is checked until Build, so setters may be called in any order.
type ArgBuilder struct {
	spec             ArgumentSpec
	requiredExplicit bool // Track if Required() was explicitly called
	hasDefault       bool // Track if Default() was called, even with nil
}

// Arg starts a declaration. Options take "--name" and/or "-n";
// positionals take a single bare name.
func Arg(flags ...string) *ArgBuilder {
	return &ArgBuilder{
		spec: ArgumentSpec{
			Flags: flags,
			Type:  types.TypeString,
			Nargs: One,
		},
	}
}

// Type sets the value type
func (ab *ArgBuilder) Type(t types.ParamType) *ArgBuilder {
	ab.spec.Type = t
	return ab
}

// Int declares an integer argument
func (ab *ArgBuilder) Int() *ArgBuilder { return ab.Type(types.TypeInt) }

// Float declares a floating point argument
func (ab *ArgBuilder) Float() *ArgBuilder { return ab.Type(types.TypeFloat) }

// Bool declares a boolean switch (options) or a true/false token (positionals)
func (ab *ArgBuilder) Bool() *ArgBuilder { return ab.Type(types.TypeBool) }

// Duration declares a compact duration argument ("1h30m")
func (ab *ArgBuilder) Duration() *ArgBuilder { return ab.Type(types.TypeDuration) }

// Convert sets a custom token converter, replacing the built-in one for the type
func (ab *ArgBuilder) Convert(c Converter) *ArgBuilder {
	ab.spec.Convert = c
	return ab
}

// Default sets the value used when neither the command line nor the
// persisted parameters provide one. String defaults are converted like
// command-line tokens.
func (ab *ArgBuilder) Default(value any) *ArgBuilder {
	ab.spec.Default = value
	ab.hasDefault = true
	return ab
}

// Const sets the token used when an Optional option is given without a value
func (ab *ArgBuilder) Const(token string) *ArgBuilder {
	ab.spec.Const = token
	return ab
}

// Required marks the argument as required
func (ab *ArgBuilder) Required() *ArgBuilder {
	ab.spec.Required = true
	ab.requiredExplicit = true
	return ab
}

// Nargs sets how many tokens the argument consumes
func (ab *ArgBuilder) Nargs(n Nargs) *ArgBuilder {
	ab.spec.Nargs = n
	return ab
}

// Help sets the help text
func (ab *ArgBuilder) Help(text string) *ArgBuilder {
	ab.spec.Help = text
	return ab
}

// Metavar sets the placeholder shown in usage text
func (ab *ArgBuilder) Metavar(name string) *ArgBuilder {
	ab.spec.Metavar = name
	return ab
}

// Choices restricts raw tokens to the given values
func (ab *ArgBuilder) Choices(values ...string) *ArgBuilder {
	ab.spec.Schema.Enum = values
	return ab
}

// Min sets the minimum value constraint (for numeric types)
func (ab *ArgBuilder) Min(minVal float64) *ArgBuilder {
	ab.spec.Schema.Minimum = &minVal
	return ab
}

// Max sets the maximum value constraint (for numeric types)
func (ab *ArgBuilder) Max(maxVal float64) *ArgBuilder {
	ab.spec.Schema.Maximum = &maxVal
	return ab
}

// MinItems sets the fewest values a multi-valued argument accepts
func (ab *ArgBuilder) MinItems(n int) *ArgBuilder {
	ab.spec.Schema.MinItems = &n
	return ab
}

// MaxItems sets the most values a multi-valued argument accepts
func (ab *ArgBuilder) MaxItems(n int) *ArgBuilder {
	ab.spec.Schema.MaxItems = &n
	return ab
}

// Pattern sets a regex pattern constraint (for strings)
func (ab *ArgBuilder) Pattern(regex string) *ArgBuilder {
	ab.spec.Schema.Pattern = &regex
	return ab
}

// Format sets a typed format constraint (for strings)
func (ab *ArgBuilder) Format(format types.Format) *ArgBuilder {
	ab.spec.Schema.Format = &format
	return ab
}

// Build validates the declaration and returns the immutable spec.
// Contradictory combinations are reported as configuration errors.
func (ab *ArgBuilder) Build() (ArgumentSpec, error) {
	if err := ab.validateFlags(); err != nil {
		return ArgumentSpec{}, err
	}

	spec := ab.spec.clone()
	spec.Dest = destFromFlags(spec.Flags)

	if err := ab.validate(spec); err != nil {
		return ArgumentSpec{}, err
	}

	// Positionals that must consume a token are implicitly required
	if spec.Positional() && spec.Nargs.Min() > 0 && !ab.hasDefault {
		spec.Required = true
	}

	// Boolean switches default to off
	if spec.IsFlagSwitch() && !ab.hasDefault {
		spec.Default = false
	}

	spec.Schema.Name = spec.Dest
	if spec.Convert == nil {
		spec.Schema.Type = spec.Type
	}
	spec.Schema.Description = spec.Help
	spec.Schema.Default = spec.Default
	if spec.Nargs.Multi() {
		spec.Schema.Array = true
	}

	return spec, nil
}

// validateFlags checks the flag strings themselves
func (ab *ArgBuilder) validateFlags() error {
	flags := ab.spec.Flags
	if len(flags) == 0 {
		return clierrors.New(clierrors.ErrConfiguration, "argument declaration needs at least one flag or name")
	}

	for _, f := range flags {
		if strings.TrimLeft(f, "-") == "" {
			return clierrors.NewConfigError(fmt.Sprintf("%q", f), "flag names must be non-empty")
		}
		if strings.ContainsAny(f, " \t=") {
			return clierrors.NewConfigError(f, "flag names cannot contain whitespace or '='")
		}
		if f == "--help" {
			return clierrors.NewConfigError(f, "--help is reserved for the generated man page")
		}
	}

	positional := !strings.HasPrefix(flags[0], "-")
	if positional {
		if len(flags) > 1 {
			return clierrors.NewConfigError(flags[0], "positional arguments take a single name, got %v", flags)
		}
		return nil
	}

	var long, short int
	for _, f := range flags {
		switch {
		case !strings.HasPrefix(f, "-"):
			return clierrors.NewConfigError(strings.Join(flags, "/"), "cannot mix option strings with positional name %q", f)
		case strings.HasPrefix(f, "---"):
			return clierrors.NewConfigError(f, "too many leading dashes")
		case strings.HasPrefix(f, "--"):
			long++
		default:
			if len(f) != 2 {
				return clierrors.NewConfigError(f, "short options are a single character, use --%s for a long option", strings.TrimPrefix(f, "-"))
			}
			short++
		}
	}
	if long > 1 || short > 1 {
		return clierrors.NewConfigError(strings.Join(flags, "/"), "at most one long and one short option string are supported")
	}

	return nil
}

// validate checks the combination of settings
func (ab *ArgBuilder) validate(spec ArgumentSpec) error {
	name := spec.DisplayName()

	if !types.IsValidType(spec.Type) {
		return clierrors.NewConfigError(name, "unknown type %q", spec.Type)
	}

	if !spec.Nargs.Valid() {
		return clierrors.NewConfigError(name, "invalid nargs %q (use \"\", \"?\", \"*\", \"+\" or a count >= 1)", string(spec.Nargs))
	}

	// Required + default can never both take effect
	if ab.requiredExplicit && ab.hasDefault {
		return clierrors.NewConfigError(name, "cannot be both required and have a default value")
	}

	if spec.Positional() && ab.requiredExplicit && spec.Nargs.Min() == 0 {
		return clierrors.NewConfigError(name, "a positional with nargs %q can never be required", string(spec.Nargs))
	}

	if spec.Type == types.TypeBool && !spec.Positional() && spec.Nargs != One {
		return clierrors.NewConfigError(name, "boolean switches do not take nargs")
	}

	if spec.Const != "" && (spec.Positional() || spec.Nargs != Optional) {
		return clierrors.NewConfigError(name, "const is only meaningful for options with nargs \"?\"")
	}

	if err := checkItemBounds(spec); err != nil {
		return err
	}

	if err := checkConstraintTypes(spec); err != nil {
		return err
	}

	if err := spec.Schema.Check(); err != nil {
		return clierrors.Wrap(clierrors.ErrConfiguration, fmt.Sprintf("argument %s", name), err).
			WithContext("argument", name)
	}

	if ab.hasDefault && spec.Default != nil && len(spec.Schema.Enum) > 0 {
		if err := checkDefaultChoice(spec); err != nil {
			return err
		}
	}

	return nil
}

// checkItemBounds allows list length bounds on multi-valued arguments only
func checkItemBounds(spec ArgumentSpec) error {
	schema := spec.Schema
	if schema.MinItems == nil && schema.MaxItems == nil {
		return nil
	}
	name := spec.DisplayName()
	if !spec.Nargs.Multi() {
		return clierrors.NewConfigError(name, "min and max items need a multi-valued nargs, not %q", string(spec.Nargs))
	}
	if (schema.MinItems != nil && *schema.MinItems < 0) || (schema.MaxItems != nil && *schema.MaxItems < 0) {
		return clierrors.NewConfigError(name, "min and max items cannot be negative")
	}
	return nil
}

// checkConstraintTypes rejects constraints that can never apply to the
// declared type. Custom converters decide the value type themselves, so
// their constraints are left to validation.
func checkConstraintTypes(spec ArgumentSpec) error {
	if spec.Convert != nil {
		return nil
	}
	name := spec.DisplayName()
	schema := spec.Schema

	if (schema.Minimum != nil || schema.Maximum != nil) && !types.IsNumeric(spec.Type) {
		return clierrors.NewConfigError(name, "min and max only apply to integer and float arguments, not %s", spec.Type)
	}
	if (schema.Pattern != nil || schema.Format != nil) && (types.IsNumeric(spec.Type) || spec.Type == types.TypeBool) {
		return clierrors.NewConfigError(name, "pattern and format only apply to string values, not %s", spec.Type)
	}
	return nil
}

// checkDefaultChoice compares the default against the choices the way a
// command-line token would be: by its text.
func checkDefaultChoice(spec ArgumentSpec) error {
	defaults := []any{spec.Default}
	switch d := spec.Default.(type) {
	case []string:
		defaults = make([]any, len(d))
		for i, s := range d {
			defaults[i] = s
		}
	case []any:
		defaults = d
	}

	for _, d := range defaults {
		text := fmt.Sprint(d)
		if dur, ok := d.(time.Duration); ok {
			text = types.FormatDuration(dur)
		}
		if !slices.Contains(spec.Schema.Enum, text) {
			return clierrors.NewConfigError(spec.DisplayName(), "default value %q must be one of the allowed values: %v", text, spec.Schema.Enum)
		}
	}
	return nil
}
