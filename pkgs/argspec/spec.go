package argspec

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aledsdavies/cliarg/core/types"
)

// Nargs is the policy for how many command-line tokens an argument consumes.
type Nargs string

const (
	// One consumes exactly one token and yields a scalar (the default)
	One Nargs = ""
	// Optional consumes zero or one token and yields a scalar
	Optional Nargs = "?"
	// ZeroOrMore consumes any number of tokens and yields a list
	ZeroOrMore Nargs = "*"
	// OneOrMore consumes at least one token and yields a list
	OneOrMore Nargs = "+"
)

// Exactly returns a policy consuming exactly n tokens as a list
func Exactly(n int) Nargs {
	return Nargs(strconv.Itoa(n))
}

// exact returns the count for an Exactly policy
func (n Nargs) exact() (int, bool) {
	switch n {
	case One, Optional, ZeroOrMore, OneOrMore:
		return 0, false
	}
	count, err := strconv.Atoi(string(n))
	if err != nil {
		return 0, false
	}
	return count, true
}

// Valid reports whether the policy is well formed
func (n Nargs) Valid() bool {
	switch n {
	case One, Optional, ZeroOrMore, OneOrMore:
		return true
	}
	count, ok := n.exact()
	return ok && count >= 1
}

// Multi reports whether the argument resolves to a list
func (n Nargs) Multi() bool {
	return n != One && n != Optional
}

// Min is the minimum number of tokens the policy accepts
func (n Nargs) Min() int {
	switch n {
	case One, OneOrMore:
		return 1
	case Optional, ZeroOrMore:
		return 0
	}
	count, _ := n.exact()
	return count
}

// Max is the maximum number of tokens, or -1 when unbounded
func (n Nargs) Max() int {
	switch n {
	case One, Optional:
		return 1
	case ZeroOrMore, OneOrMore:
		return -1
	}
	count, _ := n.exact()
	return count
}

// String renders the policy for messages
func (n Nargs) String() string {
	if n == One {
		return "1"
	}
	return string(n)
}

// Converter turns one raw command-line token into a typed value.
type Converter func(token string) (any, error)

// ArgumentSpec is one declared CLI argument.
// Specs are handed out by value; the binding keeps the original.
type ArgumentSpec struct {
	Flags    []string // "--foo", "-f" for options; a single name for positionals
	Dest     string   // Key in the resolved values ("--dry-run" -> "dry_run")
	Type     types.ParamType
	Convert  Converter // Overrides the built-in converter for Type
	Default  any
	Const    string // Token used when an Optional option is given without a value
	Required bool
	Nargs    Nargs
	Help     string
	Metavar  string

	// Choices and constraints, validated around conversion
	Schema types.ParamSchema
}

// Positional reports whether the argument is a positional (no leading dash)
func (s ArgumentSpec) Positional() bool {
	return len(s.Flags) > 0 && !strings.HasPrefix(s.Flags[0], "-")
}

// LongFlag returns the "--name" form without dashes, or "" if none
func (s ArgumentSpec) LongFlag() string {
	for _, f := range s.Flags {
		if strings.HasPrefix(f, "--") {
			return strings.TrimPrefix(f, "--")
		}
	}
	return ""
}

// ShortFlag returns the "-x" form without the dash, or "" if none
func (s ArgumentSpec) ShortFlag() string {
	for _, f := range s.Flags {
		if strings.HasPrefix(f, "-") && !strings.HasPrefix(f, "--") {
			return strings.TrimPrefix(f, "-")
		}
	}
	return ""
}

// DisplayName is how the argument is named in messages: "--foo" or "names"
func (s ArgumentSpec) DisplayName() string {
	if s.Positional() {
		return s.Dest
	}
	return strings.Join(s.Flags, "/")
}

// MetavarOrDefault is the placeholder shown in usage text
func (s ArgumentSpec) MetavarOrDefault() string {
	if s.Metavar != "" {
		return s.Metavar
	}
	if s.Positional() {
		return s.Dest
	}
	return strings.ToUpper(s.Dest)
}

// IsFlagSwitch reports whether the option is a boolean switch (no value token)
func (s ArgumentSpec) IsFlagSwitch() bool {
	return !s.Positional() && s.Type == types.TypeBool && s.Nargs == One
}

// Converter returns the custom converter or the built-in one for Type
func (s ArgumentSpec) Converter() Converter {
	if s.Convert != nil {
		return s.Convert
	}
	return builtinConverter(s.Type)
}

// ConvertToken converts and validates one raw token
func (s ArgumentSpec) ConvertToken(token string) (any, error) {
	if err := s.Schema.ValidateEnum(token); err != nil {
		return nil, err
	}
	v, err := s.Converter()(token)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", s.typeName(), token, err)
	}
	return v, nil
}

func (s ArgumentSpec) typeName() string {
	if s.Convert != nil {
		return "argument"
	}
	if s.Type == "" {
		return string(types.TypeString)
	}
	return string(s.Type)
}

func (s ArgumentSpec) clone() ArgumentSpec {
	s.Flags = slices.Clone(s.Flags)
	s.Schema.Enum = slices.Clone(s.Schema.Enum)
	return s
}

// destFromFlags derives the destination name the way argparse does:
// first long flag, else first short flag, else the positional name.
func destFromFlags(flags []string) string {
	name := flags[0]
	for _, f := range flags {
		if strings.HasPrefix(f, "--") {
			name = f
			break
		}
	}
	name = strings.TrimLeft(name, "-")
	return strings.ReplaceAll(name, "-", "_")
}
