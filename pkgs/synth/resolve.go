package synth

import (
	"fmt"
	"strings"

	"github.com/aledsdavies/cliarg/core/types"
	"github.com/aledsdavies/cliarg/pkgs/argspec"
	clierrors "github.com/aledsdavies/cliarg/pkgs/errors"
	"github.com/aledsdavies/cliarg/pkgs/params"
)

// source records where a resolved value came from
type source int

const (
	fromNone source = iota
	fromDefault
	fromPersisted
	fromCommandLine
)

func (s source) String() string {
	switch s {
	case fromCommandLine:
		return "command line"
	case fromPersisted:
		return "persisted parameters"
	case fromDefault:
		return "default"
	default:
		return "none"
	}
}

// resolution is the outcome of merging the three sources
type resolution struct {
	values  argspec.Values
	persist map[string]params.Entry
	sources map[string]source
}

// resolver merges command-line tokens, persisted entries and defaults,
// in that order of precedence, and converts and validates the result.
type resolver struct {
	specs     []argspec.ArgumentSpec
	validator *types.Validator
}

// resolve fills every declared argument. cli holds the raw tokens given on
// the command line by Dest; persisted holds the entries loaded from the store.
func (r *resolver) resolve(cli map[string][]string, persisted map[string]params.Entry) (*resolution, error) {
	res := &resolution{
		values:  make(argspec.Values, len(r.specs)),
		persist: make(map[string]params.Entry),
		sources: make(map[string]source, len(r.specs)),
	}

	var missing []string
	for _, spec := range r.specs {
		tokens, src := r.pick(spec, cli, persisted)

		switch src {
		case fromCommandLine, fromPersisted:
			value, err := r.convert(spec, tokens)
			if err != nil {
				if src == fromPersisted {
					return nil, clierrors.Wrap(clierrors.ErrUsage, fmt.Sprintf("argument %s (from %s)", spec.DisplayName(), src), err).
						WithContext("argument", spec.DisplayName()).
						WithHint("Fix the value with '%' or pass the argument on the command line")
				}
				return nil, clierrors.Wrap(clierrors.ErrUsage, fmt.Sprintf("argument %s", spec.DisplayName()), err).
					WithContext("argument", spec.DisplayName())
			}
			res.values[spec.Dest] = value
			res.persist[spec.Dest] = entryFor(spec, tokens)

		default:
			if spec.Required {
				missing = append(missing, spec.DisplayName())
				continue
			}
			value, err := r.defaultValue(spec)
			if err != nil {
				return nil, clierrors.Wrap(clierrors.ErrUsage, fmt.Sprintf("argument %s: invalid default", spec.DisplayName()), err)
			}
			res.values[spec.Dest] = value
			if spec.Default != nil {
				src = fromDefault
			}
		}
		res.sources[spec.Dest] = src
	}

	if len(missing) > 0 {
		return nil, clierrors.NewUsageError("the following arguments are required: %s", strings.Join(missing, ", ")).
			WithContext("missing", missing)
	}

	return res, nil
}

// pick chooses the raw tokens for one argument by precedence
func (r *resolver) pick(spec argspec.ArgumentSpec, cli map[string][]string, persisted map[string]params.Entry) ([]string, source) {
	if tokens, ok := cli[spec.Dest]; ok {
		return tokens, fromCommandLine
	}
	if entry, ok := persisted[spec.Dest]; ok && !entry.Empty() {
		return entry.Tokens, fromPersisted
	}
	return nil, fromNone
}

// convert turns raw tokens into the argument's value and checks constraints
func (r *resolver) convert(spec argspec.ArgumentSpec, tokens []string) (any, error) {
	if !spec.Nargs.Multi() {
		if len(tokens) != 1 {
			return nil, fmt.Errorf("expected one argument, got %d", len(tokens))
		}
		value, err := spec.ConvertToken(tokens[0])
		if err != nil {
			return nil, err
		}
		return value, r.validate(spec, value)
	}

	if n := len(tokens); n < spec.Nargs.Min() || (spec.Nargs.Max() >= 0 && n > spec.Nargs.Max()) {
		return nil, fmt.Errorf("expected %s arguments, got %d", nargsDescription(spec.Nargs), n)
	}

	list := make([]any, len(tokens))
	for i, token := range tokens {
		value, err := spec.ConvertToken(token)
		if err != nil {
			return nil, err
		}
		list[i] = value
	}
	return list, r.validate(spec, list)
}

func (r *resolver) validate(spec argspec.ArgumentSpec, value any) error {
	if r.validator == nil {
		return nil
	}
	return r.validator.Validate(&spec.Schema, value)
}

// defaultValue is the value of an argument nobody supplied. String defaults
// are converted like command-line tokens; other defaults are used as given.
func (r *resolver) defaultValue(spec argspec.ArgumentSpec) (any, error) {
	switch d := spec.Default.(type) {
	case nil:
		if spec.Nargs.Multi() {
			return []any{}, nil
		}
		return nil, nil
	case string:
		if spec.Nargs.Multi() {
			value, err := spec.ConvertToken(d)
			if err != nil {
				return nil, err
			}
			return []any{value}, nil
		}
		return spec.ConvertToken(d)
	case []string:
		list := make([]any, len(d))
		for i, token := range d {
			value, err := spec.ConvertToken(token)
			if err != nil {
				return nil, err
			}
			list[i] = value
		}
		return list, nil
	default:
		return d, nil
	}
}

// entryFor is the persisted form of the tokens used for spec
func entryFor(spec argspec.ArgumentSpec, tokens []string) params.Entry {
	if spec.Nargs.Multi() {
		return params.List(tokens...)
	}
	return params.Scalar(tokens[0])
}

func nargsDescription(n argspec.Nargs) string {
	switch n {
	case argspec.ZeroOrMore:
		return "any number of"
	case argspec.OneOrMore:
		return "at least one"
	default:
		return n.String()
	}
}
