package synth

import (
	"strings"

	"github.com/aledsdavies/cliarg/core/invariant"
	"github.com/aledsdavies/cliarg/pkgs/argspec"
	clierrors "github.com/aledsdavies/cliarg/pkgs/errors"
)

// allocatePositionals distributes tokens over the positional specs left to
// right. Each positional takes as many tokens as its nargs allows while
// leaving the minimum every later positional needs. When the tokens run
// short, earlier positionals that need a token still take theirs first and
// only optional ones step aside. A positional that gets no tokens is absent,
// so persisted values and defaults can fill it.
func allocatePositionals(specs []argspec.ArgumentSpec, tokens []string) (map[string][]string, error) {
	allocated := make(map[string][]string)

	reserve := make([]int, len(specs)+1)
	for i := len(specs) - 1; i >= 0; i-- {
		reserve[i] = reserve[i+1] + specs[i].Nargs.Min()
	}

	rest := tokens
	for i, spec := range specs {
		available := len(rest) - reserve[i+1]

		var take int
		switch {
		case available >= spec.Nargs.Min():
			take = available
			if limit := spec.Nargs.Max(); limit >= 0 && take > limit {
				take = limit
			}
		case spec.Nargs.Min() == 0:
			take = 0
		default:
			take = min(spec.Nargs.Min(), len(rest))
		}
		if take == 0 {
			continue
		}
		if take < spec.Nargs.Min() {
			return nil, clierrors.NewUsageError("argument %s: expected %d arguments, got %d", spec.DisplayName(), spec.Nargs.Min(), take).
				WithContext("argument", spec.DisplayName())
		}

		invariant.Invariant(take <= len(rest), "positional %s took %d of %d tokens", spec.Dest, take, len(rest))
		allocated[spec.Dest] = rest[:take:take]
		rest = rest[take:]
	}

	if len(rest) > 0 {
		return nil, clierrors.NewUsageError("unrecognized arguments: %s", strings.Join(rest, " "))
	}

	return allocated, nil
}
