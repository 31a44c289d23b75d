package argspec

import (
	"context"
	"strings"
	"testing"

	"github.com/aledsdavies/cliarg/pkgs/docsections"
	clierrors "github.com/aledsdavies/cliarg/pkgs/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleDoc = `Example main function using CLI arguments.

#NAME {{{Example main function using CLI arguments.}}}

#DESCRIPTION
{{{
Test function
}}}`

func exampleFunction(ctx context.Context, args Values) error { return nil }

func otherFunction(ctx context.Context, args Values) error { return nil }

func dests(specs []ArgumentSpec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Dest
	}
	return out
}

func TestDecorate_DeclaredOrder(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	b, err := Decorate(exampleFunction, exampleDoc,
		Arg("--foo").Int().Required().Help("Le nombre foo"),
		Arg("--bar").Default("abc").Help("La chaîne bar"),
		Arg("names").Nargs(ZeroOrMore),
	)
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"foo", "bar", "names"}, dests(b.Arguments())); diff != "" {
		t.Errorf("argument order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "argspec.exampleFunction", b.Identity())
	assert.Equal(t, "Example main function using CLI arguments.", b.Sections()[docsections.Name])
}

func TestDecorate_AppliesBottomUp(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	b, err := Decorate(exampleFunction, "",
		Arg("--first"),
		Arg("--second"),
	)
	require.NoError(t, err)

	// Innermost (last listed) declaration is recorded first
	require.Len(t, b.applied, 2)
	assert.Equal(t, "second", b.applied[0].Dest)
	assert.Equal(t, "first", b.applied[1].Dest)
}

func TestDecorate_ReapplyWrapsOutside(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	_, err := Decorate(exampleFunction, exampleDoc, Arg("--bar"), Arg("names").Nargs(ZeroOrMore))
	require.NoError(t, err)

	b, err := Decorate(exampleFunction, "", Arg("--foo").Int())
	require.NoError(t, err)

	assert.Equal(t, []string{"foo", "bar", "names"}, dests(b.Arguments()))
	assert.Len(t, Bindings(), 1, "the same function keeps one binding")
	assert.Equal(t, exampleDoc, b.Doc(), "an empty doc keeps the earlier one")
}

func TestDecorate_RequiredWithDefaultFails(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	_, err := Decorate(exampleFunction, "", Arg("--foo").Int().Required().Default(3))
	require.Error(t, err)
	assert.True(t, clierrors.IsConfigError(err))
	assert.Contains(t, err.Error(), "cannot be both required and have a default value")

	_, ok := Lookup(exampleFunction)
	assert.False(t, ok, "failed decoration must not register a binding")
}

func TestDecorate_FailureLeavesBindingUnchanged(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	_, err := Decorate(exampleFunction, "", Arg("--foo"))
	require.NoError(t, err)

	_, err = Decorate(exampleFunction, "", Arg("--bar"), Arg("--foo"))
	require.Error(t, err)

	b, ok := Lookup(exampleFunction)
	require.True(t, ok)
	assert.Equal(t, []string{"foo"}, dests(b.Arguments()))
}

func TestDecorate_Conflicts(t *testing.T) {
	tests := []struct {
		name   string
		decls  []*ArgBuilder
		errMsg string
	}{
		{"duplicate dest", []*ArgBuilder{Arg("--foo"), Arg("-x", "--foo")}, "both resolve to"},
		{"duplicate short", []*ArgBuilder{Arg("-f", "--foo"), Arg("-f", "--file")}, "already used"},
		{"two unbounded positionals", []*ArgBuilder{Arg("a").Nargs(ZeroOrMore), Arg("b").Nargs(OneOrMore)}, "unbounded positional"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			t.Cleanup(Reset)

			_, err := Decorate(otherFunction, "", tt.decls...)
			require.Error(t, err)
			assert.True(t, clierrors.IsConfigError(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMustDecorate_Panics(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	assert.Panics(t, func() {
		MustDecorate(otherFunction, "", Arg(""))
	})
}

func TestDecorateNamed_Closures(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	fn := func(ctx context.Context, args Values) error { return nil }
	b, err := DecorateNamed("tools.resize", fn, "", Arg("--width").Int())
	require.NoError(t, err)

	got, ok := LookupNamed("tools.resize")
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestMustDecorateNamed_KeepsGivenIdentity(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	b := MustDecorateNamed("main.greet", exampleFunction, "", Arg("--foo"))
	assert.Equal(t, "main.greet", b.Identity())

	_, ok := Lookup(exampleFunction)
	assert.False(t, ok, "symbol identity should not be registered")

	assert.Panics(t, func() {
		MustDecorateNamed("main.greet", exampleFunction, "", Arg("--foo"))
	})
}

func TestBindings_SortedByIdentity(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	MustDecorate(otherFunction, "", Arg("--x"))
	MustDecorate(exampleFunction, "", Arg("--y"))

	var ids []string
	for _, b := range Bindings() {
		ids = append(ids, b.Identity())
	}
	assert.Equal(t, []string{"argspec.exampleFunction", "argspec.otherFunction"}, ids)
}

func TestBinding_ArgumentsAreCopies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	b := MustDecorate(exampleFunction, "", Arg("--foo", "-f"))
	specs := b.Arguments()
	specs[0].Flags[0] = "--mutated"

	spec, ok := b.Argument("foo")
	require.True(t, ok)
	assert.Equal(t, "--foo", spec.Flags[0])
	assert.False(t, strings.Contains(spec.DisplayName(), "mutated"))
}

func TestBinding_Positionals(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	b := MustDecorate(exampleFunction, "",
		Arg("src"),
		Arg("--force").Bool(),
		Arg("dst").Nargs(Optional),
	)
	assert.Equal(t, []string{"src", "dst"}, dests(b.Positionals()))
}
