package synth

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"

	"github.com/aledsdavies/cliarg/pkgs/argspec"
	clierrors "github.com/aledsdavies/cliarg/pkgs/errors"
)

func TestUsageLine(t *testing.T) {
	specs := buildSpecs(t,
		argspec.Arg("--foo").Int().Required(),
		argspec.Arg("-q").Bool(),
		argspec.Arg("--level").Nargs(argspec.Optional).Const("3"),
		argspec.Arg("--tag").Nargs(argspec.OneOrMore),
		argspec.Arg("src").Nargs(argspec.OneOrMore),
		argspec.Arg("point").Nargs(argspec.Exactly(2)).Metavar("N"),
		argspec.Arg("extra").Nargs(argspec.Optional),
	)

	want := "usage: prog [-h] --foo FOO [-q] [--level [LEVEL]] [--tag TAG]... src [src ...] N N [extra]"
	assert.Equal(t, want, usageLine("prog", specs))
}

func TestHelpListing(t *testing.T) {
	specs := buildSpecs(t,
		argspec.Arg("--bar").Default("abc").Help("the bar string"),
		argspec.Arg("names").Nargs(argspec.ZeroOrMore).Help("people to greet"),
		argspec.Arg("-v", "--verbose").Bool().Help("talk more"),
	)

	fs := pflag.NewFlagSet("prog", pflag.ContinueOnError)
	optionFlags(fs, specs)

	out := helpListing(specs, fs)

	assert.Contains(t, out, "positional arguments:\n  names   people to greet\n")
	assert.Contains(t, out, "--bar BAR")
	assert.Contains(t, out, "the bar string (default abc)")
	assert.Contains(t, out, "-v, --verbose")
	assert.NotContains(t, out, "--verbose bool")
	assert.Less(t, bytes.Index([]byte(out), []byte("--bar")), bytes.Index([]byte(out), []byte("--verbose")))
}

func TestFormatError(t *testing.T) {
	t.Run("usage error with hint", func(t *testing.T) {
		var buf bytes.Buffer
		err := clierrors.NewUsageError("unknown flag: --fo").WithHint("Did you mean '--foo'?")

		FormatError(&buf, err, "usage: prog [-h]", false)

		assert.Equal(t, "usage: prog [-h]\nError: unknown flag: --fo\nHint: Did you mean '--foo'?\n", buf.String())
	})

	t.Run("colored", func(t *testing.T) {
		var buf bytes.Buffer
		FormatError(&buf, clierrors.NewUsageError("bad"), "", true)

		assert.Equal(t, ColorRed+"Error: "+ColorReset+"bad\n", buf.String())
	})

	t.Run("colored usage line is dimmed", func(t *testing.T) {
		var buf bytes.Buffer
		FormatError(&buf, clierrors.NewUsageError("bad"), "usage: prog [-h]\n", true)

		assert.Equal(t, ColorGray+"usage: prog [-h]"+ColorReset+"\n"+ColorRed+"Error: "+ColorReset+"bad\n", buf.String())
	})

	t.Run("nil error", func(t *testing.T) {
		var buf bytes.Buffer
		FormatError(&buf, nil, "usage", false)
		assert.Empty(t, buf.String())
	})
}

func TestShouldUseColor(t *testing.T) {
	assert.False(t, ShouldUseColor(&bytes.Buffer{}), "buffers are never terminals")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ShouldUseColor(nil))
}

func TestClosestFlag(t *testing.T) {
	candidates := []string{"--foo", "--bar", "--verbose"}

	assert.Equal(t, "--foo", closestFlag("--fo", candidates))
	assert.Equal(t, "--foo", closestFlag("--fooo", candidates))
	assert.Equal(t, "--verbose", closestFlag("--verb", candidates))
	assert.Equal(t, "", closestFlag("--zzz", candidates))
}
