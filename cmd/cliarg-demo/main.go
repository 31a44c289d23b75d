// Command cliarg-demo is the example function from the cliarg README:
//
//	cliarg-demo --foo 42 --bar hello Alice Bob
//	cliarg-demo %
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aledsdavies/cliarg/pkgs/argspec"
	"github.com/aledsdavies/cliarg/pkgs/synth"
)

const greetDoc = `Example main function using CLI arguments.

#NAME {{{Example main function using CLI arguments.}}}

#DESCRIPTION
{{{
    Prints foo and bar, then every name on its own line.
    Arguments left out are taken from the previous run.
}}}

#EXAMPLES
{{{
    cliarg-demo --foo 42 --bar hello Alice Bob
    cliarg-demo %
}}}

#SEE_ALSO {{{argparse(1)}}}
`

// Named explicitly: under "go test" the symbol is not in package main.
var greetBinding = argspec.MustDecorateNamed("main.greet", greet, greetDoc,
	argspec.Arg("--foo").Int().Required().Help("the foo number"),
	argspec.Arg("--bar").Default("abc").Help("the bar string"),
	argspec.Arg("names").Nargs(argspec.ZeroOrMore).Help("names to print"),
)

// output is where greet prints
var output io.Writer = os.Stdout

func greet(_ context.Context, args argspec.Values) error {
	if _, err := fmt.Fprintf(output, "foo = %d, bar = %s\n", args.Int("foo"), args.String("bar")); err != nil {
		return err
	}
	for _, name := range args.Strings("names") {
		if _, err := fmt.Fprintln(output, name); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	os.Exit(run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]))
}

// run executes the command and returns the process exit code
func run(ctx context.Context, stdout, stderr io.Writer, args []string, opts ...synth.Option) int {
	output = stdout
	opts = append([]synth.Option{
		synth.WithName("cliarg-demo"),
		synth.WithStdout(stdout),
		synth.WithStderr(stderr),
	}, opts...)
	return synth.New(greetBinding, opts...).Execute(ctx, args)
}
