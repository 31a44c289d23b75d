// Package synth turns a decorated function into a runnable command.
//
// A Command builds a cobra command whose flags and positionals mirror the
// binding's argument specs, parses the command line, fills the gaps from
// the persisted parameters and the declared defaults, saves what was used,
// and calls the function with the resolved values.
//
//	func main() {
//		synth.New(argspec.MustDecorate(run, doc,
//			argspec.Arg("--foo").Int().Required(),
//			argspec.Arg("names").Nargs(argspec.ZeroOrMore),
//		)).Main()
//	}
//
// A lone "%" argument opens the persisted parameters in $EDITOR and then
// runs with them. A token "@path" is replaced by the lines of path.
package synth
