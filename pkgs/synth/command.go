package synth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aledsdavies/cliarg/core/invariant"
	"github.com/aledsdavies/cliarg/core/types"
	"github.com/aledsdavies/cliarg/internal/logging"
	"github.com/aledsdavies/cliarg/pkgs/argspec"
	"github.com/aledsdavies/cliarg/pkgs/docsections"
	clierrors "github.com/aledsdavies/cliarg/pkgs/errors"
	"github.com/aledsdavies/cliarg/pkgs/params"
)

// reuseToken is the lone argument that reruns with the persisted parameters
const reuseToken = "%"

// Exit codes
const (
	ExitOK    = 0
	ExitError = 1 // The function returned an error
	ExitUsage = 2 // The command line could not be resolved
)

// Command runs one bound function from the command line
type Command struct {
	binding   *argspec.Binding
	name      string
	stdout    io.Writer
	stderr    io.Writer
	logger    *slog.Logger
	store     *params.Store
	storeSet  bool
	editor    string
	color     *bool
	validator *types.Validator
}

// New creates a command for binding
func New(binding *argspec.Binding, opts ...Option) *Command {
	invariant.NotNil(binding, "binding")

	c := &Command{
		binding: binding,
		name:    filepath.Base(os.Args[0]),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		editor:  os.Getenv("EDITOR"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.FromEnv(c.stderr)
	}
	if c.validator == nil {
		c.validator = types.NewValidator(nil)
	}
	if !c.storeSet {
		dir, err := params.DefaultDir()
		if err != nil {
			c.logger.Warn("parameter persistence disabled", "error", err)
		} else {
			c.store = params.NewStore(dir)
		}
	}

	return c
}

// Name is the program name used in help output
func (c *Command) Name() string { return c.name }

// Usage is the one-line usage text
func (c *Command) Usage() string {
	return usageLine(c.name, c.binding.Arguments())
}

// Main runs with the process arguments and exits with the matching code
func (c *Command) Main() {
	os.Exit(c.Execute(context.Background(), os.Args[1:]))
}

// Execute runs the command, reports any error on stderr and returns the
// process exit code.
func (c *Command) Execute(ctx context.Context, args []string) int {
	err := c.Run(ctx, args)
	if err != nil {
		usage := ""
		if clierrors.IsUsageError(err) {
			usage = c.Usage()
		}
		FormatError(c.stderr, err, usage, c.useColor())
	}
	return ExitCode(err)
}

// ExitCode maps a Run error to a process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case clierrors.IsUsageError(err):
		return ExitUsage
	default:
		return ExitError
	}
}

// Run parses args, resolves every argument and calls the bound function.
// Asking for help prints the man page and returns nil.
func (c *Command) Run(ctx context.Context, args []string) error {
	if len(args) == 1 && args[0] == reuseToken {
		return c.reuse(ctx)
	}

	args, err := expandArgFiles(args)
	if err != nil {
		return err
	}

	cmd := c.cobraCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// cobraCommand builds the cobra command mirroring the binding
func (c *Command) cobraCommand() *cobra.Command {
	specs := c.binding.Arguments()

	cmd := &cobra.Command{
		Use:               c.name,
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)

	options := optionFlags(cmd.Flags(), specs)

	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprint(c.stdout, c.manPage(specs, cmd.Flags()))
	})
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return flagError(err, specs)
	})

	cmd.RunE = func(cmd *cobra.Command, positional []string) error {
		cli := make(map[string][]string)
		for dest, value := range options {
			if value.set {
				cli[dest] = value.tokens
			}
		}

		allocated, err := allocatePositionals(c.binding.Positionals(), positional)
		if err != nil {
			return err
		}
		for dest, tokens := range allocated {
			cli[dest] = tokens
		}

		return c.invoke(cmd.Context(), specs, cli)
	}

	return cmd
}

// manPage renders the full help text
func (c *Command) manPage(specs []argspec.ArgumentSpec, flags *pflag.FlagSet) string {
	page := docsections.Render(c.name, c.binding.Sections())
	return page.Format(usageLine(c.name, specs), helpListing(specs, flags))
}

// reuse runs with the persisted parameters, after letting the user edit
// them when an editor is configured.
func (c *Command) reuse(ctx context.Context) error {
	if c.store == nil {
		return clierrors.NewUsageError("no parameter store to reuse arguments from")
	}

	if c.editor != "" {
		changed, err := c.store.Edit(ctx, c.binding.Identity(), c.editor)
		if err != nil {
			return err
		}
		c.logger.Debug("edited persisted parameters", "path", c.store.Path(c.binding.Identity()), "changed", changed)
	}

	return c.invoke(ctx, c.binding.Arguments(), nil)
}

// invoke merges cli with the persisted parameters and defaults, saves what
// was used and calls the function.
func (c *Command) invoke(ctx context.Context, specs []argspec.ArgumentSpec, cli map[string][]string) error {
	identity := c.binding.Identity()

	fingerprint, err := params.Fingerprint(specs)
	if err != nil {
		return fmt.Errorf("fingerprinting %s: %w", identity, err)
	}

	r := &resolver{specs: specs, validator: c.validator}
	res, err := r.resolve(cli, c.loadPersisted(specs, fingerprint))
	if err != nil {
		return err
	}

	if c.store != nil {
		if err := c.store.Save(identity, fingerprint, res.persist); err != nil {
			c.logger.Warn("failed to save parameters", "function", identity, "error", err)
		} else {
			c.logger.Debug("saved parameters", "function", identity, "path", c.store.Path(identity))
		}
	}

	if c.logger.Enabled(ctx, slog.LevelDebug) {
		for _, spec := range specs {
			c.logger.Debug("resolved argument", "argument", spec.Dest, "source", res.sources[spec.Dest].String())
		}
	}

	return c.binding.Func()(ctx, res.values)
}

// loadPersisted returns the usable persisted entries. Problems with the
// file are logged and never stop the run.
func (c *Command) loadPersisted(specs []argspec.ArgumentSpec, fingerprint string) map[string]params.Entry {
	if c.store == nil {
		return nil
	}

	identity := c.binding.Identity()
	f, err := c.store.Load(identity)
	if err != nil {
		c.logger.Warn("ignoring persisted parameters", "function", identity, "error", err)
		return nil
	}

	if f.Fingerprint != "" && f.Fingerprint != fingerprint {
		c.logger.Warn("persisted parameters were saved for a different argument list",
			"function", identity, "path", c.store.Path(identity))
	}

	dests := make([]string, len(specs))
	for i, spec := range specs {
		dests[i] = spec.Dest
	}
	for _, stale := range f.Filter(dests) {
		attrs := []any{"function", identity, "argument", stale.Name}
		if stale.Suggestion != "" {
			attrs = append(attrs, "did_you_mean", stale.Suggestion)
		}
		c.logger.Warn("dropping persisted value for undeclared argument", attrs...)
	}

	return f.Arguments
}

func (c *Command) useColor() bool {
	if c.color != nil {
		return *c.color
	}
	return ShouldUseColor(c.stderr)
}

// flagError turns a pflag parse error into a usage error, suggesting the
// closest declared option for unknown ones.
func flagError(err error, specs []argspec.ArgumentSpec) error {
	usageErr := clierrors.Wrap(clierrors.ErrUsage, "invalid command line", err)

	unknown, ok := strings.CutPrefix(err.Error(), "unknown flag: ")
	if !ok {
		return usageErr
	}

	var candidates []string
	for _, spec := range specs {
		if !spec.Positional() && spec.LongFlag() != "" {
			candidates = append(candidates, "--"+spec.LongFlag())
		}
	}
	if closest := closestFlag(unknown, candidates); closest != "" {
		usageErr.WithHint(fmt.Sprintf("Did you mean '%s'?", closest))
	}
	return usageErr
}

// closestFlag finds the closest declared flag using fuzzy ranking in both
// directions, so "--fo" and "--fooo" both suggest "--foo".
func closestFlag(target string, candidates []string) string {
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	for _, candidate := range candidates {
		if fuzzy.MatchFold(candidate, target) {
			return candidate
		}
	}
	return ""
}
