package synth

import (
	"io"
	"log/slog"

	"github.com/aledsdavies/cliarg/core/types"
	"github.com/aledsdavies/cliarg/pkgs/params"
)

// Option configures a Command
type Option func(*Command)

// WithStdout sets where the man page is written
func WithStdout(w io.Writer) Option {
	return func(c *Command) { c.stdout = w }
}

// WithStderr sets where errors and log records are written
func WithStderr(w io.Writer) Option {
	return func(c *Command) { c.stderr = w }
}

// WithLogger replaces the logger built from CLIARG_LOG_LEVEL and CLIARG_LOG_FORMAT
func WithLogger(logger *slog.Logger) Option {
	return func(c *Command) { c.logger = logger }
}

// WithStore sets the parameter store. A nil store disables persistence.
func WithStore(store *params.Store) Option {
	return func(c *Command) {
		c.store = store
		c.storeSet = true
	}
}

// WithEditor sets the editor command used by "%" instead of $EDITOR
func WithEditor(editor string) Option {
	return func(c *Command) { c.editor = editor }
}

// WithColor forces colored error output on or off
func WithColor(enabled bool) Option {
	return func(c *Command) { c.color = &enabled }
}

// WithName sets the program name shown in the man page and usage line
func WithName(name string) Option {
	return func(c *Command) { c.name = name }
}

// WithValidation sets the constraint validator configuration
func WithValidation(config *types.ValidationConfig) Option {
	return func(c *Command) { c.validator = types.NewValidator(config) }
}
