package argspec

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/aledsdavies/cliarg/core/invariant"
	"github.com/aledsdavies/cliarg/pkgs/docsections"
	clierrors "github.com/aledsdavies/cliarg/pkgs/errors"
)

// Func is a function whose arguments come from the command line
type Func func(ctx context.Context, args Values) error

// Binding is a function plus its ordered argument declarations and doc sections.
//
// Declarations are recorded in application order, innermost first, the way
// stacked decorators are applied. Arguments() unstacks them so callers see
// declared order.
type Binding struct {
	fn       Func
	identity string
	doc      string
	sections docsections.Sections
	applied  []ArgumentSpec
}

// Identity is the stable name of the bound function ("main.greet"). It keys
// the side table and the persisted parameters.
func (b *Binding) Identity() string { return b.identity }

// Func returns the bound function
func (b *Binding) Func() Func { return b.fn }

// Doc returns the raw doc text
func (b *Binding) Doc() string { return b.doc }

// Sections returns the man page sections extracted from the doc text
func (b *Binding) Sections() docsections.Sections { return b.sections }

// Arguments returns the argument specs in declared order
func (b *Binding) Arguments() []ArgumentSpec {
	out := make([]ArgumentSpec, len(b.applied))
	for i, spec := range b.applied {
		out[len(b.applied)-1-i] = spec.clone()
	}
	return out
}

// Argument looks up a spec by Dest
func (b *Binding) Argument(dest string) (ArgumentSpec, bool) {
	for _, spec := range b.applied {
		if spec.Dest == dest {
			return spec.clone(), true
		}
	}
	return ArgumentSpec{}, false
}

// Positionals returns the positional specs in declared order
func (b *Binding) Positionals() []ArgumentSpec {
	var out []ArgumentSpec
	for _, spec := range b.Arguments() {
		if spec.Positional() {
			out = append(out, spec)
		}
	}
	return out
}

// Declare applies one declaration: it builds the spec, checks it against the
// ones already applied, and appends it.
func (b *Binding) Declare(ab *ArgBuilder) error {
	invariant.NotNil(ab, "argument builder")

	spec, err := ab.Build()
	if err != nil {
		return err
	}

	for _, existing := range b.applied {
		if existing.Dest == spec.Dest {
			return clierrors.NewConfigError(spec.DisplayName(), "conflicts with %s (both resolve to %q)", existing.DisplayName(), spec.Dest)
		}
		for _, f := range spec.Flags {
			if !spec.Positional() && slices.Contains(existing.Flags, f) {
				return clierrors.NewConfigError(spec.DisplayName(), "option string %s is already used by %s", f, existing.DisplayName())
			}
		}
	}

	if spec.Positional() {
		if err := b.checkPositionalOrder(spec); err != nil {
			return err
		}
	}

	b.applied = append(b.applied, spec)
	return nil
}

// checkPositionalOrder rejects an unbounded positional declared before
// another unbounded one. With innermost-first application, spec is declared
// before every positional already applied.
func (b *Binding) checkPositionalOrder(spec ArgumentSpec) error {
	if spec.Nargs.Max() >= 0 {
		return nil
	}
	for _, existing := range b.applied {
		if existing.Positional() && existing.Nargs.Max() < 0 {
			return clierrors.NewConfigError(spec.DisplayName(), "cannot be followed by another unbounded positional (%s)", existing.DisplayName())
		}
	}
	return nil
}

// registry is the process-wide side table from function identity to binding
type registry struct {
	mu       sync.RWMutex
	bindings map[string]*Binding
}

var defaultRegistry = &registry{bindings: make(map[string]*Binding)}

// Decorate attaches argument declarations to fn, keyed by fn's identity.
//
// Declarations are listed the way stacked decorators are written, top to
// bottom, and applied bottom-up. Decorating an already registered function
// applies the new declarations outside the existing ones, so they come first
// in declared order.
func Decorate(fn Func, doc string, decls ...*ArgBuilder) (*Binding, error) {
	invariant.NotNil(fn, "fn")
	return DecorateNamed(funcIdentity(fn), fn, doc, decls...)
}

// DecorateNamed is Decorate with an explicit identity, for closures and
// methods whose symbol names are not stable.
func DecorateNamed(identity string, fn Func, doc string, decls ...*ArgBuilder) (*Binding, error) {
	invariant.NotNil(fn, "fn")
	invariant.Precondition(identity != "", "identity must not be empty")

	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()

	b, exists := defaultRegistry.bindings[identity]
	if !exists {
		b = &Binding{fn: fn, identity: identity}
	}

	// Work on a copy so a failing declaration leaves the binding unchanged
	staged := &Binding{fn: b.fn, identity: b.identity, applied: slices.Clone(b.applied)}
	for i := len(decls) - 1; i >= 0; i-- {
		if err := staged.Declare(decls[i]); err != nil {
			return nil, fmt.Errorf("decorating %s: %w", identity, err)
		}
	}

	b.applied = staged.applied
	if doc != "" || !exists {
		b.doc = doc
		b.sections = docsections.Extract(doc)
	}
	defaultRegistry.bindings[identity] = b
	return b, nil
}

// MustDecorate is Decorate for package-level declarations; it panics on
// configuration errors.
func MustDecorate(fn Func, doc string, decls ...*ArgBuilder) *Binding {
	b, err := Decorate(fn, doc, decls...)
	if err != nil {
		panic(err)
	}
	return b
}

// MustDecorateNamed is DecorateNamed for package-level declarations; it
// panics on configuration errors.
func MustDecorateNamed(identity string, fn Func, doc string, decls ...*ArgBuilder) *Binding {
	b, err := DecorateNamed(identity, fn, doc, decls...)
	if err != nil {
		panic(err)
	}
	return b
}

// Lookup returns the binding registered for fn
func Lookup(fn Func) (*Binding, bool) {
	invariant.NotNil(fn, "fn")
	return LookupNamed(funcIdentity(fn))
}

// LookupNamed returns the binding registered under identity
func LookupNamed(identity string) (*Binding, bool) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	b, ok := defaultRegistry.bindings[identity]
	return b, ok
}

// Bindings returns every registered binding, sorted by identity
func Bindings() []*Binding {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	out := make([]*Binding, 0, len(defaultRegistry.bindings))
	for _, b := range defaultRegistry.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].identity < out[j].identity })
	return out
}

// Reset clears the side table. Intended for tests.
func Reset() {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	defaultRegistry.bindings = make(map[string]*Binding)
}

// funcIdentity names a function by its symbol, dropping the import path
// directories: "github.com/x/y/cmd/demo.greet" -> "demo.greet".
func funcIdentity(fn Func) string {
	pc := reflect.ValueOf(fn).Pointer()
	name := "func"
	if f := runtime.FuncForPC(pc); f != nil {
		name = f.Name()
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	return name
}
