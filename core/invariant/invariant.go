// Package invariant asserts contracts that only a programming error can break.
//
// Violations panic with a *Violation. Bad user input never reaches these
// checks: it travels as configuration or usage errors instead.
package invariant

import (
	"fmt"
	"reflect"
	"runtime"
)

// Violation is the panic value of a failed assertion
type Violation struct {
	Kind    string // PRECONDITION or INVARIANT
	Message string
	File    string
	Line    int
}

func (v *Violation) Error() string {
	if v.File == "" {
		return fmt.Sprintf("%s VIOLATION: %s", v.Kind, v.Message)
	}
	return fmt.Sprintf("%s VIOLATION: %s\n  at %s:%d", v.Kind, v.Message, v.File, v.Line)
}

// Precondition checks what a caller must guarantee on entry.
//
//	func DecorateNamed(identity string, ...) {
//	    invariant.Precondition(identity != "", "identity must not be empty")
//	}
func Precondition(condition bool, format string, args ...any) {
	if !condition {
		panic(violation("PRECONDITION", format, args...))
	}
}

// Invariant checks internal consistency mid-computation
func Invariant(condition bool, format string, args ...any) {
	if !condition {
		panic(violation("INVARIANT", format, args...))
	}
}

// NotNil is a Precondition that value is neither nil nor a typed nil
// pointer, map, slice, channel or func.
func NotNil(value any, name string) {
	if value == nil {
		panic(violation("PRECONDITION", "%s must not be nil", name))
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		if v.IsNil() {
			panic(violation("PRECONDITION", "%s must not be nil", name))
		}
	}
}

// violation records the location of the assertion's caller
func violation(kind, format string, args ...any) *Violation {
	v := &Violation{Kind: kind, Message: fmt.Sprintf(format, args...)}
	if _, file, line, ok := runtime.Caller(2); ok {
		v.File, v.Line = file, line
	}
	return v
}
