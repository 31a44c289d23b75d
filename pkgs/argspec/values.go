package argspec

import (
	"fmt"
	"time"
)

// Values holds the resolved arguments of one invocation, keyed by Dest.
// Scalars hold the converted value; multi-valued arguments hold []any.
type Values map[string]any

// Get returns the raw resolved value
func (v Values) Get(name string) (any, bool) {
	value, ok := v[name]
	return value, ok
}

// String returns a string argument, or "" when absent
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Int returns an integer argument, or 0 when absent
func (v Values) Int(name string) int {
	i, _ := v[name].(int)
	return i
}

// Float returns a floating point argument, or 0 when absent
func (v Values) Float(name string) float64 {
	switch f := v[name].(type) {
	case float64:
		return f
	case int:
		return float64(f)
	}
	return 0
}

// Bool returns a boolean argument, or false when absent
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Duration returns a duration argument, or 0 when absent
func (v Values) Duration(name string) time.Duration {
	d, _ := v[name].(time.Duration)
	return d
}

// List returns a multi-valued argument
func (v Values) List(name string) []any {
	switch l := v[name].(type) {
	case []any:
		return l
	case nil:
		return nil
	default:
		return []any{l}
	}
}

// Strings returns a multi-valued argument formatted as strings
func (v Values) Strings(name string) []string {
	list := v.List(name)
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	for i, item := range list {
		if s, ok := item.(string); ok {
			out[i] = s
			continue
		}
		out[i] = fmt.Sprint(item)
	}
	return out
}
