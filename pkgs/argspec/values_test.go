package argspec

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestValues_Getters(t *testing.T) {
	v := Values{
		"foo":     42,
		"bar":     "hello",
		"ratio":   0.5,
		"verbose": true,
		"timeout": 2 * time.Second,
		"names":   []any{"Alice", "Bob"},
		"sizes":   []any{1, 2},
	}

	if v.Int("foo") != 42 {
		t.Errorf("Int(foo) = %d", v.Int("foo"))
	}
	if v.String("bar") != "hello" {
		t.Errorf("String(bar) = %q", v.String("bar"))
	}
	if v.Float("ratio") != 0.5 || v.Float("foo") != 42 {
		t.Errorf("Float() = %v, %v", v.Float("ratio"), v.Float("foo"))
	}
	if !v.Bool("verbose") {
		t.Error("Bool(verbose) = false")
	}
	if v.Duration("timeout") != 2*time.Second {
		t.Errorf("Duration(timeout) = %v", v.Duration("timeout"))
	}
	if diff := cmp.Diff([]string{"Alice", "Bob"}, v.Strings("names")); diff != "" {
		t.Errorf("Strings(names) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "2"}, v.Strings("sizes")); diff != "" {
		t.Errorf("Strings(sizes) mismatch (-want +got):\n%s", diff)
	}
	if v.Strings("missing") != nil {
		t.Error("Strings(missing) should be nil")
	}
	if _, ok := v.Get("missing"); ok {
		t.Error("Get(missing) reported present")
	}
}
