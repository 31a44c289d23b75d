package types

import (
	"strings"
	"testing"
	"time"
)

func TestValidator_Validate_IntegerRange(t *testing.T) {
	validator := NewValidator(nil)

	min := 0.0
	max := 100.0
	schema := &ParamSchema{
		Name:    "count",
		Type:    TypeInt,
		Minimum: &min,
		Maximum: &max,
	}

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{"valid", 50, false},
		{"lower bound", 0, false},
		{"upper bound", int64(100), false},
		{"too small", -1, true},
		{"too large", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(schema, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidator_Validate_Pattern(t *testing.T) {
	validator := NewValidator(nil)

	pattern := "^[a-z]+$"
	schema := &ParamSchema{Name: "slug", Type: TypeString, Pattern: &pattern}

	if err := validator.Validate(schema, "hello"); err != nil {
		t.Errorf("expected valid slug, got %v", err)
	}

	err := validator.Validate(schema, "Hello World")
	if err == nil {
		t.Fatal("expected pattern mismatch")
	}
	if !strings.Contains(err.Error(), `parameter "slug"`) {
		t.Errorf("error should name the parameter, got %q", err.Error())
	}
}

func TestValidator_Validate_Formats(t *testing.T) {
	validator := NewValidator(nil)

	tests := []struct {
		name    string
		format  Format
		value   string
		wantErr bool
	}{
		{"cidr valid", FormatCIDR, "10.0.0.0/8", false},
		{"cidr invalid", FormatCIDR, "10.0.0.0", true},
		{"semver with prefix", FormatSemver, "v1.2.3", false},
		{"semver without prefix", FormatSemver, "1.2.3", false},
		{"semver invalid", FormatSemver, "one", true},
		{"duration valid", FormatCompactDuration, "1h30m", false},
		{"duration invalid", FormatCompactDuration, "30m1h", true},
		{"ipv4 valid", FormatIPv4, "192.168.1.1", false},
		{"ipv4 invalid", FormatIPv4, "999.1.1.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format := tt.format
			schema := &ParamSchema{Name: "value", Type: TypeString, Format: &format}
			err := validator.Validate(schema, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidator_Validate_ArrayItems(t *testing.T) {
	validator := NewValidator(nil)

	min := 1.0
	minItems := 2
	schema := &ParamSchema{
		Name:     "sizes",
		Type:     TypeInt,
		Minimum:  &min,
		Array:    true,
		MinItems: &minItems,
	}

	if err := validator.Validate(schema, []any{1, 2, 3}); err != nil {
		t.Errorf("expected valid array, got %v", err)
	}
	if err := validator.Validate(schema, []any{1}); err == nil {
		t.Error("expected minItems violation")
	}
	if err := validator.Validate(schema, []any{1, 0}); err == nil {
		t.Error("expected item minimum violation")
	}
}

func TestValidator_Validate_DurationValue(t *testing.T) {
	validator := NewValidator(nil)

	schema := &ParamSchema{Name: "timeout", Type: TypeDuration}
	format := FormatCompactDuration
	schema.Format = &format

	if err := validator.Validate(schema, 90*time.Second); err != nil {
		t.Errorf("expected duration to validate, got %v", err)
	}
}

func TestValidator_Validate_NoConstraintsSkipsCompile(t *testing.T) {
	validator := NewValidator(&ValidationConfig{EnableCache: false})

	schema := &ParamSchema{Name: "anything", Type: TypeString}
	if err := validator.Validate(schema, "whatever"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidator_CacheReuse(t *testing.T) {
	validator := NewValidator(nil)

	max := 10.0
	schema := &ParamSchema{Name: "n", Type: TypeInt, Maximum: &max}

	for i := 0; i < 3; i++ {
		if err := validator.Validate(schema, 5); err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
	}

	if validator.cache.len() != 1 {
		t.Errorf("expected one cached validator, got %d", validator.cache.len())
	}
}

func TestParamSchema_ValidateEnum(t *testing.T) {
	schema := &ParamSchema{Name: "mode", Enum: []string{"fast", "slow"}}

	if err := schema.ValidateEnum("fast"); err != nil {
		t.Errorf("expected fast to be allowed, got %v", err)
	}
	if err := schema.ValidateEnum("medium"); err == nil {
		t.Error("expected medium to be rejected")
	}
}

func TestParamSchema_Check(t *testing.T) {
	bad := "["
	lo, hi := 5.0, 1.0
	unknown := Format("color")

	tests := []struct {
		name   string
		schema ParamSchema
		errMsg string
	}{
		{"bad pattern", ParamSchema{Name: "p", Pattern: &bad}, "invalid regex pattern"},
		{"min above max", ParamSchema{Name: "n", Minimum: &lo, Maximum: &hi}, "cannot be greater than maximum"},
		{"unknown format", ParamSchema{Name: "f", Format: &unknown}, "unknown format"},
		{"unknown type", ParamSchema{Name: "t", Type: "complex"}, "unknown type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Check()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestValidatorCache_EvictsOldest(t *testing.T) {
	c := newValidatorCache(2)
	c.put("a", nil)
	c.put("b", nil)
	c.put("c", nil)

	if _, ok := c.get("a"); ok {
		t.Error("oldest entry should have been evicted")
	}
	for _, key := range []string{"b", "c"} {
		if _, ok := c.get(key); !ok {
			t.Errorf("entry %q should still be cached", key)
		}
	}
	if c.len() != 2 {
		t.Errorf("expected 2 entries, got %d", c.len())
	}
}

func TestFormatExample(t *testing.T) {
	if got := FormatExample(FormatCIDR); got != "10.0.0.0/8" {
		t.Errorf("FormatExample(cidr) = %q", got)
	}
	if got := FormatExample("nope"); got != "" {
		t.Errorf("FormatExample(nope) = %q, want empty", got)
	}
}
