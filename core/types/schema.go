package types

import (
	"fmt"
	"regexp"
)

// ParamType represents the value type of a CLI argument
type ParamType string

const (
	TypeString   ParamType = "string"
	TypeInt      ParamType = "integer"
	TypeFloat    ParamType = "float"
	TypeBool     ParamType = "boolean"
	TypeDuration ParamType = "duration"
)

// IsNumeric reports whether values of t compare as numbers
func IsNumeric(t ParamType) bool {
	return t == TypeInt || t == TypeFloat
}

// IsValidType checks if a type is one of the known parameter types
func IsValidType(t ParamType) bool {
	switch t {
	case TypeString, TypeInt, TypeFloat, TypeBool, TypeDuration:
		return true
	default:
		return false
	}
}

// ParamSchema describes the constraints on a single argument value.
// It is the validation view of an argument declaration.
type ParamSchema struct {
	Name        string    // Destination name
	Type        ParamType // Element type of the value; empty when a custom converter decides it
	Description string    // Help text
	Default     any       // Default value if not provided

	// Validation constraints
	Minimum *float64 // For numeric types (int, float)
	Maximum *float64 // For numeric types (int, float)
	Enum    []string // Allowed values, compared on the raw token
	Pattern *string  // Regex pattern for string validation
	Format  *Format  // Typed format (uri, hostname, cidr, semver, duration, etc.)

	// Multi-valued arguments (nargs *, +, N) validate as arrays
	Array    bool
	MinItems *int
	MaxItems *int
}

// Check validates the schema itself. Called once at declaration time.
func (p *ParamSchema) Check() error {
	if p.Type != "" && !IsValidType(p.Type) {
		return fmt.Errorf("unknown type %q", p.Type)
	}

	if p.Pattern != nil {
		if _, err := regexp.Compile(*p.Pattern); err != nil {
			return fmt.Errorf("invalid regex pattern %q: %w", *p.Pattern, err)
		}
	}

	if p.Minimum != nil && p.Maximum != nil && *p.Minimum > *p.Maximum {
		return fmt.Errorf("minimum (%v) cannot be greater than maximum (%v)", *p.Minimum, *p.Maximum)
	}

	if p.Format != nil && !IsValidFormat(*p.Format) {
		return fmt.Errorf("unknown format %q (supported: %s)", *p.Format, formatNames())
	}

	if p.MinItems != nil && p.MaxItems != nil && *p.MinItems > *p.MaxItems {
		return fmt.Errorf("MinItems (%d) cannot be greater than MaxItems (%d)", *p.MinItems, *p.MaxItems)
	}

	return nil
}

// HasConstraints reports whether the schema carries anything worth validating
// beyond the type conversion itself.
func (p *ParamSchema) HasConstraints() bool {
	return p.Minimum != nil || p.Maximum != nil || len(p.Enum) > 0 ||
		p.Pattern != nil || p.Format != nil || p.MinItems != nil || p.MaxItems != nil
}
