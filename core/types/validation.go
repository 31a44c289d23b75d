package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
)

// Validator validates converted argument values against their schemas
type Validator struct {
	config *ValidationConfig
	cache  *validatorCache
}

// NewValidator creates a new validator with given config
func NewValidator(config *ValidationConfig) *Validator {
	if config == nil {
		config = DefaultValidationConfig()
	}

	var cache *validatorCache
	if config.EnableCache {
		cache = newValidatorCache(config.MaxCacheSize)
	}

	return &Validator{
		config: config,
		cache:  cache,
	}
}

// Validate checks a converted value against a parameter schema.
// Schemas without constraints are accepted without compiling anything.
func (v *Validator) Validate(schema *ParamSchema, value any) error {
	if !schema.HasConstraints() {
		return nil
	}

	instance, err := toJSONValue(value)
	if err != nil {
		return fmt.Errorf("parameter %q: %w", schema.Name, err)
	}

	validator, err := v.getValidator(schema.ToJSONSchema())
	if err != nil {
		return fmt.Errorf("validator compilation failed: %w", err)
	}

	if err := validator.Validate(instance); err != nil {
		return convertValidationError(schema.Name, err)
	}

	return nil
}

// ValidateEnum checks a raw token against the allowed choices
func (p *ParamSchema) ValidateEnum(token string) error {
	if len(p.Enum) == 0 {
		return nil
	}

	for _, allowed := range p.Enum {
		if token == allowed {
			return nil
		}
	}

	return fmt.Errorf("parameter %q: value %q must be one of %v", p.Name, token, p.Enum)
}

// getValidator gets cached validator or compiles new one
func (v *Validator) getValidator(schema JSONSchema) (*jsonschema.Schema, error) {
	key, err := cacheKey(schema)
	if err != nil {
		return nil, err
	}

	if v.cache != nil {
		if validator, ok := v.cache.get(key); ok {
			return validator, nil
		}
	}

	validator, err := v.compileSchema(schema)
	if err != nil {
		return nil, err
	}

	if v.cache != nil {
		v.cache.put(key, validator)
	}

	return validator, nil
}

// compileSchema compiles a JSON Schema document
func (v *Validator) compileSchema(schema JSONSchema) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = v.config.AssertFormat

	// Extend the standard format validators with our own
	if compiler.Formats == nil {
		compiler.Formats = make(map[string]func(interface{}) bool)
	}
	for name, validator := range getFormatValidators() {
		compiler.Formats[name] = validator
	}

	schemaJSON, err := schema.compactJSON()
	if err != nil {
		return nil, err
	}

	url := "schema://argument.json"
	if err := compiler.AddResource(url, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}

	return compiler.Compile(url)
}

// getFormatValidators returns the custom format validators
func getFormatValidators() map[string]func(interface{}) bool {
	return map[string]func(interface{}) bool{
		"duration": func(v interface{}) bool {
			s, ok := v.(string)
			if !ok {
				return true // Type validation happens separately
			}
			_, err := ParseDuration(s)
			return err == nil
		},
		"cidr": func(v interface{}) bool {
			s, ok := v.(string)
			if !ok {
				return true
			}
			_, err := netip.ParsePrefix(s)
			return err == nil
		},
		"semver": func(v interface{}) bool {
			s, ok := v.(string)
			if !ok {
				return true
			}
			// semver.IsValid requires the "v" prefix
			if !strings.HasPrefix(s, "v") {
				s = "v" + s
			}
			return semver.IsValid(s)
		},
	}
}

// toJSONValue normalizes a converted Go value into the shapes the
// jsonschema package accepts (json.Number, string, bool, []any).
func toJSONValue(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool:
		return v, nil
	case time.Duration:
		return FormatDuration(v), nil
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			converted, err := toJSONValue(elem)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("value %v is not representable: %w", value, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// convertValidationError flattens a jsonschema.ValidationError into a single
// readable line naming the parameter.
func convertValidationError(name string, err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	var messages []string
	collectLeafMessages(ve, &messages)
	if len(messages) == 0 {
		messages = append(messages, ve.Message)
	}

	return fmt.Errorf("parameter %q: %s", name, strings.Join(messages, "; "))
}

func collectLeafMessages(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		msg := ve.Message
		if ve.InstanceLocation != "" {
			msg = fmt.Sprintf("item %s: %s", strings.TrimPrefix(ve.InstanceLocation, "/"), msg)
		}
		*out = append(*out, msg)
		return
	}
	for _, cause := range ve.Causes {
		collectLeafMessages(cause, out)
	}
}
