package options

import (
	"fmt"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
)

// Kind is the declared value type of an option.
type Kind string

const (
	// KindBool is an on/off toggle.
	KindBool Kind = "bool"

	// KindInt is a bounded integer.
	KindInt Kind = "int"

	// KindEnum is a string restricted to a declared domain.
	KindEnum Kind = "enum"

	// KindString is free text, emitted verbatim as a single argv token.
	KindString Kind = "string"
)

// Spec declares a single option: its type, default, validation rule and the
// keys it cannot be combined with.
type Spec struct {
	// Key is the option key.
	Key string

	// Kind is the declared value type.
	Kind Kind

	// Default is the value the option starts at. Its dynamic type must match Kind.
	Default any

	// Min and Max bound KindInt values inclusively.
	Min int
	Max int

	// Optional permits zero for a KindInt value, meaning "not set".
	Optional bool

	// Enum is the allowed domain for KindEnum values.
	Enum []string

	// Excludes lists option keys that cannot be active together with this one.
	Excludes []string
}

// zero returns the disabled value for the spec's kind.
func (spec Spec) zero() any {
	switch spec.Kind {
	case KindBool:
		return false
	case KindInt:
		return 0
	default:
		return ""
	}
}

// Active reports whether the value takes effect, i.e. differs from the
// disabled state for this kind.
func (spec Spec) Active(value any) bool {
	switch spec.Kind {
	case KindBool:
		enabled, _ := value.(bool)
		return enabled
	case KindInt:
		number, _ := value.(int)
		return number != 0
	case KindEnum:
		text, _ := value.(string)
		return text != "" && value != spec.Default
	default:
		text, _ := value.(string)
		return text != ""
	}
}

// validate checks a candidate value against the declared type and rule.
func (spec Spec) validate(value any) error {
	switch spec.Kind {
	case KindBool:
		if _, ok := value.(bool); !ok {
			return &launcher.ValidationError{Key: spec.Key, Value: value, Reason: fmt.Sprintf("expected bool, got %T", value)}
		}

	case KindInt:
		number, ok := value.(int)
		if !ok {
			return &launcher.ValidationError{Key: spec.Key, Value: value, Reason: fmt.Sprintf("expected int, got %T", value)}
		}
		if number == 0 && spec.Optional {
			return nil
		}
		if number < spec.Min || number > spec.Max {
			return &launcher.ValidationError{
				Key:    spec.Key,
				Value:  value,
				Reason: fmt.Sprintf("value %d outside range %d..%d", number, spec.Min, spec.Max),
			}
		}

	case KindEnum:
		text, ok := value.(string)
		if !ok {
			return &launcher.ValidationError{Key: spec.Key, Value: value, Reason: fmt.Sprintf("expected string, got %T", value)}
		}
		for _, allowed := range spec.Enum {
			if text == allowed {
				return nil
			}
		}
		return &launcher.ValidationError{Key: spec.Key, Value: value, Reason: fmt.Sprintf("value %q not one of %v", text, spec.Enum)}

	case KindString:
		if _, ok := value.(string); !ok {
			return &launcher.ValidationError{Key: spec.Key, Value: value, Reason: fmt.Sprintf("expected string, got %T", value)}
		}

	default:
		return &launcher.ValidationError{Key: spec.Key, Value: value, Reason: fmt.Sprintf("unknown kind %q", spec.Kind)}
	}

	return nil
}

// Schema is the declared option set for one tool, in a fixed stable order.
type Schema struct {
	tool  launcher.ToolKind
	specs []Spec
	index map[string]int
}

// NewSchema builds a schema from the declared specs. Duplicate keys,
// kind/default mismatches and dangling exclusion references are programming
// errors and are rejected here rather than at mutation time.
func NewSchema(tool launcher.ToolKind, specs []Spec) (*Schema, error) {
	schema := &Schema{
		tool:  tool,
		specs: specs,
		index: make(map[string]int, len(specs)),
	}

	for i, spec := range specs {
		if _, exists := schema.index[spec.Key]; exists {
			return nil, fmt.Errorf("duplicate option key %q", spec.Key)
		}
		schema.index[spec.Key] = i

		if spec.Default == nil {
			continue
		}
		if err := spec.validate(spec.Default); err != nil {
			return nil, fmt.Errorf("default for %q: %w", spec.Key, err)
		}
	}

	for _, spec := range specs {
		for _, excluded := range spec.Excludes {
			if _, exists := schema.index[excluded]; !exists {
				return nil, fmt.Errorf("option %q excludes undeclared key %q", spec.Key, excluded)
			}
		}
	}

	return schema, nil
}

// MustSchema is NewSchema for statically declared schemas.
func MustSchema(tool launcher.ToolKind, specs []Spec) *Schema {
	schema, err := NewSchema(tool, specs)
	if err != nil {
		panic(err)
	}

	return schema
}

// Tool returns the tool the schema belongs to.
func (schema *Schema) Tool() launcher.ToolKind {
	return schema.tool
}

// Lookup returns the spec declared for the key.
func (schema *Schema) Lookup(key string) (Spec, bool) {
	i, ok := schema.index[key]
	if !ok {
		return Spec{}, false
	}

	return schema.specs[i], true
}

// Keys returns all declared option keys in declaration order.
func (schema *Schema) Keys() []string {
	keys := make([]string, len(schema.specs))
	for i, spec := range schema.specs {
		keys[i] = spec.Key
	}

	return keys
}
