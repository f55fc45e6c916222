package options

import (
	"fmt"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
)

// Model holds the mutable option values for one tool, validated against the
// declared schema on every mutation. A model is confined to the coordinating
// goroutine; downstream consumers work from immutable snapshots.
type Model struct {
	schema *Schema
	values map[string]any
}

// NewModel creates a model seeded with the schema defaults.
func NewModel(schema *Schema) *Model {
	values := make(map[string]any, len(schema.specs))

	for _, spec := range schema.specs {
		if spec.Default != nil {
			values[spec.Key] = spec.Default
			continue
		}
		values[spec.Key] = spec.zero()
	}

	return &Model{schema: schema, values: values}
}

// Schema returns the declared schema backing the model.
func (model *Model) Schema() *Schema {
	return model.schema
}

// Get returns the current value for the key.
func (model *Model) Get(key string) (any, error) {
	if _, ok := model.schema.Lookup(key); !ok {
		return nil, fmt.Errorf("%w: %q", launcher.ErrUnknownOption, key)
	}

	return model.values[key], nil
}

// Set validates and stores a value. Unknown keys, type mismatches, values
// outside declared bounds and values outside an enum domain are rejected;
// nothing is clamped silently.
func (model *Model) Set(key string, value any) error {
	spec, ok := model.schema.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", launcher.ErrUnknownOption, key)
	}

	if err := spec.validate(value); err != nil {
		return err
	}

	model.values[key] = value

	return nil
}

// Snapshot returns an immutable copy of the current values for downstream
// use. Mutual exclusion between options is enforced here, at read time.
func (model *Model) Snapshot() (Snapshot, error) {
	for _, spec := range model.schema.specs {
		if len(spec.Excludes) == 0 || !spec.Active(model.values[spec.Key]) {
			continue
		}

		for _, excluded := range spec.Excludes {
			other, _ := model.schema.Lookup(excluded)
			if other.Active(model.values[excluded]) {
				return Snapshot{}, &launcher.ValidationError{
					Key:    spec.Key,
					Value:  model.values[spec.Key],
					Reason: fmt.Sprintf("cannot be combined with %q", excluded),
				}
			}
		}
	}

	values := make(map[string]any, len(model.values))
	for key, value := range model.values {
		values[key] = value
	}

	return Snapshot{tool: model.schema.tool, values: values}, nil
}

// Snapshot is an immutable view of an option set at a point in time.
type Snapshot struct {
	tool   launcher.ToolKind
	values map[string]any
}

// Tool returns the tool the snapshot belongs to.
func (snapshot Snapshot) Tool() launcher.ToolKind {
	return snapshot.tool
}

// Bool returns the value for a bool option, false when unset.
func (snapshot Snapshot) Bool(key string) bool {
	value, _ := snapshot.values[key].(bool)
	return value
}

// Int returns the value for an int option, zero when unset.
func (snapshot Snapshot) Int(key string) int {
	value, _ := snapshot.values[key].(int)
	return value
}

// String returns the value for a string or enum option, empty when unset.
func (snapshot Snapshot) String(key string) string {
	value, _ := snapshot.values[key].(string)
	return value
}
