// Package flagtable renders option snapshots into argv tokens using a
// per-tool conformance table: the versioned, authoritative mapping from
// option key to flag template. Tables are YAML documents embedded next to
// each tool package and kept in lockstep with the external tool's releases.
package flagtable

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/options"
)

// Entry maps one option key to its flag template.
type Entry struct {
	// Key is the option key the entry renders.
	Key string `json:"key"`

	// Template is the flag spelling. Whitespace separates argv tokens;
	// "{key}" placeholders are replaced with the named option's value after
	// tokenization, so substituted values always stay single tokens.
	Template string `json:"template,omitempty"`

	// Split emits the option value split on whitespace, one argv token per
	// field. Used for the free-form extra-arguments option.
	Split bool `json:"split,omitempty"`
}

// Table is the conformance table for one external tool.
type Table struct {
	// Tool is the executable the table describes.
	Tool string `json:"tool"`

	// ToolVersion is the tool release the flag spellings were verified against.
	ToolVersion string `json:"toolVersion"`

	// Flags lists the entries in authoritative emission order.
	Flags []Entry `json:"flags"`
}

var placeholderPattern = regexp.MustCompile(`\{([a-z0-9-]+)\}`)

// Parse decodes a conformance table from YAML.
func Parse(data []byte) (*Table, error) {
	var table Table
	if err := yaml.UnmarshalStrict(data, &table); err != nil {
		return nil, fmt.Errorf("parse flag table: %w", err)
	}

	if table.Tool == "" {
		return nil, fmt.Errorf("flag table: tool name is required")
	}

	for i, entry := range table.Flags {
		if entry.Key == "" {
			return nil, fmt.Errorf("flag table %s: entry %d has no key", table.Tool, i)
		}
		if entry.Template == "" && !entry.Split {
			return nil, fmt.Errorf("flag table %s: entry %q has neither template nor split", table.Tool, entry.Key)
		}
	}

	return &table, nil
}

// Validate checks every entry key and every placeholder against the schema.
func (table *Table) Validate(schema *options.Schema) error {
	for _, entry := range table.Flags {
		if _, ok := schema.Lookup(entry.Key); !ok {
			return fmt.Errorf("flag table %s: entry %q not declared in schema", table.Tool, entry.Key)
		}

		for _, match := range placeholderPattern.FindAllStringSubmatch(entry.Template, -1) {
			if _, ok := schema.Lookup(match[1]); !ok {
				return fmt.Errorf("flag table %s: entry %q references undeclared key %q", table.Tool, entry.Key, match[1])
			}
		}
	}

	return nil
}

// MustParse parses and validates a table, panicking on error. Intended for
// embedded tables checked at package initialization.
func MustParse(data []byte, schema *options.Schema) *Table {
	table, err := Parse(data)
	if err != nil {
		panic(err)
	}

	if err := table.Validate(schema); err != nil {
		panic(err)
	}

	return table
}

// Render walks the table in declaration order and emits argv tokens for every
// option whose value is active in the snapshot. Identical snapshots yield
// token-for-token identical output.
func (table *Table) Render(schema *options.Schema, snapshot options.Snapshot) ([]string, error) {
	var args []string

	for _, entry := range table.Flags {
		spec, ok := schema.Lookup(entry.Key)
		if !ok {
			return nil, fmt.Errorf("flag table %s: entry %q not declared in schema", table.Tool, entry.Key)
		}

		value := snapshotValue(snapshot, spec)
		if !spec.Active(value) {
			continue
		}

		if entry.Split {
			args = append(args, strings.Fields(snapshot.String(entry.Key))...)
			continue
		}

		for _, token := range strings.Fields(entry.Template) {
			rendered, err := substitute(token, schema, snapshot)
			if err != nil {
				return nil, fmt.Errorf("flag table %s: entry %q: %w", table.Tool, entry.Key, err)
			}
			args = append(args, rendered)
		}
	}

	return args, nil
}

func substitute(token string, schema *options.Schema, snapshot options.Snapshot) (string, error) {
	var substErr error

	rendered := placeholderPattern.ReplaceAllStringFunc(token, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]

		spec, ok := schema.Lookup(key)
		if !ok {
			substErr = fmt.Errorf("placeholder references undeclared key %q", key)
			return match
		}

		switch spec.Kind {
		case options.KindInt:
			return strconv.Itoa(snapshot.Int(key))
		default:
			return snapshot.String(key)
		}
	})

	return rendered, substErr
}

func snapshotValue(snapshot options.Snapshot, spec options.Spec) any {
	switch spec.Kind {
	case options.KindBool:
		return snapshot.Bool(spec.Key)
	case options.KindInt:
		return snapshot.Int(spec.Key)
	default:
		return snapshot.String(spec.Key)
	}
}
