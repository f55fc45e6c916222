package launcher

import "strings"

// CommandSpec is a fully built invocation for one of the managed tools:
// the executable name plus an ordered argument vector. A spec is derived from
// an option snapshot and never mutated after construction.
type CommandSpec struct {
	// Tool is the tool the command targets.
	Tool ToolKind

	// Executable is the binary name, resolved to an absolute path at start time.
	Executable string

	// Args is the ordered argument vector. Tokens are passed to the process
	// as-is; nothing is ever routed through a shell.
	Args []string
}

// Argv returns the executable followed by a copy of the argument vector.
func (spec CommandSpec) Argv() []string {
	argv := make([]string, 0, len(spec.Args)+1)
	argv = append(argv, spec.Executable)
	argv = append(argv, spec.Args...)

	return argv
}

// Preview renders the command as a human-readable one-liner. Tokens containing
// whitespace are quoted for display only; the rendered string is never executed.
func (spec CommandSpec) Preview() string {
	parts := make([]string, 0, len(spec.Args)+1)

	for _, token := range spec.Argv() {
		if strings.ContainsAny(token, " \t") {
			parts = append(parts, `"`+token+`"`)
			continue
		}
		parts = append(parts, token)
	}

	return strings.Join(parts, " ")
}
