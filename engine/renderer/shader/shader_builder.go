package shader

import "github.com/Carmen-Shannon/oxy-gl/common"

// ProgramBuilderOption is a functional option used to configure a Program during construction.
type ProgramBuilderOption func(*program)

// WithLabel sets the name used for the program in diagnostics. An empty label keeps the default.
//
// Parameters:
//   - label: the label
//
// Returns:
//   - ProgramBuilderOption: a function that sets the label
func WithLabel(label string) ProgramBuilderOption {
	return func(p *program) {
		p.label = common.Coalesce(label, p.label)
	}
}

// WithEntryPoint sets the entry point used when Load reads a SPIR-V file.
//
// Parameters:
//   - entryPoint: the entry point function name
//
// Returns:
//   - ProgramBuilderOption: a function that sets the entry point
func WithEntryPoint(entryPoint string) ProgramBuilderOption {
	return func(p *program) {
		p.entryPoint = entryPoint
	}
}

// WithIncludeDirs appends directories searched by Load for #include directives, after the
// directory of the loaded file.
//
// Parameters:
//   - dirs: the include search directories in priority order
//
// Returns:
//   - ProgramBuilderOption: a function that adds the directories
func WithIncludeDirs(dirs ...string) ProgramBuilderOption {
	return func(p *program) {
		p.includeDirs = append(p.includeDirs, dirs...)
	}
}
