// pre_processor.go implements the GLSL include pre-processor. It scans shader source for
// #include directives and inlines the named files textually, resolving each against an ordered
// list of search directories.
//
// A file is inlined at most once per Process call: a second #include of the same file, including
// an include cycle back to the file being processed, expands to nothing.
package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// includePattern matches `#include "file"` and `#include <file>` lines.
var includePattern = regexp.MustCompile(`^\s*#\s*include\s+(?:"([^"]+)"|<([^>]+)>)\s*(?://.*)?$`)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// includeDirs are searched in order for every include.
	includeDirs []string

	// included holds the cleaned absolute paths inlined during the current Process call.
	included map[string]bool

	// order lists included in the order the files were inlined.
	order []string
}

// PreProcessor resolves #include directives in GLSL source.
type PreProcessor interface {
	// Process returns source with every #include directive replaced by the contents of the
	// named file, recursively. The list of inlined files is reset at the start of each call.
	//
	// Parameters:
	//   - source: the GLSL source
	//
	// Returns:
	//   - string: the expanded source
	//   - error: an error naming the line and file if an include cannot be found or read
	Process(source string) (string, error)

	// ProcessFile reads path and processes its contents. path itself counts as inlined, so the
	// file including itself is a no-op.
	//
	// Parameters:
	//   - path: the shader file
	//
	// Returns:
	//   - string: the expanded source
	//   - error: a read or include resolution error
	ProcessFile(path string) (string, error)

	// Included returns the files inlined by the most recent call, in inlining order.
	//
	// Returns:
	//   - []string: absolute paths of the inlined files
	Included() []string
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor searching the given directories in order.
//
// Parameters:
//   - includeDirs: the include search directories
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(includeDirs ...string) PreProcessor {
	return &preProcessor{includeDirs: includeDirs}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.reset()
	return p.expand(source)
}

func (p *preProcessor) ProcessFile(path string) (string, error) {
	p.reset()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if abs, err := filepath.Abs(path); err == nil {
		p.included[filepath.Clean(abs)] = true
	}
	return p.expand(string(data))
}

func (p *preProcessor) Included() []string {
	return p.order
}

func (p *preProcessor) reset() {
	p.included = make(map[string]bool)
	p.order = nil
}

func (p *preProcessor) expand(source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		m := includePattern.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}
		name := m[1] + m[2]

		path, ok := p.resolve(name)
		if !ok {
			return "", fmt.Errorf("line %d: include %q not found in %v", i+1, name, p.includeDirs)
		}
		if p.included[path] {
			continue
		}
		p.included[path] = true
		p.order = append(p.order, path)

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("line %d: include %q: %w", i+1, name, err)
		}
		expanded, err := p.expand(string(data))
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, expanded)
	}
	return strings.Join(out, "\n"), nil
}

// resolve returns the cleaned absolute path of the first search directory containing name.
func (p *preProcessor) resolve(name string) (string, bool) {
	for _, dir := range p.includeDirs {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return filepath.Clean(candidate), true
		}
		return filepath.Clean(abs), true
	}
	return "", false
}
