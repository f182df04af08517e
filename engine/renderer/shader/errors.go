package shader

import (
	"errors"
	"fmt"
)

// ErrProgramReleased is the cause of the panic raised when a binding slot is written after its
// program was released or collected.
var ErrProgramReleased = errors.New("shader: program released")

// CompileError reports a shader stage that failed to compile.
type CompileError struct {
	ShaderType ShaderType
	Label      string
	Log        string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: %s %q failed to compile:\n%s", e.ShaderType, e.Label, e.Log)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	ShaderType ShaderType
	Label      string
	Log        string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader: %s program %q failed to link:\n%s", e.ShaderType, e.Label, e.Log)
}

// ResourceNotFoundError is the panic value of a slot lookup for a name that reflection did not
// discover.
type ResourceNotFoundError struct {
	// Interface names the table searched ("input", "output", "uniform", "sampler", "image" or
	// "storage buffer").
	Interface string
	Name      string
	Label     string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("shader: program %q has no active %s named %q", e.Label, e.Interface, e.Name)
}
