package shader

import (
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
)

// SourceFile is one shader file read and pre-processed by a SourceLoader.
type SourceFile struct {
	Path     string
	Source   string
	Included []string
	Err      error
}

// Compile compiles the pre-processed source, labelled with the file path. A file that failed to
// load returns its load error and a nil Program.
//
// Parameters:
//   - b: the backend bound to the current context
//   - shaderType: the stage to compile for
//   - opts: a variadic list of ProgramBuilderOption functions to configure the program
//
// Returns:
//   - Program: the program
//   - error: the load error, or a *CompileError or *LinkError
func (f SourceFile) Compile(b backend.Backend, shaderType ShaderType, opts ...ProgramBuilderOption) (Program, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return FromSource(b, f.Source, shaderType, append([]ProgramBuilderOption{WithLabel(f.Path)}, opts...)...)
}

// sourceLoader is the implementation of the SourceLoader interface.
type sourceLoader struct {
	workers     int
	includeDirs []string
	pool        worker.DynamicWorkerPool
}

// SourceLoader reads and pre-processes shader files in parallel. Only file reading and include
// expansion run on the pool; compilation must still happen on the context thread through
// SourceFile.Compile.
type SourceLoader interface {
	// Load reads and pre-processes every path. Each file's includes are resolved against its own
	// directory first, then the loader's include directories.
	//
	// Parameters:
	//   - paths: the shader files
	//
	// Returns:
	//   - []SourceFile: one result per path, in the order given
	Load(paths ...string) []SourceFile
}

var _ SourceLoader = &sourceLoader{}

// NewSourceLoader creates a SourceLoader backed by a dynamic worker pool.
//
// Parameters:
//   - opts: a variadic list of SourceLoaderBuilderOption functions to configure the loader
//
// Returns:
//   - SourceLoader: the loader
func NewSourceLoader(opts ...SourceLoaderBuilderOption) SourceLoader {
	l := &sourceLoader{
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, 64, 1*time.Second)
	return l
}

func (l *sourceLoader) Load(paths ...string) []SourceFile {
	results := make([]SourceFile, len(paths))

	// the pool's own Wait blocks until workers idle out, so a WaitGroup marks completion
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		idx, p := i, path
		l.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				dirs := append([]string{filepath.Dir(p)}, l.includeDirs...)
				pp := NewPreProcessor(dirs...)
				source, err := pp.ProcessFile(p)
				results[idx] = SourceFile{Path: p, Source: source, Included: pp.Included(), Err: err}
				return nil, nil
			},
		})
	}
	wg.Wait()
	return results
}
