package shader

// SourceLoaderBuilderOption is a functional option used to configure a SourceLoader during construction.
type SourceLoaderBuilderOption func(*sourceLoader)

// WithLoaderWorkers sets the maximum number of files processed concurrently.
//
// Parameters:
//   - workers: the worker count, at least 1
//
// Returns:
//   - SourceLoaderBuilderOption: a function that sets the worker count
func WithLoaderWorkers(workers int) SourceLoaderBuilderOption {
	return func(l *sourceLoader) {
		l.workers = max(workers, 1)
	}
}

// WithLoaderIncludeDirs appends include search directories used for every file.
//
// Parameters:
//   - dirs: the include search directories in priority order
//
// Returns:
//   - SourceLoaderBuilderOption: a function that adds the directories
func WithLoaderIncludeDirs(dirs ...string) SourceLoaderBuilderOption {
	return func(l *sourceLoader) {
		l.includeDirs = append(l.includeDirs, dirs...)
	}
}
