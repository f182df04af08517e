package shader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend/backendtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLoaderKeepsPathOrder(t *testing.T) {
	dir, shared := t.TempDir(), t.TempDir()
	writeFiles(t, shared, map[string]string{"lib.glsl": "float lib() { return 1.0; }"})
	files := map[string]string{"missing.glsl": "#include \"absent.glsl\""}
	var paths []string
	for _, name := range []string{"a.frag", "b.frag", "c.frag", "d.frag", "missing.glsl"} {
		if _, ok := files[name]; !ok {
			files[name] = "#include \"lib.glsl\"\n// " + name
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	writeFiles(t, dir, files)

	results := NewSourceLoader(WithLoaderWorkers(2), WithLoaderIncludeDirs(shared)).Load(paths...)
	require.Len(t, results, len(paths))
	for i, res := range results[:4] {
		assert.Equal(t, paths[i], res.Path)
		require.NoError(t, res.Err)
		assert.Equal(t, "float lib() { return 1.0; }\n// "+filepath.Base(paths[i]), res.Source)
		assert.Len(t, res.Included, 1)
	}
	assert.ErrorContains(t, results[4].Err, "absent.glsl")

	rec := backendtest.New(64, 64)
	p, err := results[4].Compile(rec, ShaderTypeFragment)
	assert.Nil(t, p)
	assert.Error(t, err)
}

func TestSourceFileCompile(t *testing.T) {
	rec := backendtest.New(64, 64)
	file := SourceFile{Path: "inline.vert", Source: vertexSource}

	p, err := file.Compile(rec, ShaderTypeVertex)
	require.NoError(t, err)
	assert.Equal(t, "inline.vert", p.Label())
	assert.Len(t, p.Inputs(), 3)
}

func TestSourceWatcherReportsWrites(t *testing.T) {
	dir, includes := t.TempDir(), t.TempDir()
	watched := filepath.Join(dir, "watched.frag")
	writeFiles(t, dir, map[string]string{"watched.frag": "v1", "ignored.frag": "v1"})
	writeFiles(t, includes, map[string]string{"lib.glsl": "v1"})

	w, err := NewSourceWatcher(watched, includes)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.frag"), []byte("v2"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("v2"), 0o644))
	assert.Equal(t, filepath.Clean(watched), nextChange(t, w))

	lib := filepath.Join(includes, "lib.glsl")
	require.NoError(t, os.WriteFile(lib, []byte("v2"), 0o644))
	assert.Equal(t, filepath.Clean(lib), nextChange(t, w))

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

// nextChange returns the next reported path, skipping repeats of the same write.
func nextChange(t *testing.T, w SourceWatcher) string {
	t.Helper()
	timeout := time.After(5 * time.Second)
	var last string
	for {
		select {
		case path := <-w.Changes():
			last = path
		case <-time.After(200 * time.Millisecond):
			if last != "" {
				return last
			}
		case <-timeout:
			t.Fatal("no change reported")
			return ""
		}
	}
}
