// Test Type: Unit Test
// Description: Tests for the filesystem package - the OS and afero
// implementations of the FS interface behave alike

package filesystem_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/modot/pkg/filesystem"
	"github.com/arthur-debert/modot/pkg/types"
)

func implementations(t *testing.T) map[string]struct {
	fs   types.FS
	root string
} {
	t.Helper()
	return map[string]struct {
		fs   types.FS
		root string
	}{
		"os":    {fs: filesystem.NewOS(), root: t.TempDir()},
		"afero": {fs: filesystem.NewAferoFS(afero.NewMemMapFs()), root: "/work"},
	}
}

func TestReadWrite(t *testing.T) {
	for name, impl := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(impl.root, "dir", "file.txt")
			require.NoError(t, impl.fs.MkdirAll(filepath.Dir(path), 0755))
			require.NoError(t, impl.fs.WriteFile(path, []byte("content"), 0644))

			data, err := impl.fs.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "content", string(data))

			info, err := impl.fs.Stat(path)
			require.NoError(t, err)
			assert.False(t, info.IsDir())
		})
	}
}

func TestReadFile_DirectoryFails(t *testing.T) {
	for name, impl := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(impl.root, "somedir")
			require.NoError(t, impl.fs.MkdirAll(dir, 0755))

			_, err := impl.fs.ReadFile(dir)
			assert.Error(t, err)
		})
	}
}

func TestRenameAndRemove(t *testing.T) {
	for name, impl := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			oldPath := filepath.Join(impl.root, "old.txt")
			newPath := filepath.Join(impl.root, "new.txt")
			require.NoError(t, impl.fs.MkdirAll(impl.root, 0755))
			require.NoError(t, impl.fs.WriteFile(oldPath, []byte("x"), 0644))

			require.NoError(t, impl.fs.Rename(oldPath, newPath))
			_, err := impl.fs.Stat(oldPath)
			assert.Error(t, err)

			require.NoError(t, impl.fs.Remove(newPath))
			_, err = impl.fs.Stat(newPath)
			assert.Error(t, err)
		})
	}
}

func TestReadDir(t *testing.T) {
	for name, impl := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, impl.fs.MkdirAll(filepath.Join(impl.root, "sub"), 0755))
			require.NoError(t, impl.fs.WriteFile(filepath.Join(impl.root, "a.txt"), []byte("a"), 0644))

			entries, err := impl.fs.ReadDir(impl.root)
			require.NoError(t, err)
			require.Len(t, entries, 2)

			byName := map[string]bool{}
			for _, entry := range entries {
				byName[entry.Name()] = entry.IsDir()
			}
			assert.True(t, byName["sub"])
			assert.False(t, byName["a.txt"])
		})
	}
}
