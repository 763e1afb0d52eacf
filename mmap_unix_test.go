//go:build unix

package imagemeta

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"

	"github.com/kovidgoyal/imagemeta/internal/testimages"
	"github.com/stretchr/testify/require"
)

func TestTruncatedWhileMapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paw.png")
	require.NoError(t, os.WriteFile(path, testimages.PNG(), 0o600))
	f, err := open_file(path)
	require.NoError(t, err)
	defer f.Close()
	s, ok := f.(*mapped_file)
	require.True(t, ok)

	require.NoError(t, os.Truncate(path, 0))
	md, err := load_in_memory(s)
	require.Error(t, err)
	require.Nil(t, md)

	// the fault handling does not leak out of the call
	require.False(t, debug.SetPanicOnFault(false))
}
