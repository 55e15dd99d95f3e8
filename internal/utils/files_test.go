package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/salesreport-cli/internal/utils"
)

func TestSafeWriteFileCreatesParents(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "out.txt")
	require.NoError(t, utils.SafeWriteFile(p, []byte("hello")))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	_, err = os.Stat(p + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestPrettyJSON(t *testing.T) {
	b, err := utils.PrettyJSON(map[string]int{"rows": 3})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"rows\": 3\n}", string(b))
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sales")
	assert.Equal(t, p, utils.UniquePath(p))

	require.NoError(t, os.MkdirAll(p, 0o755))
	assert.Equal(t, p+"__2", utils.UniquePath(p))

	require.NoError(t, os.MkdirAll(p+"__2", 0o755))
	assert.Equal(t, p+"__3", utils.UniquePath(p))

	f := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	assert.Equal(t, filepath.Join(dir, "report__2.csv"), utils.UniquePath(f))
}
