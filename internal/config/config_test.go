package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
	require.NoError(t, c.Validate())
}

func TestLoadFileAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_k: 3\noutput_format: xlsx\n"), 0o644))
	t.Setenv("SALESREPORT_OUTPUT_DIR", "out")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.TopK)
	assert.Equal(t, "xlsx", c.OutputFormat)
	assert.Equal(t, "out", c.OutputDir)
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("SALESREPORT_DB_DRIVER=sqlite\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SALESREPORT_DB_DRIVER") })

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.DBDriver)
}

func TestSaveThenLoad(t *testing.T) {
	isolate(t)
	c := Defaults()
	require.NoError(t, c.Set("top_k", "7"))
	require.NoError(t, c.Set("db_driver", "postgres"))
	require.NoError(t, Save(c, ""))

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, got.TopK)
	assert.Equal(t, "pgx", got.DBDriver)
}

func TestSetRejectsInvalid(t *testing.T) {
	c := Defaults()
	assert.Error(t, c.Set("top_k", "0"))
	assert.Error(t, c.Set("output_format", "ods"))
	assert.Error(t, c.Set("db_driver", "mysql"))
	assert.Error(t, c.Set("delimiter", ";;"))
	assert.Error(t, c.Set("nope", "1"))
}

func TestParseSeparators(t *testing.T) {
	d, err := ParseDelimiter("tab")
	require.NoError(t, err)
	assert.Equal(t, '\t', d)
	d, err = ParseDelimiter("")
	require.NoError(t, err)
	assert.Equal(t, rune(0), d)

	dec, err := ParseDecimal("comma")
	require.NoError(t, err)
	assert.Equal(t, ',', dec)

	th, err := ParseThousands("space")
	require.NoError(t, err)
	assert.Equal(t, ' ', th)

	_, err = ParseThousands("x")
	assert.Error(t, err)
}
