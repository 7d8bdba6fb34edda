package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	cmd := newRootCommand(logrus.NewEntry(logger))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogImportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"level,type,question,reading,meaning\n"+
			"N5,kanji,山,やま,Mountain\n"+
			"N9,kanji,川,かわ,River\n"), 0o644))

	out, err := runCommand(t, "catalog", "import", path)
	require.NoError(t, err)
	assert.Equal(t, "Processed: 2, Imported: 1, Skipped: 0, Errors: 1\n", out)
}

func TestExportImportCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(dir, "sakura.db"))
	t.Setenv("SEED_DEMO_USER", "true")
	t.Setenv("PLACEHOLDER_ITEMS", "1")

	_, err := runCommand(t, "export", "missing-user")
	assert.Error(t, err)

	code, err := runCommand(t, "export", "demo-uuid-123")
	require.NoError(t, err)
	require.NotEmpty(t, code)

	// Restore into a fresh database.
	t.Setenv("DB_PATH", filepath.Join(dir, "other.db"))
	t.Setenv("SEED_DEMO_USER", "false")
	out, err := runCommand(t, "import", code)
	require.NoError(t, err)
	assert.Contains(t, out, `"username": "sakura_fan"`)
	assert.NotContains(t, out, "password")

	out, err = runCommand(t, "accounts")
	require.NoError(t, err)
	assert.Contains(t, out, "sakura_fan")

	_, err = runCommand(t, "import", "garbage!")
	assert.Error(t, err)
}
