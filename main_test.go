package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/nconklindev/shopmigrate/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeExport(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll([][]string{
		{"Typ", "Artikelnummer", "Namn", "Beskrivning", "Ordinarie pris", "Attribut 1 namn", "Attribut 1 värde(n)"},
		{"variable", "BT", "Boot", "Warm", "100", "Fotstorlek", ""},
		{"variation", "BT-36", "Boot - 36", "", "100", "Fotstorlek", "36"},
		{"variation", "BT-37", "Boot - 37", "", "100", "Fotstorlek", "37"},
		{"variation", "BT-38", "Boot - 38", "", "100", "Fotstorlek", "38"},
		{"variation", "BT-40", "Boot - 40", "", "100", "Fotstorlek", "40"},
	}))
	require.NoError(t, f.Close())
}

func TestConvertThenVerify(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.csv")
	output := filepath.Join(dir, "import.csv")
	writeExport(t, input)

	out, err := run(t, "convert", input, "-o", output, "--vendor", "Stall", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Groups written")
	assert.FileExists(t, output)

	out, err = run(t, "verify", output)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")

	_, err = run(t, "verify", output, "--max-variants", "1")
	assert.ErrorIs(t, err, errVerifyFailed)
}

func TestPreviewCommand(t *testing.T) {
	input := filepath.Join(t.TempDir(), "export.csv")
	writeExport(t, input)

	out, err := run(t, "preview", input)
	require.NoError(t, err)
	assert.Contains(t, out, "5 rows, sv headers")
	assert.Contains(t, out, "Artikelnummer")
}

func TestConfigFlags(t *testing.T) {
	input := filepath.Join(t.TempDir(), "export.csv")
	writeExport(t, input)

	_, err := run(t, "convert", input, "--max-variants", "91")
	assert.ErrorIs(t, err, config.ErrInvalidMaxVariants)

	_, err = run(t, "convert", input, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = run(t, "convert")
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopmigrate.yaml")

	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Grouping.MaxVariants, cfg.Grouping.MaxVariants)

	_, err = run(t, "config", "init", path)
	assert.Error(t, err)
}
