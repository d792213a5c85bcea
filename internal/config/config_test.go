package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pcem.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_MachineSection(t *testing.T) {
	path := writeConfig(t, "[machine]\nmidi = 3\n")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.MachineInt("midi", 0))
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.MachineInt("midi", 0))
	assert.Equal(t, 7, s.MachineInt("midi", 7))
}

func TestLoad_UnparsableFileFails(t *testing.T) {
	path := writeConfig(t, "[machine\nmidi = ")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestMachineInt_AbsentKeyUsesDefault(t *testing.T) {
	path := writeConfig(t, "[machine]\ngameport = 1\n")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, s.MachineInt("midi", 0))
	assert.Equal(t, 1, s.MachineInt("gameport", 0))
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, 5, Defaults().MachineInt("midi", 5))
}
