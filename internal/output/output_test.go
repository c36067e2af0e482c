package output

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lizzyg/envparse"
	moderr "github.com/lizzyg/envparse/errors"
)

var sample = map[string]string{"B": "true", "A": "x=y", "C": `"quoted"`}

func render(t *testing.T, format string, m map[string]string) string {
	t.Helper()
	w, err := NewWriter(format)
	require.NoError(t, err)
	var b strings.Builder
	require.NoError(t, w.Write(&b, m))
	return b.String()
}

func TestEnvWriter(t *testing.T) {
	out := render(t, "env", sample)
	assert.Equal(t, "A=x=y\nB=true\nC=\"quoted\"\n", out)
	assert.Equal(t, sample, envparse.Parse(out))
}

func TestJSONWriter(t *testing.T) {
	assert.Equal(t, "{\n  \"A\": \"x=y\",\n  \"B\": \"true\",\n  \"C\": \"\\\"quoted\\\"\"\n}\n", render(t, "json", sample))
}

func TestYAMLWriter(t *testing.T) {
	out := render(t, "yaml", sample)
	assert.True(t, strings.HasPrefix(out, "A: x=y\n"), out)

	var back map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &back))
	assert.Equal(t, sample, back)
}

func TestNewWriterUnknown(t *testing.T) {
	_, err := NewWriter("toml")
	assert.True(t, errors.Is(err, moderr.ErrUnknownFormat))

	var b strings.Builder
	assert.True(t, errors.Is(Encode(&b, "env", sample), moderr.ErrUnknownFormat))
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("old=1\n"), 0o600))

	require.NoError(t, WriteFileAtomic(path, []byte("new=2\n"), nil))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new=2\n", string(got))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "pending file left behind")
}
