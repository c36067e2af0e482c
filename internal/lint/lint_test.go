package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(fs []Finding) []Code {
	out := make([]Code, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Code)
	}
	return out
}

func TestCheckCleanInput(t *testing.T) {
	input := "# header\n\nDB_HOST=localhost\nDB_PORT=5432\n  # indented\n"
	assert.Empty(t, Check(input, Options{Godotenv: true}))
	assert.Empty(t, Check("", Options{Godotenv: true}))
}

func TestCheckDuplicateKeys(t *testing.T) {
	fs := Check("key=a\nother=1\nkey=b\nKey=c", Options{})
	require.Len(t, fs, 1)
	assert.Equal(t, Finding{
		Line:    3,
		Code:    CodeDuplicateKey,
		Key:     "key",
		Message: `"key" overrides the value from line 1`,
	}, fs[0])
}

func TestCheckNoSeparatorAndEmptyKey(t *testing.T) {
	fs := Check("valid=1\nthis line has no equals sign\n=value\r\nlast=1", Options{})
	assert.Equal(t, []Code{CodeNoSeparator, CodeEmptyKey}, codes(fs))
	assert.Equal(t, 2, fs[0].Line)
	assert.Equal(t, 3, fs[1].Line)
}

func TestCheckGodotenvDifferences(t *testing.T) {
	fs := Check("PLAIN=1\nQUOTED=\"hello world\"\nexport NAME=x", Options{Godotenv: true})
	require.Len(t, fs, 2)

	assert.Equal(t, 2, fs[0].Line)
	assert.Equal(t, CodeMismatch, fs[0].Code)
	assert.Equal(t, "QUOTED", fs[0].Key)
	assert.Contains(t, fs[0].Message, "quotes are kept")

	assert.Equal(t, 3, fs[1].Line)
	assert.Equal(t, "export NAME", fs[1].Key)
	assert.Contains(t, fs[1].Message, "export")
}

func TestCheckWithoutGodotenv(t *testing.T) {
	assert.Empty(t, Check("QUOTED=\"hello world\"\nexport NAME=x", Options{}))
}

func TestFindingString(t *testing.T) {
	f := Finding{Line: 4, Code: CodeNoSeparator, Message: "line has no '=' and is ignored"}
	assert.Equal(t, "4: no-separator: line has no '=' and is ignored", f.String())
}
