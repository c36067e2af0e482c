package envload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnviron(t *testing.T) {
	base := []string{"PATH=/bin", "HOME=/root", "malformed"}
	m := map[string]string{"HOME": "/home/app", "APP": "1", "": "x"}

	assert.Equal(t, []string{"APP=1", "HOME=/root", "PATH=/bin"}, Environ(base, m, false))
	assert.Equal(t, []string{"APP=1", "HOME=/home/app", "PATH=/bin"}, Environ(base, m, true))
}
