package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanURLs(t *testing.T) {
	in := "https://a.test/?x=1\n\n  # comment\n//cdn.test/lib.js\n   https://b.test  \n"
	urls, err := scanURLs(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.test/?x=1", "//cdn.test/lib.js", "https://b.test"}, urls)
}

func TestReadURLList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://a.test\nhttps://b.test\n"), 0o644))

	urls, err := ReadURLList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, urls)

	_, err = ReadURLList(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
