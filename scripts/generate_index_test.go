package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindArchives(t *testing.T) {
	got := findArchives([]string{
		"kvptr_0.2.0_Linux_x86_64.tar.gz",
		"kvptr_0.2.0_Darwin_arm64.tar.gz",
		"kvptr_0.2.0_Windows_x86_64.zip",
		"kvptr_0.2.0_checksums.txt",
		"other_0.2.0_Linux_arm64.tar.gz",
	})
	require.Len(t, got, 3)
	assert.Equal(t, "Linux (x86_64)", got[0].Platform)
	assert.Equal(t, "Windows (x86_64)", got[1].Platform)
	assert.Equal(t, "macOS (Apple Silicon)", got[2].Platform)
	assert.Equal(t, "0.2.0", got[0].Version)
}

func TestReplaceInstallation(t *testing.T) {
	page := renderMarkdown([]byte("# kvptr\n\n## Installation\n\ngo install it\n\n## Usage\n\nkvptr get\n"))
	out := replaceInstallation(page, "<div>DL</div>\n")
	assert.Contains(t, out, "<div>DL</div>")
	assert.NotContains(t, out, "go install it")
	assert.Contains(t, out, `<h2 id="usage">`)

	assert.Equal(t, "<p>x</p>", replaceInstallation("<p>x</p>", "DL"))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("# kvptr\n\n## Installation\n\nsoon\n"), 0o600))
	dist := filepath.Join(dir, "dist")
	require.NoError(t, os.Mkdir(dist, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "kvptr_1.0.0_Linux_arm64.tar.gz"), nil, 0o600))

	require.NoError(t, run(readme, dist))
	data, err := os.ReadFile(filepath.Join(dist, "index.html"))
	require.NoError(t, err)
	page := string(data)
	assert.True(t, strings.HasPrefix(page, "<!doctype html>"))
	assert.Contains(t, page, "kvptr_1.0.0_Linux_arm64.tar.gz")
	assert.Contains(t, page, "<h3>1.0.0</h3>")
}
