// File: cmd/render_test.go
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Flag values persist on the shared command tree between Execute
	// calls, so restore the defaults first.
	for _, c := range rootCmd.Commands() {
		if c.Name() == "render" {
			require.NoError(t, c.Flags().Set("css", ""))
			require.NoError(t, c.Flags().Set("format", "tree"))
			require.NoError(t, c.Flags().Set("recover", "false"))
		}
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderCommandTreeOutput(t *testing.T) {
	doc := writeFixture(t, "page.html",
		`<html><style>h1 { display: block; }</style><h1>Title</h1></html>`)

	out, err := runCommand(t, "render", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "h1 {display: block}")
	assert.Contains(t, out, `"Title"`)
}

func TestRenderCommandJSONOutput(t *testing.T) {
	doc := writeFixture(t, "page.html",
		`<html><style>p { margin-top: 3px; }</style><p>x</p></html>`)

	out, err := runCommand(t, "render", doc, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "element"`)
	assert.Contains(t, out, `"margin-top": "3px"`)
}

func TestRenderCommandExternalStylesheet(t *testing.T) {
	doc := writeFixture(t, "page.html", `<div><p>keep</p></div>`)
	css := writeFixture(t, "site.css", `p { display: none; }`)

	out, err := runCommand(t, "render", doc, "--css", css)
	require.NoError(t, err)
	assert.NotContains(t, out, "keep")
}

func TestRenderCommandBadDocument(t *testing.T) {
	doc := writeFixture(t, "page.html", `</div>`)

	_, err := runCommand(t, "render", doc, "--format", "tree")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing document")
}
