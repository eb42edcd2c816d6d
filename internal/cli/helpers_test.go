package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/roach88/featuredb/internal/config"
)

const featuresMarkup = `<!DOCTYPE html>
<html><body>
<section id="core">
  <h3>Fast Search</h3><span>since Jan 10, 2026</span>
  <p>Find anything.</p>
  <a href="https://github.com/acme/site/commit/abc123">abc123</a>
  <h3>Dark Mode</h3><span>since Jan 2, 2026</span>
  <p>Dark theme.</p>
  <a href="https://github.com/acme/site/commit/def456">def456</a>
</section>
</body></html>
`

const categoriesYAML = `categories:
  - id: core
    title: Core
    inQuickNav: true
    iconBgColor: bg-blue-100
    iconColor: text-blue-600
    iconSvg: '<path d="M4 6h16"/>'
    images: []
`

const indexJSON = `{
  "commits": {
    "abc123": {"date": "2026-01-10", "features": {"Fast Search": {"description": "Find anything.", "category": "core"}}},
    "def456": {"date": "2026-01-02", "features": {"Dark Mode": {"description": "Dark theme.", "category": "core"}}}
  },
  "categoryFeatureOrder": {}
}`

const dataJSON = `{
  "commitBaseUrl": "https://github.com/acme/site/commit/",
  "categories": [
    {"id": "core", "title": "Core", "inQuickNav": true, "iconBgColor": "bg-blue-100", "iconColor": "text-blue-600", "iconSvg": "<path d=\"M4 6h16\"/>", "images": []}
  ],
  "commits": {
    "abc123": {"date": "2026-01-10", "features": {"Fast Search": {"description": "Find anything.", "category": "core"}}},
    "def456": {"date": "2026-01-02", "features": {"Dark Mode": {"description": "Dark theme.", "category": "core"}}}
  },
  "categoryFeatureOrder": {}
}`

// testRootOptions returns root options carrying the default config, as
// if the root command had run.
func testRootOptions(t *testing.T, format string) *RootOptions {
	t.Helper()
	cfg, err := config.Load(viper.New())
	require.NoError(t, err)
	return &RootOptions{Format: format, Config: cfg}
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeFile writes content to name under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
