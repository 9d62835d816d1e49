// generate_index renders README.md into the index.html of a release
// directory and replaces its Installation section with download links for
// the archives found there.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const binary = "kvptr"

// archivePattern matches goreleaser archives such as
// kvptr_0.1.0-SNAPSHOT-abc123_Linux_x86_64.tar.gz.
var archivePattern = regexp.MustCompile(`^` + binary + `_(.+?)_(Darwin|Linux|Windows)_(arm64|x86_64)\.(tar\.gz|zip)$`)

var platformNames = map[string]string{
	"Darwin_arm64":   "macOS (Apple Silicon)",
	"Darwin_x86_64":  "macOS (Intel)",
	"Linux_arm64":    "Linux (ARM64)",
	"Linux_x86_64":   "Linux (x86_64)",
	"Windows_arm64":  "Windows (ARM64)",
	"Windows_x86_64": "Windows (x86_64)",
}

type archive struct {
	Version  string
	Platform string
	File     string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <dist-dir>\n", os.Args[0])
		os.Exit(1)
	}
	if err := run("README.md", os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "generate index: %v\n", err)
		os.Exit(1)
	}
}

func run(readmePath, distDir string) error {
	readme, err := os.ReadFile(readmePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", readmePath, err)
	}
	entries, err := os.ReadDir(distDir)
	if err != nil {
		return fmt.Errorf("read %s: %w", distDir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	body := renderMarkdown(readme)
	body = replaceInstallation(body, downloadsHTML(findArchives(names)))

	indexPath := filepath.Join(distDir, "index.html")
	f, err := os.Create(indexPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := writePage(f, body); err != nil {
		return fmt.Errorf("write %s: %w", indexPath, err)
	}
	fmt.Fprintf(os.Stderr, "Generated %s\n", indexPath)
	return nil
}

func renderMarkdown(src []byte) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return string(markdown.Render(p.Parse(src), renderer))
}

// findArchives returns one archive per platform, sorted by platform name.
func findArchives(names []string) []archive {
	seen := make(map[string]bool)
	var out []archive
	for _, name := range names {
		m := archivePattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		key := m[2] + "_" + m[3]
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, archive{Version: m[1], Platform: platformNames[key], File: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Platform < out[j].Platform })
	return out
}

func downloadsHTML(archives []archive) string {
	version := "unknown"
	if len(archives) > 0 {
		version = archives[0].Version
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "<div class=\"downloads\">\n<h3>%s</h3>\n<table class=\"download-table\">\n", version)
	for _, a := range archives {
		fmt.Fprintf(&sb, "<tr><td class=\"platform-name\">%s</td><td><a href=\"%s\">download</a></td></tr>\n", a.Platform, a.File)
	}
	sb.WriteString("</table>\n</div>\n")
	return sb.String()
}

// replaceInstallation swaps the body of the Installation section for the
// downloads table. Pages without that section are returned unchanged.
func replaceInstallation(page, downloads string) string {
	start := strings.Index(page, `<h2 id="installation">`)
	if start == -1 {
		return page
	}
	headEnd := strings.Index(page[start:], "</h2>")
	if headEnd == -1 {
		return page
	}
	headEnd += start + len("</h2>")
	end := len(page)
	if next := strings.Index(page[headEnd:], "<h2 "); next != -1 {
		end = headEnd + next
	}
	install := "<p>Extract the archive and move the <code>" + binary + "</code> binary to a directory on your PATH.</p>\n"
	return page[:headEnd] + "\n" + downloads + install + page[end:]
}

func writePage(w io.Writer, body string) error {
	_, err := fmt.Fprintf(w, `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%s - value pointers for JSON, YAML and TOML</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 900px; margin: 40px auto; padding: 0 20px; line-height: 1.6; }
    code { background: #f1f5f9; padding: 2px 6px; border-radius: 3px; }
    pre { background: #1e293b; color: #e2e8f0; padding: 16px; border-radius: 6px; overflow-x: auto; }
    pre code { background: none; color: inherit; padding: 0; }
    .downloads { background: #eff6ff; padding: 16px; border-radius: 8px; }
    .platform-name { font-weight: 500; width: 200px; }
  </style>
</head>
<body>
%s</body>
</html>
`, binary, body)
	return err
}
