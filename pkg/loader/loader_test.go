package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/kvptr/pkg/jsonval"
	"github.com/oakwood-commons/kvptr/pkg/tomlval"
	"github.com/oakwood-commons/kvptr/pkg/valueptr"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Format
	}{
		{name: "object", input: `{"name": "test", "value": 42}`, want: FormatJSON},
		{name: "array", input: `[1, 2, 3]`, want: FormatJSON},
		{name: "yaml mapping", input: "name: test\nvalue: 42", want: FormatYAML},
		{name: "multi-document yaml", input: "a: 1\n---\nb: 2", want: FormatYAML},
		{name: "ndjson", input: "{\"id\":1}\n{\"id\":2}", want: FormatNDJSON},
		{name: "toml section", input: "[server]\nhost = \"localhost\"", want: FormatTOML},
		{name: "toml key values", input: "a = 1\nb = \"x\"", want: FormatTOML},
		{name: "plain scalar", input: "hello", want: FormatYAML},
		{name: "yaml block scalar holding a list", input: "rule:\n  expression: |\n    [\"legacy\"]", want: FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.input))
		})
	}
}

func TestLoadJSON(t *testing.T) {
	doc, err := LoadData(`{"name": "test", "value": 42, "ratio": 0.5}`)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, doc.Format)
	require.NotNil(t, doc.JSON)
	assert.Nil(t, doc.TOML)
	assert.Equal(t, int64(42), valueptr.PathTo(doc.JSON, "value").AsInt(0))
	assert.Equal(t, jsonval.Float, mustNode(t, doc.JSON, "ratio").Kind())

	t.Run("invalid JSON falls back to YAML", func(t *testing.T) {
		doc, err := LoadData(`{invalid}`)
		require.NoError(t, err)
		assert.Equal(t, FormatYAML, doc.Format)
		// YAML parses {invalid} as a flow mapping with key "invalid" and nil value
		assert.JSONEq(t, `{"invalid": null}`, doc.JSON.String())
	})
}

func mustNode(t *testing.T, root *jsonval.Value, path string) *jsonval.Value {
	t.Helper()
	n, ok := valueptr.PathTo(root, path).Node()
	require.True(t, ok, path)
	return n
}

func TestLoadYAML(t *testing.T) {
	t.Run("single document", func(t *testing.T) {
		doc, err := LoadData("person:\n  name: Alice\n  age: 30\n")
		require.NoError(t, err)
		assert.JSONEq(t, `{"person": {"name": "Alice", "age": 30}}`, doc.JSON.String())
	})

	t.Run("multiple documents become an array", func(t *testing.T) {
		doc, err := LoadData("---\nname: doc1\n---\nname: doc2\n---\n")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"name": "doc1"}, {"name": "doc2"}]`, doc.JSON.String())
	})

	t.Run("single document behind a separator", func(t *testing.T) {
		doc, err := LoadData("---\nname: only\n")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name": "only"}`, doc.JSON.String())
	})

	t.Run("separators only", func(t *testing.T) {
		_, err := LoadData("---\n---")
		require.Error(t, err)
	})

	t.Run("non-string keys", func(t *testing.T) {
		doc, err := LoadDataAs("1: one\ntrue: yes\n", FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, "one", valueptr.PathTo(doc.JSON, "1").AsStr(""))
	})

	t.Run("many bare list items are not NDJSON", func(t *testing.T) {
		input := "linters:\n  enable:\n    - asciicheck\n    - bodyclose\n    - dogsled\n    - dupl\n"
		doc, err := LoadData(input)
		require.NoError(t, err)
		assert.Equal(t, FormatYAML, doc.Format)
		assert.Equal(t, "dupl", valueptr.PathTo(doc.JSON, "linters/enable/3").AsStr(""))
	})
}

func TestLoadNDJSON(t *testing.T) {
	t.Run("blank lines are skipped", func(t *testing.T) {
		doc, err := LoadData("{\"id\":1}\n\n{\"id\":2}\n\n{\"id\":3}")
		require.NoError(t, err)
		assert.Equal(t, FormatNDJSON, doc.Format)
		assert.Equal(t, 3, doc.JSON.Len())
	})

	t.Run("plain lines become strings", func(t *testing.T) {
		input := "{\"level\":\"debug\"}\r\u274c error message\n{\"level\":\"info\"}"
		doc, err := LoadData(input)
		require.NoError(t, err)
		assert.Equal(t, 3, doc.JSON.Len())
		assert.Equal(t, "\u274c error message", valueptr.PathTo(doc.JSON, "1").AsStr(""))
		assert.Equal(t, "info", valueptr.PathTo(doc.JSON, "2/level").AsStr(""))
	})

	t.Run("CRLF line endings", func(t *testing.T) {
		doc, err := LoadData("{\"id\":1}\r\n{\"id\":2}\r\n{\"id\":3}")
		require.NoError(t, err)
		assert.Equal(t, 3, doc.JSON.Len())
	})
}

func TestLoadTOML(t *testing.T) {
	input := `title = "Sample"

[server]
host = "localhost"
port = 8080

[[items]]
name = "first"
`
	doc, err := LoadData(input)
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, doc.Format)
	require.NotNil(t, doc.TOML)
	assert.Nil(t, doc.JSON)
	assert.Equal(t, int64(8080), valueptr.PathTo(doc.TOML, "server/port").AsInt(0))
	assert.Equal(t, "first", valueptr.PathTo(doc.TOML, "items/0/name").AsStr(""))
	assert.Equal(t, tomlval.Table, doc.TOML.Kind())

	_, err = LoadDataAs("[broken", FormatTOML)
	require.Error(t, err)
}

func TestIsLikelyTOML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name: "TOML with section header",
			input: `[server]
host = "localhost"`,
			want: true,
		},
		{
			name: "TOML with array of tables",
			input: `[[items]]
name = "item1"`,
			want: true,
		},
		{
			name: "key-value assignments",
			input: `name = "test"
value = 42
enabled = true`,
			want: true,
		},
		{
			name: "YAML syntax",
			input: `name: test
value: 42`,
			want: false,
		},
		{
			name:  "JSON object",
			input: `{"name": "test"}`,
			want:  false,
		},
		{
			name: "YAML list",
			input: `- item1
- item2`,
			want: false,
		},
		{
			name: "quoted key assignment",
			input: `"table name" = "value"
"another-key" = 42`,
			want: true,
		},
		{
			name: "dotted key assignment",
			input: `database.host = "localhost"
database.port = 5432`,
			want: true,
		},
		{
			name: "quoted section header",
			input: `["table name"]
key = "value"`,
			want: true,
		},
		{
			name: "dotted section header",
			input: `[database.credentials]
username = "admin"`,
			want: true,
		},
		{
			name: "mixed dotted and quoted section",
			input: `[server."host.name"]
value = "test"`,
			want: true,
		},
		{
			name:  "JSON array should not match",
			input: `[1, 2, 3]`,
			want:  false,
		},
		{
			name: "indented JSON-style array not mistaken for TOML section",
			input: `            - when: _.gcpArchitecture == "2.0"
              expression: |
                ["legacy"]`,
			want: false,
		},
		{
			name: "YAML mapping with quoted list line",
			input: `labels:
  ["prod"]
owner: ada`,
			want: false,
		},
		{
			name: "TOML section with YAML-looking string value",
			input: `[server]
note = "key: value"
- not yaml here`,
			want: true,
		},
		{
			name: "section header alone without key-value lines",
			input: `[server]
some text that is not a kv pair`,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isLikelyTOML(tt.input)
			assert.Equal(t, tt.want, got, "isLikelyTOML(%q)", tt.input)
		})
	}
}

func TestLoadDataEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n"} {
		_, err := LoadData(input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyInput))
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("extension skips detection", func(t *testing.T) {
		// key = value lines would be detected as TOML
		doc, err := LoadFile(write("data.yaml", "a = b\n"))
		require.NoError(t, err)
		assert.Equal(t, FormatYAML, doc.Format)
		assert.Equal(t, "a = b", doc.JSON.AsStr(""))
	})

	t.Run("toml extension", func(t *testing.T) {
		doc, err := LoadFile(write("conf.toml", "[db]\nport = 5432\n"))
		require.NoError(t, err)
		assert.Equal(t, int64(5432), valueptr.PathTo(doc.TOML, "db.port").AsInt(0))
	})

	t.Run("unknown extension detects", func(t *testing.T) {
		doc, err := LoadFile(write("data.txt", `{"k": "v"}`))
		require.NoError(t, err)
		assert.Equal(t, FormatJSON, doc.Format)
	})

	t.Run("parse errors name the file", func(t *testing.T) {
		path := write("bad.toml", "[broken")
		_, err := LoadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "missing.json"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestLoadReader(t *testing.T) {
	doc, err := LoadReader(strings.NewReader("a: [1, 2]"), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, int64(2), valueptr.PathTo(doc.JSON, "a/1").AsInt(0))
}

func TestLoadWithLoggerTracesDetection(t *testing.T) {
	var lines []string
	lgr := funcr.New(func(_, args string) { lines = append(lines, args) }, funcr.Options{Verbosity: 1})

	_, err := LoadDataWithLogger(lgr, `{"a": 1}`, FormatAuto)
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], `"format"="json"`)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatAuto, "auto": FormatAuto, "JSON": FormatJSON, "yml": FormatYAML, "toml": FormatTOML, "jsonl": FormatNDJSON}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	require.Error(t, err)

	assert.Equal(t, FormatTOML, FormatForPath("/etc/app.TOML"))
	assert.Equal(t, FormatAuto, FormatForPath("README"))
}
