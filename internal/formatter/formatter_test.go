package formatter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/kvptr/pkg/loader"
)

func load(t *testing.T, input string) *loader.Document {
	t.Helper()
	doc, err := loader.LoadData(input)
	require.NoError(t, err)
	return doc
}

func encode(t *testing.T, doc *loader.Document, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc, opts))
	return buf.String()
}

func TestResolve(t *testing.T) {
	assert.Equal(t, JSON, Resolve(Auto, load(t, `{"a": 1}`)))
	assert.Equal(t, JSON, Resolve("", load(t, "{\"a\": 1}\n{\"a\": 2}")))
	assert.Equal(t, YAML, Resolve(Auto, load(t, "a: 1")))
	assert.Equal(t, TOML, Resolve(Auto, load(t, "a = 1")))
	assert.Equal(t, YAML, Resolve("YAML", load(t, "a = 1")))
}

func TestEncodeJSON(t *testing.T) {
	doc := load(t, `{"b": [1, 2], "a": "x"}`)

	assert.Equal(t, "{\"a\":\"x\",\"b\":[1,2]}\n", encode(t, doc, Options{Format: JSON}))
	assert.Equal(t, "{\n  \"a\": \"x\",\n  \"b\": [\n    1,\n    2\n  ]\n}\n", encode(t, doc, Options{Format: JSON, Indent: 2}))
}

func TestEncodeYAML(t *testing.T) {
	doc := load(t, `{"name": "kv", "lines": "one\ntwo", "tags": ["a"]}`)
	out := encode(t, doc, Options{Format: YAML, Indent: 2})

	assert.Contains(t, out, "name: kv\n")
	assert.Contains(t, out, "lines: |-\n")
	assert.Contains(t, out, "tags:\n")
}

func TestEncodeTOML(t *testing.T) {
	t.Run("from TOML", func(t *testing.T) {
		doc := load(t, "title = \"x\"\n\n[server]\nport = 8080\n")
		out := encode(t, doc, Options{Format: Auto})
		again := load(t, out)
		require.NotNil(t, again.TOML)
		assert.Equal(t, doc.TOML.ToAny(), again.TOML.ToAny())
	})

	t.Run("from JSON", func(t *testing.T) {
		doc := load(t, `{"server": {"port": 8080}}`)
		out := encode(t, doc, Options{Format: TOML, Indent: 2})
		assert.Contains(t, out, "[server]")
		assert.Contains(t, out, "port = 8080")
	})

	t.Run("non-table root", func(t *testing.T) {
		err := Encode(&bytes.Buffer{}, load(t, `[1, 2]`), Options{Format: TOML})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupported))
	})

	t.Run("null has no TOML form", func(t *testing.T) {
		err := Encode(&bytes.Buffer{}, load(t, `{"a": null}`), Options{Format: TOML})
		assert.True(t, errors.Is(err, ErrUnsupported))
	})
}

func TestEncodeTOMLAsJSON(t *testing.T) {
	doc := load(t, "day = 1979-05-27\nn = 1\n")
	assert.Equal(t, "{\"day\":\"1979-05-27\",\"n\":1}\n", encode(t, doc, Options{Format: JSON}))
}

func TestEncodeRaw(t *testing.T) {
	assert.Equal(t, "hello\n", encode(t, load(t, `"hello"`), Options{Format: Raw}))
	assert.Equal(t, "[1,2]\n", encode(t, load(t, `[1, 2]`), Options{Format: Raw}))
	assert.Equal(t, "a = 1\n", encode(t, load(t, "a = 1"), Options{Format: Raw}))
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, load(t, `{}`), Options{Format: "xml"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))
}
