// Package formatter encodes loaded documents as JSON, YAML, TOML or raw text.
package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/oakwood-commons/kvptr/pkg/jsonval"
	"github.com/oakwood-commons/kvptr/pkg/loader"
	"github.com/oakwood-commons/kvptr/pkg/tomlval"
)

// ErrUnsupported is returned for output formats that cannot represent a
// document, such as TOML for a document whose root is not a mapping.
var ErrUnsupported = errors.New("unsupported output")

// Output formats.
const (
	Auto = "auto"
	JSON = "json"
	YAML = "yaml"
	TOML = "toml"
	Raw  = "raw"
)

// Options selects the output format and indentation.
type Options struct {
	Format string
	Indent int
}

// Resolve maps Auto to the format the document was loaded from.
func Resolve(format string, doc *loader.Document) string {
	format = strings.ToLower(format)
	if format != "" && format != Auto {
		return format
	}
	switch doc.Format {
	case loader.FormatTOML:
		return TOML
	case loader.FormatYAML:
		return YAML
	default:
		return JSON
	}
}

// Encode writes doc to w in the requested format. The output always ends
// with a newline.
func Encode(w io.Writer, doc *loader.Document, opts Options) error {
	var (
		out []byte
		err error
	)
	switch format := Resolve(opts.Format, doc); format {
	case JSON:
		out, err = FormatJSON(asJSON(doc), opts.Indent)
	case YAML:
		out, err = FormatYAML(asJSON(doc), YAMLOptions{Indent: opts.Indent, LiteralBlockStrings: true})
	case TOML:
		out, err = FormatTOML(doc, opts.Indent)
	case Raw:
		out = []byte(raw(doc))
	default:
		return fmt.Errorf("%w: format %q", ErrUnsupported, format)
	}
	if err != nil {
		return err
	}
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err
}

// FormatJSON renders v as JSON, indented by indent spaces or compact when
// indent is zero.
func FormatJSON(v *jsonval.Value, indent int) ([]byte, error) {
	compact, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if indent <= 0 {
		return compact, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", strings.Repeat(" ", indent)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatTOML renders doc as a TOML document. Only mapping roots can be
// represented; JSON nulls have no TOML form and are rejected.
func FormatTOML(doc *loader.Document, indent int) ([]byte, error) {
	root := doc.TOML
	if root == nil {
		converted, err := tomlval.FromAny(doc.JSON.ToAny())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		root = converted
	}
	if root.Kind() != tomlval.Table {
		return nil, fmt.Errorf("%w: TOML needs a table at the root, got %s", ErrUnsupported, root.Kind())
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if indent > 0 {
		enc.SetIndentTables(true)
		enc.SetIndentSymbol(strings.Repeat(" ", indent))
	}
	if err := enc.Encode(root.ToAny()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func asJSON(doc *loader.Document) *jsonval.Value {
	if doc.JSON != nil {
		return doc.JSON
	}
	v, err := jsonval.FromAny(doc.TOML.ToAny())
	if err != nil {
		return jsonval.NewString(doc.TOML.String())
	}
	return v
}

func raw(doc *loader.Document) string {
	if doc.TOML != nil {
		return doc.TOML.AsString("")
	}
	return doc.JSON.AsString("")
}
