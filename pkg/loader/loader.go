// Package loader reads structured text into value trees, detecting the
// format when the caller does not name one.
//
// TOML input becomes a *tomlval.Value; JSON, NDJSON and YAML input becomes a
// *jsonval.Value. Inputs holding several documents (NDJSON lines, YAML
// documents separated by ---) are loaded as one array of documents.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/kvptr/pkg/jsonval"
	"github.com/oakwood-commons/kvptr/pkg/tomlval"
)

// ErrEmptyInput is returned when the input holds nothing but whitespace.
var ErrEmptyInput = errors.New("empty input")

// Format names a supported input syntax.
type Format string

const (
	FormatAuto   Format = ""
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
)

// ParseFormat maps a user-supplied name to a Format. The empty string and
// "auto" select detection.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "ndjson", "jsonl":
		return FormatNDJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format %q", name)
	}
}

// FormatForPath returns the format implied by a file extension, or
// FormatAuto when the extension is not recognised.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatAuto
	}
}

// Document is a loaded value tree. Exactly one of JSON and TOML is set,
// depending on Format.
type Document struct {
	Format Format
	JSON   *jsonval.Value
	TOML   *tomlval.Value
}

// Detect guesses the format of input using the same heuristics as LoadData.
func Detect(input string) Format {
	input = strings.TrimSpace(input)

	// Multi-document YAML is the most restrictive signal
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return FormatYAML
	}

	lines := splitLines(input)
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return FormatNDJSON
	}

	// Check for TOML before JSON - TOML [section] headers look like JSON arrays
	// but are distinct (e.g., "[server]" vs "[1, 2, 3]")
	if isLikelyTOML(input) {
		return FormatTOML
	}

	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadData loads a document from input, auto-detecting its format.
func LoadData(input string) (*Document, error) {
	return LoadDataWithLogger(logr.Discard(), input, FormatAuto)
}

// LoadDataAs loads a document from input in the given format. FormatAuto
// behaves like LoadData.
func LoadDataAs(input string, format Format) (*Document, error) {
	return LoadDataWithLogger(logr.Discard(), input, format)
}

// LoadDataWithLogger is LoadDataAs with format decisions logged at V(1).
func LoadDataWithLogger(lgr logr.Logger, input string, format Format) (*Document, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	if format == FormatAuto {
		format = Detect(input)
		lgr.V(1).Info("detected input format", "format", format, "bytes", len(input))
	}

	switch format {
	case FormatTOML:
		root, err := tomlval.Parse([]byte(input))
		if err != nil {
			return nil, err
		}
		return &Document{Format: FormatTOML, TOML: root}, nil
	case FormatNDJSON:
		return wrapJSON(FormatNDJSON)(loadNDJSON(input))
	case FormatJSON:
		root, err := jsonval.Parse([]byte(input))
		if err == nil {
			return &Document{Format: FormatJSON, JSON: root}, nil
		}
		// YAML is a superset of JSON and forgives what the strict parser rejects
		lgr.V(1).Info("JSON parse failed, retrying as YAML", "error", err.Error())
		return wrapJSON(FormatYAML)(loadYAML(input))
	case FormatYAML:
		return wrapJSON(FormatYAML)(loadYAML(input))
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func wrapJSON(format Format) func(*jsonval.Value, error) (*Document, error) {
	return func(root *jsonval.Value, err error) (*Document, error) {
		if err != nil {
			return nil, err
		}
		return &Document{Format: format, JSON: root}, nil
	}
}

// LoadReader reads all of r and loads it like LoadDataAs.
func LoadReader(r io.Reader, format Format) (*Document, error) {
	return LoadReaderWithLogger(logr.Discard(), r, format)
}

// LoadReaderWithLogger is LoadReader with logging.
func LoadReaderWithLogger(lgr logr.Logger, r io.Reader, format Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return LoadDataWithLogger(lgr, string(data), format)
}

// LoadFile reads a file and loads it. A recognised extension skips format
// detection.
func LoadFile(path string) (*Document, error) {
	return LoadFileWithLogger(logr.Discard(), path)
}

// LoadFileWithLogger is LoadFile with logging.
func LoadFileWithLogger(lgr logr.Logger, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format := FormatForPath(path)
	lgr.V(1).Info("loading file", "path", path, "format", format)
	doc, err := LoadDataWithLogger(lgr, string(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// loadYAML parses one or more YAML documents. More than one document yields
// an array of documents; empty documents are skipped.
func loadYAML(input string) (*jsonval.Value, error) {
	decoder := yaml.NewDecoder(strings.NewReader(input))

	var docs []*jsonval.Value
	for {
		var raw any
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if raw == nil {
			continue
		}
		doc, err := jsonval.FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		docs = append(docs, doc)
	}

	switch len(docs) {
	case 0:
		if strings.HasPrefix(input, "---") || strings.Contains(input, "\n---") {
			return nil, fmt.Errorf("no documents found in multi-document YAML")
		}
		return jsonval.NewNull(), nil
	case 1:
		return docs[0], nil
	default:
		return jsonval.NewArray(docs...), nil
	}
}

// loadNDJSON parses newline-delimited JSON into an array. Lines that are not
// valid JSON are kept as plain strings.
func loadNDJSON(input string) (*jsonval.Value, error) {
	lines := splitLines(input)
	items := make([]*jsonval.Value, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		item, err := jsonval.Parse([]byte(line))
		if err != nil {
			items = append(items, jsonval.NewString(line))
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no data found in input")
	}
	return jsonval.NewArray(items...), nil
}

// splitLines splits on \n, \r\n and bare \r. Tools that redraw progress
// lines with \r interleave them with JSON log output.
func splitLines(input string) []string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	return strings.Split(strings.ReplaceAll(input, "\r", "\n"), "\n")
}

// isLikelyNDJSON heuristic: returns true if the input looks like newline-delimited JSON.
// A majority of non-empty lines must start with '{' or '[' so that YAML lists
// of bare items are not misclassified.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmptyCount := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++

		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}

	return nonEmptyCount > 1 && jsonCount > nonEmptyCount/2
}

var (
	// TOML section headers: [server], [[items]], ["table name"], [database.credentials].
	// JSON arrays like [1, 2, 3] do not match.
	tomlSection = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)

	// TOML key = value (not key: value which is YAML), with bare, quoted or dotted keys.
	tomlKeyValue = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)

	// YAML block mapping keys (name:, name: value) and sequence items (- x).
	yamlBlockLine = regexp.MustCompile(`^\s*(?:-(?:\s|$)|[a-zA-Z_][a-zA-Z0-9_.-]*:(?:\s|$))`)
)

// isLikelyTOML heuristic: any section header, or a majority of key = value
// lines. Section-like lines in YAML block content without any key = value
// line, such as ["legacy"] under a literal block, do not count.
func isLikelyTOML(input string) bool {
	sectionCount := 0
	keyValueCount := 0
	yamlCount := 0
	nonEmptyCount := 0

	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++

		if tomlSection.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValue.MatchString(line) {
			keyValueCount++
		} else if yamlBlockLine.MatchString(line) {
			yamlCount++
		}
	}

	if sectionCount > 0 && (keyValueCount > 0 || yamlCount == 0) {
		return true
	}
	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}
