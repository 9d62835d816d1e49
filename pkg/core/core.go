// Package core is the format-agnostic facade used by the kvptr CLI: it loads
// documents, reads and edits them through value pointers and encodes them
// back.
package core

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/kvptr/internal/formatter"
	"github.com/oakwood-commons/kvptr/pkg/loader"
	"github.com/oakwood-commons/kvptr/pkg/valueptr"
)

var (
	// ErrPathNotFound is returned by required reads of a missing path.
	ErrPathNotFound = errors.New("path not found")
	// ErrUnsupportedOutput is returned for output formats the engine does
	// not know or that cannot represent a document.
	ErrUnsupportedOutput = errors.New("unsupported output format")
)

// ReadAs selects the read used by Get.
type ReadAs string

const (
	// AsStr returns only native string content.
	AsStr ReadAs = "str"
	// AsString stringifies the node; the default doubles as a type selector.
	AsString ReadAs = "string"
	AsInt    ReadAs = "int"
	AsFloat  ReadAs = "float"
	AsBool   ReadAs = "bool"
)

// ParseReadAs validates a user-supplied read type. Empty selects AsString.
func ParseReadAs(name string) (ReadAs, error) {
	switch r := ReadAs(strings.ToLower(strings.TrimSpace(name))); r {
	case "":
		return AsString, nil
	case AsStr, AsString, AsInt, AsFloat, AsBool:
		return r, nil
	default:
		return "", fmt.Errorf("unknown read type %q (want str, string, int, float or bool)", name)
	}
}

// Op is a mutation applied by Mutate.
type Op string

const (
	OpPut       Op = "put"
	OpPushItem  Op = "push"
	OpPushEntry Op = "entry"
)

// Mutation describes one edit. Put uses Values[0], PushItem appends every
// value, PushEntry stores Values[0] under Key.
type Mutation struct {
	Op     Op
	Key    string
	Values []valueptr.Scalar
}

// Encoder writes a document in some output format.
type Encoder interface {
	Encode(w io.Writer, doc *loader.Document, opts formatter.Options) error
}

type defaultEncoder struct{}

func (defaultEncoder) Encode(w io.Writer, doc *loader.Document, opts formatter.Options) error {
	return formatter.Encode(w, doc, opts)
}

// Engine loads, reads, edits and encodes documents.
type Engine struct {
	Logger  logr.Logger
	Output  string
	Indent  int
	Encoder Encoder
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the logger for load and path resolution traces.
func WithLogger(lgr logr.Logger) Option {
	return func(e *Engine) {
		e.Logger = lgr
	}
}

// WithOutput sets the output format: auto, json, yaml, toml or raw.
func WithOutput(format string) Option {
	return func(e *Engine) {
		e.Output = strings.ToLower(format)
	}
}

// WithIndent sets the indentation width of encoded output.
func WithIndent(n int) Option {
	return func(e *Engine) {
		e.Indent = n
	}
}

// WithEncoder replaces the output encoder.
func WithEncoder(enc Encoder) Option {
	return func(e *Engine) {
		e.Encoder = enc
	}
}

// New creates an Engine with defaults: no logging, auto output, two space
// indentation.
func New(opts ...Option) (*Engine, error) {
	engine := &Engine{
		Logger: logr.Discard(),
		Output: formatter.Auto,
		Indent: 2,
	}
	for _, opt := range opts {
		opt(engine)
	}
	switch engine.Output {
	case formatter.Auto, formatter.JSON, formatter.YAML, formatter.TOML, formatter.Raw:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOutput, engine.Output)
	}
	if engine.Encoder == nil {
		engine.Encoder = defaultEncoder{}
	}
	return engine, nil
}

// Load parses input, detecting its format.
func (e *Engine) Load(input string) (*loader.Document, error) {
	return loader.LoadDataWithLogger(e.Logger, input, loader.FormatAuto)
}

// LoadReader reads and parses r, detecting its format.
func (e *Engine) LoadReader(r io.Reader) (*loader.Document, error) {
	return loader.LoadReaderWithLogger(e.Logger, r, loader.FormatAuto)
}

// LoadFile reads and parses the file at path.
func (e *Engine) LoadFile(path string) (*loader.Document, error) {
	return loader.LoadFileWithLogger(e.Logger, path)
}

// IsRoot reports whether path addresses the document root. Pointer syntax
// treats "" as the empty key, so the root needs its own spelling.
func IsRoot(path string) bool {
	return path == "" || path == "/"
}

// Get reads the node at path. def is the default in the notation of the
// chosen read: for AsInt it must parse as an integer and so on. When
// required is set a missing path fails with ErrPathNotFound; otherwise the
// default is returned.
func (e *Engine) Get(doc *loader.Document, path string, as ReadAs, def string, required bool) (string, error) {
	var (
		out     string
		present bool
		err     error
	)
	if doc.TOML != nil {
		out, present, err = read(lookup(doc.TOML, path), as, def)
	} else {
		out, present, err = read(lookup(doc.JSON, path), as, def)
	}
	if err != nil {
		return "", err
	}
	e.Logger.V(1).Info("resolved path", "path", path, "present", present, "as", string(as))
	if !present && required {
		return "", fmt.Errorf("%w: %q", ErrPathNotFound, path)
	}
	return out, nil
}

// Exists reports whether path resolves to a node.
func (e *Engine) Exists(doc *loader.Document, path string) bool {
	if doc.TOML != nil {
		return lookup(doc.TOML, path).Present()
	}
	return lookup(doc.JSON, path).Present()
}

// Mutate applies m to the node at path. Missing paths are not created and
// fail with ErrPathNotFound.
func (e *Engine) Mutate(doc *loader.Document, path string, m Mutation) error {
	if len(m.Values) == 0 {
		return fmt.Errorf("%s needs at least one value", m.Op)
	}
	var (
		present bool
		err     error
	)
	if doc.TOML != nil {
		present, err = mutate(lookupMut(doc.TOML, path), m)
	} else {
		present, err = mutate(lookupMut(doc.JSON, path), m)
	}
	if err != nil {
		return err
	}
	e.Logger.V(1).Info("mutated path", "path", path, "op", string(m.Op), "present", present)
	if !present {
		return fmt.Errorf("%w: %q", ErrPathNotFound, path)
	}
	return nil
}

// Encode writes doc to w in the engine's output format.
func (e *Engine) Encode(w io.Writer, doc *loader.Document) error {
	err := e.Encoder.Encode(w, doc, formatter.Options{Format: e.Output, Indent: e.Indent})
	if errors.Is(err, formatter.ErrUnsupported) {
		return fmt.Errorf("%w: %v", ErrUnsupportedOutput, err)
	}
	return err
}

func lookup[N valueptr.Node[N]](root N, path string) valueptr.Ptr[N] {
	if IsRoot(path) {
		return valueptr.Path(root)
	}
	return valueptr.Path(root).Get(path)
}

func lookupMut[N valueptr.MutableNode[N]](root N, path string) *valueptr.PtrMut[N] {
	if IsRoot(path) {
		return valueptr.PathMut(root)
	}
	return valueptr.PathMut(root).Get(path)
}

func read[N valueptr.Node[N]](p valueptr.Ptr[N], as ReadAs, def string) (string, bool, error) {
	switch as {
	case AsStr:
		return valueptr.Or(p, def), p.Present(), nil
	case AsString, "":
		return p.AsString(def), p.Present(), nil
	case AsInt:
		d, err := parseDefault(def, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
		if err != nil {
			return "", false, err
		}
		return strconv.FormatInt(valueptr.Or(p, d), 10), p.Present(), nil
	case AsFloat:
		d, err := parseDefault(def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
		if err != nil {
			return "", false, err
		}
		return strconv.FormatFloat(valueptr.Or(p, d), 'g', -1, 64), p.Present(), nil
	case AsBool:
		d, err := parseDefault(def, strconv.ParseBool)
		if err != nil {
			return "", false, err
		}
		return strconv.FormatBool(valueptr.Or(p, d)), p.Present(), nil
	default:
		return "", false, fmt.Errorf("unknown read type %q", as)
	}
}

// parseDefault parses a typed default; an empty default is the zero value.
func parseDefault[T any](def string, parse func(string) (T, error)) (T, error) {
	var zero T
	if def == "" {
		return zero, nil
	}
	v, err := parse(def)
	if err != nil {
		return zero, fmt.Errorf("invalid default %q: %w", def, err)
	}
	return v, nil
}

func mutate[N valueptr.MutableNode[N]](p *valueptr.PtrMut[N], m Mutation) (bool, error) {
	present := p.Present()
	switch m.Op {
	case OpPut:
		p.Put(m.Values[0])
	case OpPushItem:
		p.PushItems(m.Values...)
	case OpPushEntry:
		p.PushEntry(m.Key, m.Values[0])
	default:
		return false, fmt.Errorf("unknown mutation %q", m.Op)
	}
	return present, nil
}
