package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/kvptr/pkg/core"
	"github.com/oakwood-commons/kvptr/pkg/loader"
	"github.com/oakwood-commons/kvptr/pkg/settings"
)

const stdinName = "-"

var errNoInput = errors.New("no input: pass FILE or pipe a document on stdin")

// stdinIsTerminal reports whether r is an interactive terminal. Readers that
// are not files count as piped input.
var stdinIsTerminal = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// splitInput separates the optional leading FILE argument from the rest.
// Commands with a fixed number of operands take FILE when one extra argument
// is present. Variadic commands (fixed < 0) take the first argument as FILE
// when it is "-" or when stdin is a terminal.
func splitInput(cmd *cobra.Command, args []string, fixed int) (settings.Input, []string, error) {
	piped := !stdinIsTerminal(cmd.InOrStdin())
	var hasFile bool
	switch {
	case fixed >= 0:
		hasFile = len(args) > fixed
	case len(args) > 0:
		hasFile = args[0] == stdinName || !piped
	}

	in := settings.Input{FromStdin: true}
	if hasFile {
		if args[0] != stdinName {
			in = settings.Input{Path: args[0]}
		}
		args = args[1:]
	}
	if in.FromStdin && !piped {
		return settings.Input{}, nil, errNoInput
	}
	return in, args, nil
}

func loadInput(cmd *cobra.Command, engine *core.Engine, in settings.Input) (*loader.Document, error) {
	if in.FromStdin {
		doc, err := engine.LoadReader(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return doc, nil
	}
	return engine.LoadFile(in.Path)
}

// writeDocument prints doc, or replaces the input file with it when the run
// is in place.
func writeDocument(cmd *cobra.Command, engine *core.Engine, run *settings.Run, doc *loader.Document) error {
	if !run.InPlace {
		return engine.Encode(cmd.OutOrStdout(), doc)
	}
	if run.Input.FromStdin {
		return errors.New("--in-place needs a FILE argument")
	}
	var buf bytes.Buffer
	if err := engine.Encode(&buf, doc); err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if st, err := os.Stat(run.Input.Path); err == nil {
		mode = st.Mode().Perm()
	}
	if err := os.WriteFile(run.Input.Path, buf.Bytes(), mode); err != nil {
		return fmt.Errorf("write %s: %w", run.Input.Path, err)
	}
	return nil
}
