package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/kvptr/pkg/core"
	"github.com/oakwood-commons/kvptr/pkg/valueptr"
)

type mutateFlags struct {
	kind    string
	inPlace bool
}

func (f *mutateFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "type", "t", "auto", "value type: auto|string|int|float|bool|null")
	cmd.Flags().BoolVarP(&f.inPlace, "in-place", "w", false, "write the result back to FILE")
}

// runMutation loads the input, applies the mutation built by build from the
// operands and writes the document.
func runMutation(cmd *cobra.Command, args []string, fixed int, f *mutateFlags, build func(operands []string) (string, core.Mutation, error)) error {
	engine, run, err := newEngine(cmd)
	if err != nil {
		return err
	}
	in, operands, err := splitInput(cmd, args, fixed)
	if err != nil {
		return err
	}
	run.Input = in
	run.InPlace = f.inPlace

	path, m, err := build(operands)
	if err != nil {
		return err
	}
	doc, err := loadInput(cmd, engine, in)
	if err != nil {
		return err
	}
	if err := engine.Mutate(doc, path, m); err != nil {
		return err
	}
	return writeDocument(cmd, engine, run, doc)
}

func parseValues(texts []string, kind string) ([]valueptr.Scalar, error) {
	values := make([]valueptr.Scalar, 0, len(texts))
	for _, text := range texts {
		s, err := valueptr.ParseScalar(text, kind)
		if err != nil {
			return nil, err
		}
		values = append(values, s)
	}
	return values, nil
}

func newSetCmd() *cobra.Command {
	var f mutateFlags
	setCmd := &cobra.Command{
		Use:   "set [FILE|-] PATH VALUE",
		Short: "Replace the value at PATH",
		Example: `  kvptr set config.json usr/bin 1
  kvptr set Cargo.toml package.version 0.2.0 --type string -w`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, args, 2, &f, func(operands []string) (string, core.Mutation, error) {
				values, err := parseValues(operands[1:], f.kind)
				return operands[0], core.Mutation{Op: core.OpPut, Values: values}, err
			})
		},
	}
	f.bind(setCmd)
	return setCmd
}

func newPushCmd() *cobra.Command {
	var f mutateFlags
	pushCmd := &cobra.Command{
		Use:   "push [FILE|-] PATH VALUE...",
		Short: "Append values to the list at PATH",
		Long: `Append values to the list at PATH. A node that is not a list is replaced
by an empty list first. When stdin is piped, pass "-" explicitly to read the
document from it, or the first argument is taken as PATH.`,
		Example: `  kvptr push config.json usr/lib d e
  cat config.yaml | kvptr push tags prod`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, args, -1, &f, func(operands []string) (string, core.Mutation, error) {
				if len(operands) < 2 {
					return "", core.Mutation{}, errors.New("push needs PATH and at least one VALUE")
				}
				values, err := parseValues(operands[1:], f.kind)
				return operands[0], core.Mutation{Op: core.OpPushItem, Values: values}, err
			})
		},
	}
	f.bind(pushCmd)
	return pushCmd
}

func newEntryCmd() *cobra.Command {
	var f mutateFlags
	entryCmd := &cobra.Command{
		Use:   "entry [FILE|-] PATH KEY VALUE",
		Short: "Set KEY in the mapping at PATH",
		Long: `Set KEY in the mapping at PATH. A node that is not a mapping is replaced
by an empty mapping first.`,
		Example: `  kvptr entry config.json usr meta owner
  kvptr entry config.toml "" title demo -w`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, args, 3, &f, func(operands []string) (string, core.Mutation, error) {
				values, err := parseValues(operands[2:], f.kind)
				return operands[0], core.Mutation{Op: core.OpPushEntry, Key: operands[1], Values: values}, err
			})
		},
	}
	f.bind(entryCmd)
	return entryCmd
}
