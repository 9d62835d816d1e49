package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/kvptr/pkg/core"
)

func newGetCmd() *cobra.Command {
	var (
		def      string
		as       string
		required bool
	)
	getCmd := &cobra.Command{
		Use:   "get [FILE|-] PATH",
		Short: "Print the value at PATH",
		Long: `Print the value at PATH. With --as string (the default) the default also
selects which kinds are stringified: "0" integers, "0.0" floats, "bool"
booleans, "[]" lists, "{}" mappings and "" everything. Strings are always
printed.`,
		Example: `  kvptr get config.json usr/lib/2/name --default unknown
  kvptr get config.toml server.port --as int --require`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			readAs, err := core.ParseReadAs(as)
			if err != nil {
				return err
			}
			engine, run, err := newEngine(cmd)
			if err != nil {
				return err
			}
			in, rest, err := splitInput(cmd, args, 1)
			if err != nil {
				return err
			}
			run.Input = in
			doc, err := loadInput(cmd, engine, in)
			if err != nil {
				return err
			}
			out, err := engine.Get(doc, rest[0], readAs, def, required)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	getCmd.Flags().StringVarP(&def, "default", "d", "", "value printed when PATH is missing or has another type")
	getCmd.Flags().StringVar(&as, "as", string(core.AsString), "read type: str|string|int|float|bool")
	getCmd.Flags().BoolVarP(&required, "require", "r", false, "fail when PATH is missing")
	return getCmd
}
