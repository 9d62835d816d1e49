package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/kvptr/internal/config"
	"github.com/oakwood-commons/kvptr/pkg/core"
	"github.com/oakwood-commons/kvptr/pkg/logger"
	"github.com/oakwood-commons/kvptr/pkg/settings"
	"github.com/oakwood-commons/kvptr/pkg/valueptr"
)

const rootExample = `
  kvptr get config.json usr/lib/2/name --default unknown
  cat config.yaml | kvptr get /server/port --as int
  kvptr set Cargo.toml package.version 0.2.0 --type string -w
  kvptr push config.json usr/lib d e
  kvptr entry - usr meta owner -o yaml < config.json
`

func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   settings.CliBinaryName,
		Short: "Read and edit JSON, YAML and TOML documents with value pointers",
		Long: `kvptr addresses nodes of a structured document with a path such as
usr/lib/2/name, /usr/lib/2/name or usr.lib.2.name. Segments are resolved as a
key first and as a list index second; "~1" and "~0" escape "/" and "~" inside
a key. Reads of a missing path return the default, writes to a missing path
fail without creating it.`,
		Example:       rootExample,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			lgr := logger.Get(cfg.LogLevel)
			lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
			if cfg.File != "" {
				lgr = logger.WithValues(lgr, logger.FileKey, cfg.File)
			}
			valueptr.SetLogger(*lgr)

			run := settings.NewCliParams()
			run.MinLogLevel = cfg.LogLevel
			run.Output = cfg.Output
			run.Indent = cfg.Indent

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = logger.WithLogger(ctx, lgr)
			cmd.SetContext(settings.IntoContext(ctx, run))
			return nil
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, config.ConfigFileFlag, "", "path to a YAML config file (default ./kvptr.yaml or ./.kvptr.yaml)")
	pf.StringP("output", "o", config.DefaultOutput, "output format for documents: auto|json|yaml|toml|raw")
	pf.Int("indent", config.DefaultIndent, "indentation width of encoded documents")
	pf.Int8("log-level", config.DefaultLogLevel, "log level; negative values are more verbose")

	rootCmd.AddCommand(newGetCmd(), newSetCmd(), newPushCmd(), newEntryCmd(), newVersionCmd())
	return rootCmd
}

// Execute runs the kvptr command line.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the kvptr command line with ctx as the base context.
func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newEngine builds the engine for a command from the settings and logger
// installed by the root command.
func newEngine(cmd *cobra.Command) (*core.Engine, *settings.Run, error) {
	ctx := cmd.Context()
	run, ok := settings.FromContext(ctx)
	if !ok {
		run = settings.NewCliParams()
	}
	lgr := logger.FromContext(ctx)
	engine, err := core.New(
		core.WithLogger(*lgr),
		core.WithOutput(run.Output),
		core.WithIndent(run.Indent),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("configure output: %w", err)
	}
	return engine, run, nil
}
