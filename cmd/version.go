package cmd

import (
	"fmt"
	"runtime"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/kvptr/pkg/settings"
)

// versionString describes the build. Module build info fills in a version
// when the ldflags left the nightly placeholder.
func versionString() string {
	info := settings.VersionInformation
	version := info.BuildVersion
	goVersion := runtime.Version()
	if bi, ok := rdebug.ReadBuildInfo(); ok {
		if version == "v0.0.0-nightly" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			version = bi.Main.Version
		}
		if bi.GoVersion != "" {
			goVersion = bi.GoVersion
		}
	}
	return fmt.Sprintf("%s %s (commit %s, built %s, %s %s/%s)",
		settings.CliBinaryName, version, info.Commit, info.BuildTime, goVersion, runtime.GOOS, runtime.GOARCH)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print kvptr version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}
