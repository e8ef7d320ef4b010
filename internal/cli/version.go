package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/pingwatch/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "  %s %s\n", ui.heading.Render("pingwatch"), ui.version.Render(buildinfo.Version))
		fmt.Fprintf(out, "    %s  %s\n", ui.key.Render("Commit"), ui.val.Render(buildinfo.CommitHash))
		fmt.Fprintf(out, "    %s   %s\n", ui.key.Render("Built"), ui.val.Render(buildinfo.BuildDate))
		fmt.Fprintf(out, "    %s %s\n", ui.key.Render("OS/Arch"), ui.val.Render(runtime.GOOS+"/"+runtime.GOARCH))
		fmt.Fprintf(out, "    %s      %s\n", ui.key.Render("Go"), ui.val.Render(runtime.Version()))
	},
}
