package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	buildinfo "tickettracker/internal/shared/version"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tickettracker %s\n", buildinfo.Current())
			fmt.Fprintf(out, "  commit:     %s\n", buildinfo.Commit)
			fmt.Fprintf(out, "  built:      %s\n", buildinfo.BuildTime)
			fmt.Fprintf(out, "  go version: %s\n", runtime.Version())
		},
	}
}
