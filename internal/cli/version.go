package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hookrt/internal/ir"
)

// VersionInfo is the JSON payload of the version command.
type VersionInfo struct {
	Runtime string `json:"runtime"`
	Trace   string `json:"trace"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := formatterFor(rootOpts, cmd)
			info := VersionInfo{Runtime: ir.RuntimeVersion, Trace: ir.TraceVersion}
			if out.Format == "json" {
				return out.Success(info)
			}
			fmt.Fprintf(out.Writer, "hookrt %s (trace schema v%s)\n", info.Runtime, info.Trace)
			return nil
		},
	}
}
