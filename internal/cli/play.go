package cli

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/roach88/hookrt/internal/demo"
	"github.com/roach88/hookrt/internal/engine"
	"github.com/roach88/hookrt/internal/tui"
)

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play <app>",
		Short: "Drive a demo app interactively in the terminal",
		Long: `Mount a demo app and drive its host tree from the keyboard.

Keys:
  up/down, k/j   select a control
  enter, space   click, submit, or edit the selected control
  esc            cancel editing
  q, ctrl+c      quit

Logs are discarded unless --verbose is set, in which case they go to stderr.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := demo.Lookup(args[0]); err != nil {
				return WrapExitError(ExitCommandError, "unknown app", err)
			}

			var logW io.Writer = io.Discard
			if rootOpts.Verbose {
				logW = cmd.ErrOrStderr()
			}
			opts := append(rootOpts.Config().RootOptions(), engine.WithLogger(rootOpts.Logger(logW)))

			m, err := tui.New(args[0], opts...)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to mount app", err)
			}
			defer m.Close()

			p := tea.NewProgram(m, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil {
				return WrapExitError(ExitFailure, "terminal session failed", err)
			}
			return nil
		},
	}
}
