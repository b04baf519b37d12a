package cli

import (
	"strings"

	"taskvvts-cli/internal/session"
	"taskvvts-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runProgram starts the interactive program; tests replace it.
var runProgram = tui.Run

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive TUI",
		Long: strings.TrimSpace(`
Start the interactive TUI (same as running taskvvts without arguments).

The login token is shared with the scriptable commands. The selected task
belongs to this run only, like a fresh browser tab; pass --session to share
the selection with a shell instead.
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	scope := strings.TrimSpace(app.Session)
	ephemeral := scope == ""
	if ephemeral {
		scope = session.NewScope()
	}
	app.interactive = true

	rt, err := openRuntime(cmd.Context(), app, scope)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer rt.Close()
	if ephemeral {
		// A generated scope can never be reopened, so drop its selection on
		// exit. The token is durable and stays.
		defer func() {
			if err := rt.sess.ClearSelectedTask(); err != nil {
				rt.log.Warn("clear tui selection", zap.Error(err))
			}
		}()
	}

	if err := runProgram(cmd.Context(), rt.env(nil)); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}
