package cli

import (
	"os"
	"os/signal"
	"syscall"

	"taskvvts-cli/internal/fakeapi"
	"taskvvts-cli/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDevCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "dev",
		Short:  "Developer tools",
		Hidden: true,
	}
	cmd.AddCommand(newDevFakeServerCmd(app))
	return cmd
}

func newDevFakeServerCmd(app *App) *cobra.Command {
	var addr string
	var seedUser string
	var seedPassword string
	var stringList bool

	cmd := &cobra.Command{
		Use:   "fake-server",
		Short: "Serve an in-memory task API for local demos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seedUser != "" && seedPassword == "" {
				return writeErr(cmd, errMissingFlag("seed-password"))
			}
			level := "info"
			if app.Verbose {
				level = "debug"
			} else {
				gin.SetMode(gin.ReleaseMode)
			}
			log, err := logging.New(level, "")
			if err != nil {
				return writeErr(cmd, err)
			}
			defer logging.Install(log)()

			opts := []fakeapi.Option{fakeapi.WithLogger(log.Named("fakeapi"))}
			if stringList {
				opts = append(opts, fakeapi.WithStringEncodedList())
			}
			srv := fakeapi.New(opts...)
			if seedUser != "" {
				srv.Seed(seedUser, seedPassword)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("fake api listening", zap.String("addr", addr), zap.String("base", fakeapi.BasePath))
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "Listen address")
	cmd.Flags().StringVar(&seedUser, "seed-user", "demo@example.com", "Account created at startup (empty: none)")
	cmd.Flags().StringVar(&seedPassword, "seed-password", "demo", "Password of the seeded account")
	cmd.Flags().BoolVar(&stringList, "string-list", false, "Answer /task/get-all with a JSON string, like the original backend")
	return cmd
}
