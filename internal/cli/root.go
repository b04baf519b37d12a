package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"taskvvts-cli/internal/api"
	"taskvvts-cli/internal/config"
	"taskvvts-cli/internal/format"
	"taskvvts-cli/internal/logging"
	"taskvvts-cli/internal/messages"
	"taskvvts-cli/internal/page"
	"taskvvts-cli/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ConfigPath string
	APIURL     string
	Session    string
	Locale     string
	PrettyJSON bool
	Format     string
	Verbose    bool

	// interactive keeps logs in the log file even with --verbose.
	interactive bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskvvts",
		Short:        "Terminal client for the taskvvts task API (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  taskvvts

  # Scriptable commands
  taskvvts login --username ana@example.com --password-stdin
  taskvvts tasks list --status in-progress

  # Direct task lookup (shortcut for: taskvvts tasks show <task-id>)
  taskvvts 42
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("TASKVVTS_CONFIG", ""), "Config file (default: $XDG_CONFIG_HOME/taskvvts/taskvvts.yml)")
	cmd.PersistentFlags().StringVar(&app.APIURL, "api", "", "API base URL (overrides api_url)")
	cmd.PersistentFlags().StringVar(&app.Session, "session", "", "Session scope for the selected task (default: $"+session.ScopeEnv+" or the parent shell)")
	cmd.PersistentFlags().StringVar(&app.Locale, "locale", "", "Message language (en|pt-BR; overrides locale)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TASKVVTS_FORMAT", "json"), "Output format (json|edn|text)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Log requests to stderr")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newDevCmd(app))

	return cmd
}

// runtime is everything a command needs: resolved config, logger, session
// store and API client.
type runtime struct {
	cfg    *config.Config
	log    *zap.Logger
	sess   *session.SQLStore
	client *api.Client
	msg    *messages.Catalog

	closers []func()
}

// loadConfig resolves the config file and applies flag overrides.
func loadConfig(app *App) (*config.Config, error) {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimRight(strings.TrimSpace(app.APIURL), "/"); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(app.Locale); v != "" {
		cfg.Locale = v
	}
	return cfg, nil
}

// openRuntime wires the stack for one command. scope selects the session
// slot for the selected task.
func openRuntime(ctx context.Context, app *App, scope string) (*runtime, error) {
	cfg, err := loadConfig(app)
	if err != nil {
		return nil, err
	}

	level, path := cfg.LogLevel, cfg.LogPath()
	if app.Verbose {
		level = "debug"
		if !app.interactive {
			path = ""
		}
	}
	log, err := logging.New(level, path)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, log: log}
	rt.closers = append(rt.closers, logging.Install(log))

	msg, err := messages.New(cfg.Locale, log)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.msg = msg

	sess, err := session.OpenSQLStore(ctx, cfg.SessionDBPath(), scope, log)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.sess = sess
	rt.closers = append(rt.closers, func() { _ = sess.Close() })

	rt.client = api.New(cfg.APIURL, sess,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(log.Named("api")),
		api.WithLanguage(cfg.Locale),
	)
	log.Debug("runtime ready",
		zap.String("api", cfg.APIURL),
		zap.String("scope", scope),
		zap.String("config", cfg.Path),
	)
	return rt, nil
}

func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}

func (rt *runtime) env(nav page.Navigator) page.Env {
	return page.Env{
		Session:             rt.sess,
		API:                 rt.client,
		Nav:                 nav,
		Msg:                 rt.msg,
		Locale:              rt.cfg.Locale,
		Log:                 rt.log.Named("page"),
		ClearOnUnauthorized: rt.cfg.ClearOnUnauthorized,
	}
}

// withRuntime opens the runtime for a one-shot command and closes it after fn.
func withRuntime(cmd *cobra.Command, app *App, fn func(rt *runtime) error) error {
	rt, err := openRuntime(cmd.Context(), app, session.CLIScope(app.Session))
	if err != nil {
		return writeErr(cmd, err)
	}
	defer rt.Close()
	return fn(rt)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// envelope is the output shape of every command.
type envelope struct {
	Data  any            `json:"data"`
	Meta  map[string]any `json:"meta,omitempty"`
	Hints []string       `json:"_hints,omitempty"`
}

func (e envelope) Text() string {
	var b strings.Builder
	if t, ok := e.Data.(format.Texter); ok {
		b.WriteString(t.Text())
	} else if e.Data != nil {
		raw, _ := json.MarshalIndent(e.Data, "", "  ")
		b.Write(raw)
	}
	if msg, ok := e.Meta["message"].(string); ok && msg != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(msg)
	}
	return b.String()
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	if h := hintFor(err); h != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "hint: "+h)
	}
	return err
}
