package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"time"

	"taskvvts-cli/internal/page"
	"taskvvts-cli/internal/session"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var username string
	var password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the bearer token",
		Example: strings.TrimSpace(`
taskvvts login --username ana@example.com --password secret
echo secret | taskvvts login --username ana@example.com --password-stdin
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passwordStdin {
				p, err := readSecret(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, err)
				}
				password = p
			}
			return withRuntime(cmd, app, func(rt *runtime) error {
				n := &nav{}
				v := &flagView{username: username, password: password}
				if err := page.NewLogin(rt.env(n), v).Submit(cmd.Context()); err != nil {
					return writeErr(cmd, err)
				}

				data := map[string]any{"loggedIn": true}
				if tok, ok := rt.sess.Token(); ok {
					if c, err := session.DecodeClaims(tok, time.Now()); err == nil {
						data["subject"] = c.Subject
						data["expiresAt"] = c.ExpiresAt
					}
				}
				return writeOut(cmd, app, envelope{
					Data:  data,
					Meta:  n.meta(),
					Hints: []string{"taskvvts tasks list", "taskvvts tasks create --title ... --description ... --deadline 2030-01-31T17:00"},
				})
			})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Username (the account email)")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newRegisterCmd(app *App) *cobra.Command {
	v := &flagView{}
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passwordStdin {
				p, err := readSecret(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, err)
				}
				v.password = p
			}
			return withRuntime(cmd, app, func(rt *runtime) error {
				n := &nav{}
				err := page.NewRegister(rt.env(n), v).Submit(cmd.Context())
				if err != nil {
					if len(v.fieldErrs) > 0 {
						if werr := writeOut(cmd, app, envelope{Data: nil, Meta: map[string]any{"fieldErrors": v.fieldErrs}}); werr != nil {
							err = errors.Join(err, werr)
						}
					}
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, envelope{
					Data:  map[string]any{"registered": true, "email": strings.TrimSpace(v.email)},
					Meta:  n.meta(),
					Hints: []string{"taskvvts login --username " + strings.TrimSpace(v.email) + " --password-stdin"},
				})
			})
		},
	}
	cmd.Flags().StringVar(&v.name, "name", "", "First name")
	cmd.Flags().StringVar(&v.lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&v.email, "email", "", "Email (used as the username)")
	cmd.Flags().StringVar(&v.password, "password", "", "Password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token and the selected task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, app, func(rt *runtime) error {
				_, had := rt.sess.Token()
				if err := rt.sess.ClearToken(); err != nil {
					return writeErr(cmd, err)
				}
				if err := rt.sess.ClearSelectedTask(); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, envelope{
					Data: map[string]any{"loggedOut": had},
					Meta: map[string]any{"next": page.Login.String()},
				})
			})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored token's subject and expiry (not verified)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, app, func(rt *runtime) error {
				tok, ok := rt.sess.Token()
				if !ok {
					return writeErr(cmd, session.ErrNoToken)
				}
				claims, err := session.DecodeClaims(tok, time.Now())
				if err != nil {
					return writeErr(cmd, err)
				}
				meta := map[string]any{"api": rt.cfg.APIURL, "session": rt.sess.Scope()}
				if id, ok := rt.sess.SelectedTaskID(); ok {
					meta["selectedTask"] = id
				}
				return writeOut(cmd, app, envelope{Data: claims, Meta: meta})
			})
		},
	}
}
