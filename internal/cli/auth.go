package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todoview/internal/auth"
	"github.com/idilsaglam/todoview/internal/ui"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the bearer token sent to the endpoint",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("usage: todoview auth <login|logout|status>")
			}
			return nil
		},
		RunE: func(*cobra.Command, []string) error {
			return usagef("usage: todoview auth <login|logout|status>")
		},
	}
	cmd.AddCommand(newAuthLoginCmd(a), newAuthLogoutCmd(), newAuthStatusCmd())
	return cmd
}

func newAuthLoginCmd(a *app) *cobra.Command {
	var expires time.Duration
	cmd := &cobra.Command{
		Use:   "login [token]",
		Short: "Save a token (read from stdin when not given)",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usagef("usage: todoview auth login [token]")
			}
			if expires < 0 {
				return usagef("auth login: --expires must not be negative")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			token := ""
			if len(args) == 1 {
				token = args[0]
			} else {
				fmt.Fprint(cmd.OutOrStdout(), "Paste your token: ")
				sc := bufio.NewScanner(cmd.InOrStdin())
				if !sc.Scan() {
					if err := sc.Err(); err != nil {
						return fmt.Errorf("read token: %w", err)
					}
					return errors.New("read token: no input")
				}
				token = sc.Text()
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if err := auth.SetToken(token, expires); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			a.logger.Debug().Dur("expires", expires).Msg("Token saved")
			ui.OK(cmd.OutOrStdout(), "logged in")
			return nil
		},
	}
	cmd.Flags().DurationVar(&expires, "expires", 0, "token lifetime, e.g. 24h (0 keeps it until logout)")
	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Delete the saved token",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ti, _ := auth.GetToken()
			if ti != nil && ti.Source == auth.SourceEnv {
				ui.OK(cmd.OutOrStdout(), "token is provided by "+auth.EnvToken+" (nothing to delete)")
				return nil
			}
			if err := auth.DeleteToken(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the token comes from",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			ti, err := auth.GetToken()
			if err != nil {
				return err
			}
			if ti == nil {
				fmt.Fprintln(w, ui.Current().Muted.Render("not logged in"))
				fmt.Fprintln(w, "Run: todoview auth login")
				return nil
			}
			fmt.Fprintf(w, "source: %s\n", ti.Source)
			switch {
			case ti.ExpiresAt == nil:
				fmt.Fprintln(w, "expires: never")
			case ti.Expired(time.Now()):
				fmt.Fprintf(w, "expires: %s (expired)\n", ti.ExpiresAt.UTC().Format(time.RFC3339))
			default:
				fmt.Fprintf(w, "expires: %s\n", ti.ExpiresAt.UTC().Format(time.RFC3339))
			}
			fmt.Fprintf(w, "token: %s\n", mask(ti.Token))
			fmt.Fprintln(w, "env override: "+auth.EnvToken)
			return nil
		},
	}
}

// mask hides all but the last four characters.
func mask(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
