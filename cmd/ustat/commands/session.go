package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ustat/internal/domain"
)

type statusView struct {
	Route         domain.Route `json:"route"`
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
	Store         string       `json:"store"`
	API           string       `json:"api"`
	CalcAPI       string       `json:"calcApi"`
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the app would start and who is signed in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := c.app.Start(c.ctx(cmd))
			if err != nil {
				return err
			}
			st := c.app.Session.Snapshot()
			v := statusView{
				Route:         route,
				Authenticated: st.IsAuthenticated,
				User:          st.User,
				Store:         c.wire.Config.Store,
				API:           c.wire.API.BaseURL(),
				CalcAPI:       c.wire.CalcAPI.BaseURL(),
			}
			return c.out.print(v, func(w io.Writer) {
				fmt.Fprintf(w, "route\t%s\n", v.Route)
				if v.User != nil {
					fmt.Fprintf(w, "user\t%s <%s>\n", v.User.DisplayName(), v.User.Email)
				} else {
					fmt.Fprintf(w, "user\t(signed out)\n")
				}
				fmt.Fprintf(w, "store\t%s\n", v.Store)
				fmt.Fprintf(w, "api\t%s\n", v.API)
				fmt.Fprintf(w, "calc api\t%s\n", v.CalcAPI)
			})
		},
	}
}

func (c *cli) onboardingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboarding",
		Short: "Manage the first-run introduction",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "done",
		Short: "Mark the introduction as seen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.FinishOnboarding(c.ctx(cmd)); err != nil {
				return err
			}
			return c.out.message("Onboarding complete")
		},
	})
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with e-mail and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := c.readSecret("Password: ")
				if err != nil {
					return err
				}
				password = p
			}
			u, err := c.app.Auth.Login(c.ctx(cmd), domain.Credentials{Email: email, Password: password})
			if err != nil {
				return err
			}
			return c.out.print(u, func(w io.Writer) {
				fmt.Fprintf(w, "Signed in as %s\n", u.DisplayName())
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account e-mail")
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when omitted)")
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var r domain.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.app.Auth.Register(c.ctx(cmd), r)
			if err != nil {
				return err
			}
			return c.out.print(resp, func(w io.Writer) {
				fmt.Fprintf(w, "Registered %s. You can sign in now.\n", r.Email)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&r.FirstName, "first-name", "", "first name")
	f.StringVar(&r.LastName, "last-name", "", "last name")
	f.StringVar(&r.Email, "email", "", "e-mail")
	f.StringVar(&r.Phone, "phone", "", "phone number")
	f.StringVar(&r.Password, "password", "", "password")
	f.StringVar(&r.Confirm, "confirm", "", "password again")
	f.BoolVar(&r.AcceptTerms, "accept-terms", false, "accept the terms of use")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Auth.Logout(c.ctx(cmd)); err != nil {
				return err
			}
			return c.out.message("Signed out")
		},
	}
}

func (c *cli) forgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a password reset link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Auth.ForgotPassword(c.ctx(cmd), args[0]); err != nil {
				return err
			}
			return c.out.message("If the address is registered, a reset link is on its way")
		},
	}
}

func (c *cli) resetPasswordCmd() *cobra.Command {
	var r domain.PasswordReset
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with a reset token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Auth.ResetPassword(c.ctx(cmd), r); err != nil {
				return err
			}
			return c.out.message("Password updated")
		},
	}
	cmd.Flags().StringVar(&r.Token, "token", "", "token from the reset e-mail")
	cmd.Flags().StringVar(&r.Password, "password", "", "new password")
	cmd.Flags().StringVar(&r.Confirm, "confirm", "", "new password again")
	return cmd
}

// readSecret reads one line from stdin, prompting on stderr.
func (c *cli) readSecret(prompt string) (string, error) {
	fmt.Fprint(c.stderr, prompt)
	line, err := bufio.NewReader(c.stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
