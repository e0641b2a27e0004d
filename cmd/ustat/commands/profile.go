package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ustat/internal/domain"
)

func (c *cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Fetch the profile from the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.rehydrate(cmd); err != nil {
				return err
			}
			u, err := c.app.Users.Profile(c.ctx(cmd))
			if err != nil {
				return err
			}
			return c.out.print(u, func(w io.Writer) { printUser(w, u) })
		},
	}

	var p domain.ProfileUpdate
	update := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.rehydrate(cmd); err != nil {
				return err
			}
			u, err := c.app.Users.UpdateProfile(c.ctx(cmd), p)
			if err != nil {
				return err
			}
			return c.out.print(u, func(w io.Writer) { printUser(w, u) })
		},
	}
	update.Flags().StringVar(&p.FirstName, "first-name", "", "first name")
	update.Flags().StringVar(&p.LastName, "last-name", "", "last name")
	update.Flags().StringVar(&p.Email, "email", "", "e-mail")
	update.Flags().StringVar(&p.Phone, "phone", "", "phone number")

	var pc domain.PasswordChange
	password := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.rehydrate(cmd); err != nil {
				return err
			}
			if err := c.app.Users.ChangePassword(c.ctx(cmd), pc); err != nil {
				return err
			}
			return c.out.message("Password changed")
		},
	}
	password.Flags().StringVar(&pc.Current, "current", "", "current password")
	password.Flags().StringVar(&pc.New, "new", "", "new password")
	password.Flags().StringVar(&pc.Confirm, "confirm", "", "new password again")

	cmd.AddCommand(show, update, password)
	return cmd
}

// rehydrate restores the stored session so commands that need a signed-in
// user can run in a fresh process.
func (c *cli) rehydrate(cmd *cobra.Command) error {
	if err := c.app.Session.Rehydrate(c.ctx(cmd)); err != nil {
		return err
	}
	if !c.app.Session.Snapshot().IsAuthenticated {
		return domain.ErrNotAuthenticated
	}
	return nil
}

func printUser(w io.Writer, u domain.User) {
	fmt.Fprintf(w, "id\t%s\n", u.ID)
	fmt.Fprintf(w, "name\t%s\n", u.DisplayName())
	fmt.Fprintf(w, "email\t%s\n", u.Email)
	if u.Phone != "" {
		fmt.Fprintf(w, "phone\t%s\n", u.Phone)
	}
}
