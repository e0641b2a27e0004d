package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ustat/internal/domain"
	"ustat/internal/services/calculation"
)

func cardFlags(f *pflag.FlagSet, p *domain.PaymentDetails) {
	f.StringVar(&p.CardHolder, "holder", "", "card holder name")
	f.StringVar(&p.CardNumber, "number", "", "card number")
	f.IntVar(&p.ExpiryMonth, "exp-month", 0, "expiry month (1-12)")
	f.IntVar(&p.ExpiryYear, "exp-year", 0, "expiry year")
	f.StringVar(&p.CVC, "cvc", "", "security code")
}

func (c *cli) subscriptionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription",
		Short: "Show, buy or cancel your plan",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := c.app.Subscriptions.Current(c.ctx(cmd))
			if err != nil {
				return err
			}
			return c.out.print(sub, func(w io.Writer) {
				if sub == nil {
					fmt.Fprintln(w, "No active subscription.")
					return
				}
				printSubscription(w, *sub)
			})
		},
	}

	var pay domain.PaymentDetails
	subscribe := &cobra.Command{
		Use:   "subscribe <package-id>",
		Short: "Buy a package with a stored card or a new one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := c.app.Subscriptions.Subscribe(c.ctx(cmd), args[0], pay)
			if err != nil {
				return err
			}
			return c.out.print(sub, func(w io.Writer) { printSubscription(w, sub) })
		},
	}
	subscribe.Flags().StringVar(&pay.PaymentMethodID, "method", "", "stored payment method id")
	cardFlags(subscribe.Flags(), &pay)

	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the current plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Subscriptions.Cancel(c.ctx(cmd)); err != nil {
				return err
			}
			return c.out.message("Subscription cancelled")
		},
	}

	cmd.AddCommand(show, subscribe, cancel)
	return cmd
}

func (c *cli) paymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Manage payment methods and billing history",
	}

	methods := &cobra.Command{
		Use:   "methods",
		Short: "List stored cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := c.app.Payments.Methods(c.ctx(cmd))
			if err != nil {
				return err
			}
			return c.out.print(ms, func(w io.Writer) {
				if len(ms) == 0 {
					fmt.Fprintln(w, "No stored cards.")
					return
				}
				fmt.Fprintln(w, "ID\tCARD\tEXPIRES\t")
				for _, m := range ms {
					def := ""
					if m.Default {
						def = "default"
					}
					fmt.Fprintf(w, "%s\t%s ****%s\t%02d/%d\t%s\n", m.ID, m.Brand, m.Last4, m.ExpiryMonth, m.ExpiryYear, def)
				}
			})
		},
	}

	var card domain.PaymentDetails
	add := &cobra.Command{
		Use:   "add",
		Short: "Store a new card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.app.Payments.AddMethod(c.ctx(cmd), card)
			if err != nil {
				return err
			}
			return c.out.print(m, func(w io.Writer) {
				fmt.Fprintf(w, "Stored card ****%s (%s)\n", m.Last4, m.ID)
			})
		},
	}
	cardFlags(add.Flags(), &card)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a stored card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Payments.DeleteMethod(c.ctx(cmd), args[0]); err != nil {
				return err
			}
			return c.out.message("Card removed")
		},
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "List past invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := c.app.Payments.History(c.ctx(cmd))
			if err != nil {
				return err
			}
			return c.out.print(inv, func(w io.Writer) {
				if len(inv) == 0 {
					fmt.Fprintln(w, "No invoices.")
					return
				}
				fmt.Fprintln(w, "DATE\tAMOUNT\tSTATUS\tDESCRIPTION")
				for _, i := range inv {
					fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n", domain.NewDate(i.CreatedAt), calculation.FormatTRY(i.Amount), i.Currency, i.Status, i.Description)
				}
			})
		},
	}

	cmd.AddCommand(methods, add, del, history)
	return cmd
}

func printSubscription(w io.Writer, s domain.Subscription) {
	name := s.PackageName
	if name == "" {
		name = s.PackageID
	}
	fmt.Fprintf(w, "package\t%s\n", name)
	fmt.Fprintf(w, "status\t%s\n", s.Status)
	if !s.EndDate.IsZero() {
		fmt.Fprintf(w, "until\t%s\n", domain.NewDate(s.EndDate))
	}
	fmt.Fprintf(w, "auto renew\t%t\n", s.AutoRenew)
}
