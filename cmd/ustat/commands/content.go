package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ustat/internal/domain"
	"ustat/internal/services/calculation"
)

func (c *cli) blogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blog",
		Short: "Read the legal blog",
	}

	var q domain.PostQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := c.app.Blog.Posts(c.ctx(cmd), q)
			if err != nil {
				return err
			}
			return c.out.print(posts, func(w io.Writer) {
				if len(posts) == 0 {
					fmt.Fprintln(w, "No posts.")
					return
				}
				fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tTITLE")
				for _, p := range posts {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, domain.NewDate(p.PublishedAt), p.Category, p.Title)
				}
			})
		},
	}
	list.Flags().IntVar(&q.Page, "page", 0, "page number, from 1")
	list.Flags().IntVar(&q.Limit, "limit", 0, "posts per page")
	list.Flags().StringVar(&q.Category, "category", "", "only this category")
	list.Flags().StringVar(&q.Search, "search", "", "search titles and summaries")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Read one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.Blog.Post(c.ctx(cmd), args[0])
			if err != nil {
				return err
			}
			return c.out.print(p, func(w io.Writer) {
				fmt.Fprintln(w, p.Title)
				fmt.Fprintln(w, strings.Repeat("=", len([]rune(p.Title))))
				if p.Author != "" {
					fmt.Fprintf(w, "%s, %s\n\n", p.Author, domain.NewDate(p.PublishedAt))
				}
				if p.Content != "" {
					fmt.Fprintln(w, p.Content)
				} else {
					fmt.Fprintln(w, p.Summary)
				}
			})
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func (c *cli) packagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "List subscription packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pkgs, err := c.app.Subscriptions.Packages(c.ctx(cmd))
			if err != nil {
				return err
			}
			return c.out.print(pkgs, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tPRICE\tPERIOD\t")
				for _, p := range pkgs {
					mark := ""
					if p.Popular {
						mark = "*"
					}
					fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\n", p.ID, p.Name, calculation.FormatTRY(p.Price), p.Currency, p.Period, mark)
				}
			})
		},
	}
}
