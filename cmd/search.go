package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/shelf/internal/filter"
	"github.com/oakwood-commons/shelf/internal/limiter"
)

type searchOptions struct {
	paging limiter.Config
	where  string
	output string
	width  int
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	opts := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print every book matching a query",
		Long: `Search the catalog and print every hit, in catalog order.

Unlike the suggestion panel, search accepts queries of any length. --where
narrows the hits with a CEL expression over id, title, author, price and
cover (or the whole record as book). --offset, --limit and --tail page
through what remains.`,
		Example: `  shelf search tolkien
  shelf search "rat i mir" -o json
  shelf search the --where 'price < 1000.0 && author.contains("Tolkien")' --limit 3
  shelf search tolkien --offset 2 --limit 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.output); err != nil {
				return err
			}
			if err := opts.paging.Validate(); err != nil {
				return err
			}
			var pred *filter.Predicate
			if strings.TrimSpace(opts.where) != "" {
				p, err := filter.Compile(opts.where)
				if err != nil {
					return fmt.Errorf("--where: %w", err)
				}
				pred = p
			}

			rt, err := root.load(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			query := strings.Join(args, " ")
			books, err := rt.client.Search(cmd.Context(), query)
			if err != nil {
				return err
			}
			rt.log.V(1).Info("search", "query", query, "hits", len(books))
			if pred != nil {
				if books, err = pred.Apply(books); err != nil {
					return fmt.Errorf("--where: %w", err)
				}
			}
			books = limiter.Apply(opts.paging, books)
			return writeBooks(cmd.OutOrStdout(), books, rt.output(opts.output, opts.width))
		},
	}
	cmd.Flags().IntVar(&opts.paging.Limit, "limit", 0, "print at most N books (0 = all)")
	cmd.Flags().IntVar(&opts.paging.Offset, "offset", 0, "skip the first N books")
	cmd.Flags().IntVar(&opts.paging.Tail, "tail", 0, "print only the last N books (excludes --limit)")
	cmd.Flags().StringVar(&opts.where, "where", "", "CEL filter, e.g. 'price < 1000.0'")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "output format: table|yaml|json|toml")
	cmd.Flags().IntVar(&opts.width, "width", 0, "table width in columns (default: terminal width)")
	return cmd
}

func (r *runEnv) output(format string, width int) bookOutput {
	return bookOutput{
		Format:    format,
		Width:     width,
		NoColor:   r.params.NoColor,
		AssetBase: r.cfg.API.AssetBaseURL,
		Currency:  r.labels().Currency,
	}
}
