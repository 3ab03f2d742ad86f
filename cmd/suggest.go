package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/shelf/internal/suggest"
)

func newSuggestCmd(root *rootOptions) *cobra.Command {
	var output string
	var width int
	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Print the suggestions the search box would show",
		Long: fmt.Sprintf(`Print what the suggestion panel shows for a query: at most %d books, in
catalog order. Queries shorter than %d characters are never sent to the
catalog and print nothing.`, suggest.MaxSuggestions, suggest.MinQueryLength),
		Example: `  shelf suggest tol
  shelf suggest dune -o yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}
			rt, err := root.load(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			query := strings.Join(args, " ")
			if !suggest.Eligible(query) {
				rt.log.V(1).Info("query below suggestion threshold", "query", query)
				return nil
			}
			books, err := rt.client.Search(cmd.Context(), query)
			if err != nil {
				return err
			}
			return writeBooks(cmd.OutOrStdout(), suggest.Cap(books), rt.output(output, width))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table|yaml|json|toml")
	cmd.Flags().IntVar(&width, "width", 0, "table width in columns (default: terminal width)")
	return cmd
}
