package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the merged configuration",
	}

	var output string
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Print the merged configuration (defaults, config file, flags)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := root.load(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()
			data, err := rt.cfg.Encode(output)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	getCmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml|json|toml")

	themesCmd := &cobra.Command{
		Use:     "themes",
		Aliases: []string{"theme"},
		Short:   "List the available themes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := root.load(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Available themes (selected: %s):\n", rt.cfg.UI.Theme)
			for _, name := range rt.cfg.ThemeNames() {
				fmt.Fprintf(out, " - %s\n", name)
			}
			return nil
		},
	}

	configCmd.AddCommand(getCmd, themesCmd)
	return configCmd
}
