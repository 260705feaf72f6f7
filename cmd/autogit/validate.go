package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load and validate the configuration file, then print the resolved
repository root and tag table.

Examples:
  # Validate the default config
  autogit validate

  # Validate a specific file
  autogit validate --config /etc/autogit/config.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration OK: %s\n\n", cfgFile)
		fmt.Printf("Repository root: %s\n\n", cfg.Autogit.RepoDir)

		if len(cfg.Autogit.Tags) == 0 {
			fmt.Println("No tags configured; every repository name will be rejected.")
			return nil
		}

		names := make([]string, 0, len(cfg.Autogit.Tags))
		for name := range cfg.Autogit.Tags {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TAG\tPREFIX")
		for _, name := range names {
			fmt.Fprintf(w, "%s\t%s\n", name, cfg.Autogit.Tags[name].Prefix)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
