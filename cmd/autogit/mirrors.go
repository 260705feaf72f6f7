package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"autogit-hq/autogit/pkg/mirror"
)

var mirrorsFlags struct {
	jsonOut bool
}

var mirrorsCmd = &cobra.Command{
	Use:   "mirrors",
	Short: "List materialized mirrors",
	Long: `Walk the repository root and list every bare mirror found there,
with its HEAD commit, branch, and upstream URL.

Examples:
  # Table output
  autogit mirrors

  # JSON output
  autogit mirrors --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store := mirror.NewStore(cfg.Autogit.RepoDir)
		infos, err := store.List()
		if err != nil {
			return fmt.Errorf("failed to list mirrors under %q: %w", cfg.Autogit.RepoDir, err)
		}

		if mirrorsFlags.jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(infos)
		}

		if len(infos) == 0 {
			fmt.Printf("No mirrors under %s\n", cfg.Autogit.RepoDir)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tHEAD\tBRANCH\tREMOTE")
		for _, info := range infos {
			head := info.Head
			if len(head) > 12 {
				head = head[:12]
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Name, head, info.Branch, info.Remote)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(mirrorsCmd)

	mirrorsCmd.Flags().BoolVar(&mirrorsFlags.jsonOut, "json", false, "output as JSON")
}
