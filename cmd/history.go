package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/clip-stitch-cli/db"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past render runs",
	Long:  `Display recent render runs recorded in the local history database, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open()
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer database.Close()

		renders, err := db.ListRenders(database, historyLimit)
		if err != nil {
			return err
		}

		if len(renders) == 0 {
			fmt.Println("No renders recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Started\tStatus\tClips\tOutput\tVideo")
		fmt.Fprintln(w, "-------\t------\t-----\t------\t-----")
		for _, r := range renders {
			status := "pending"
			switch {
			case r.ErrorAt != nil:
				status = "error"
			case r.FinishedAt != nil:
				status = "ok"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				r.StartedAt.Local().Format("2006-01-02 15:04"),
				status,
				r.ClipCount,
				r.OutputPath,
				filepath.Base(r.VideoPath))
		}
		w.Flush()

		fmt.Printf("\n%d run(s).\n", len(renders))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
