package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/clip-stitch-cli/pkg/timeutil"
	"github.com/user/clip-stitch-cli/savefile"
)

var clipCmd = &cobra.Command{
	Use:   "clip",
	Short: "Manage the clips in a save file",
	Long:  `Add and list the clip selections stored in a JSON save file.`,
}

var clipAddCmd = &cobra.Command{
	Use:   "add <save-file> <start> <end>",
	Short: "Append a clip to a save file",
	Long: `Append a clip selection to a save file, creating the file if it does not
exist. Times can be given as HH:MM:SS, MM:SS, or seconds (fractions allowed).`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		start, err := timeutil.ParseTimeToSeconds(args[1])
		if err != nil {
			return fmt.Errorf("invalid start time: %w", err)
		}
		end, err := timeutil.ParseTimeToSeconds(args[2])
		if err != nil {
			return fmt.Errorf("invalid end time: %w", err)
		}
		if start >= end {
			return fmt.Errorf("clip end time must be after start time")
		}

		sf := &savefile.SaveFile{}
		if _, err := os.Stat(path); err == nil {
			sf, err = savefile.Load(path)
			if err != nil {
				return err
			}
		} else if !os.IsNotExist(err) {
			// Only a genuinely absent file starts a fresh save file;
			// anything else risks clobbering one we cannot read.
			return fmt.Errorf("failed to access save file: %w", err)
		}

		sf.Clips = append(sf.Clips, savefile.Clip{Start: start, End: end})
		if err := savefile.Save(path, sf); err != nil {
			return err
		}

		fmt.Printf("Clip added: #%d (%s - %s, %s)\n",
			len(sf.Clips)-1,
			timeutil.FormatTime(start), timeutil.FormatTime(end),
			timeutil.FormatDuration(end-start))
		return nil
	},
}

var clipListCmd = &cobra.Command{
	Use:   "list <save-file>",
	Short: "List the clips in a save file",
	Long:  `Display the clip selections in a save file as a table, in save-file order.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sf, err := savefile.Load(args[0])
		if err != nil {
			return err
		}

		if len(sf.Clips) == 0 {
			fmt.Println("No clips in save file.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tStart\tEnd\tDuration")
		fmt.Fprintln(w, "-\t-----\t---\t--------")
		for i, c := range sf.Clips {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				i,
				timeutil.FormatTime(c.Start),
				timeutil.FormatTime(c.End),
				timeutil.FormatDuration(c.Duration()))
		}
		w.Flush()

		fmt.Printf("\n%d clip(s), %s total.\n",
			len(sf.Clips), timeutil.FormatDuration(sf.TotalDuration()))
		return nil
	},
}

func init() {
	clipCmd.AddCommand(clipAddCmd)
	clipCmd.AddCommand(clipListCmd)
	rootCmd.AddCommand(clipCmd)
}
