package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordstats/internal/core/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file-id]",
	Short: "Show word statistics",
	Long: `Show per-word statistics across all files. With a file id, only words
present in that file are listed, along with their count in it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsService == nil {
		return errNotConfigured
	}

	scope := domain.AllFiles()
	if len(args) == 1 {
		id, err := parseFileID(args[0])
		if err != nil {
			return err
		}
		scope = domain.ForFile(id)
	}

	stats, err := statsService.List(cmd.Context(), scope)
	if err != nil {
		return fmt.Errorf("failed to get statistics: %w", err)
	}

	if len(stats) == 0 {
		cmd.Println("No words found.")
		return nil
	}

	_, scoped := scope.FileID()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	if scoped {
		fmt.Fprintln(w, "WORD\tIN FILE\tTOTAL\tFILES\tFILES %")
	} else {
		fmt.Fprintln(w, "WORD\tTOTAL\tFILES\tFILES %")
	}
	for _, s := range stats {
		if scoped {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.2f\n", s.Text, s.CountInCurrentFile, s.TotalCount, s.FileCount, s.FilePercentage)
		} else {
			fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\n", s.Text, s.TotalCount, s.FileCount, s.FilePercentage)
		}
	}
	return w.Flush()
}
