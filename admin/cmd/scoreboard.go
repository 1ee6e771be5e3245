package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"familykarting/api/filters"
	resultrepo "familykarting/api/repositories/result"
	scoreboardservice "familykarting/api/services/scoreboard"
	"familykarting/pkg/scoring"

	"github.com/spf13/cobra"
)

func newScoreboardCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "scoreboard",
		Short: "Prints the overall standings, or the ones of a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := connect()
			if err != nil {
				return err
			}
			defer env.close()

			service := scoreboardservice.NewScoreboardService(&scoreboardservice.ScoreboardServiceDeps{
				Rows:     resultrepo.NewResultRepository(env.db),
				Location: env.cfg.Location(),
				Logger:   env.log,
			})

			scoreboard := service.GetScoreboard(cmd.Context(), &filters.ScoreboardFilter{Year: year})

			board := scoreboard.Overall
			if year != 0 {
				board = scoreboard.Yearly[year]
			}

			return printBoard(cmd.OutOrStdout(), board)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "only the standings of this year")

	return cmd
}

func printBoard(w io.Writer, board scoring.Board) error {
	if len(board.Entries) == 0 {
		_, err := fmt.Fprintln(w, "no results")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tDRIVER\tPOINTS\tRACES\tWINS")
	for i, entry := range board.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", i+1, entry.DriverName, entry.TotalPoints, entry.RacesCount, entry.Wins)
	}
	return tw.Flush()
}
