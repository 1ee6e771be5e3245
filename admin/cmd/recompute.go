package cmd

import (
	"fmt"
	"io"

	"familykarting/api/modules"
	resultsservice "familykarting/api/services/results"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRecomputeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recompute [race-id...]",
		Short: "Recalculates the results of the given races, or of every finished race",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseRaceIDs(args)
			if err != nil {
				return err
			}

			env, err := connect()
			if err != nil {
				return err
			}
			defer env.close()

			races := modules.NewRaceService(&modules.ModuleDependencies{
				DB:     env.db,
				Config: env.cfg,
				Logger: env.log,
			})

			if len(ids) == 0 {
				calculated, failed, err := races.RecalculateAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d races calculated, %d failed\n", calculated, failed)
				return nil
			}

			for _, id := range ids {
				outcome, err := races.RecalculateResults(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("race %s: %w", id, err)
				}
				printOutcome(cmd.OutOrStdout(), outcome)
			}
			return nil
		},
	}
}

func parseRaceIDs(args []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(args))
	for _, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid race id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printOutcome(w io.Writer, outcome *resultsservice.Outcome) {
	fmt.Fprintf(w, "%s: %s", outcome.RaceID, outcome.Status)
	if outcome.Status == resultsservice.StatusCalculated {
		fmt.Fprintf(w, " (%d drivers)", len(outcome.Results))
	}
	fmt.Fprintln(w)
}
