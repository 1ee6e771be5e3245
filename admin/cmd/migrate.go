package cmd

import "github.com/spf13/cobra"

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Applies the pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := connect()
			if err != nil {
				return err
			}
			defer env.close()

			if err := env.migrate(); err != nil {
				return err
			}

			env.log.Info("Migrations applied")
			return nil
		},
	}
}
