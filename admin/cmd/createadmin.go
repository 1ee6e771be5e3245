package cmd

import (
	"errors"
	"fmt"
	"os"

	authservice "familykarting/api/services/auth"

	"github.com/spf13/cobra"
)

const passwordEnv = "ADMIN_PASSWORD"

func newCreateAdminCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Creates an admin or resets its password",
		Long:  "Creates an admin or resets its password. The password is read from " + passwordEnv + ".",
		RunE: func(cmd *cobra.Command, args []string) error {
			password := os.Getenv(passwordEnv)
			if password == "" {
				return errors.New(passwordEnv + " is not set")
			}

			env, err := connect()
			if err != nil {
				return err
			}
			defer env.close()

			// Sessions aren't touched here.
			service := authservice.NewAuthService(&authservice.AuthServiceDeps{
				DB:     env.db,
				Logger: env.log,
			})

			admin, err := service.CreateAdmin(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "admin %s ready (%s)\n", admin.Email, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
