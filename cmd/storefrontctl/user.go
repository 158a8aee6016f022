package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storefront-admin/storefront-admin/internal/shared"
	"github.com/storefront-admin/storefront-admin/internal/users"
)

var (
	userName     string
	userEmail    string
	userPassword string
	userProfile  string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a back-office account",
	Long: `Create a user that can sign in through /manager/entrar.

Examples:
  storefrontctl create-user --name Ana --email ana@example.com --password s3cret! --perfil admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !shared.ValidProfile(userProfile) {
			return fmt.Errorf("unknown profile %q", userProfile)
		}
		ctx := cmd.Context()
		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		user, err := users.NewService(users.NewRepository(pool)).Create(ctx, users.NewUser{
			Name:     userName,
			Email:    userEmail,
			Password: userPassword,
			Profile:  userProfile,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %d created (%s, %s)\n", user.ID, user.Email, user.Profile)
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVar(&userName, "name", "", "Display name")
	createUserCmd.Flags().StringVar(&userEmail, "email", "", "Login email")
	createUserCmd.Flags().StringVar(&userPassword, "password", "", "Login password")
	createUserCmd.Flags().StringVar(&userProfile, "perfil", shared.ProfileAdmin, "Profile: admin, gerente or cliente")
	for _, name := range []string{"name", "email", "password"} {
		_ = createUserCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(createUserCmd)
}
