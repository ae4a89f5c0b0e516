package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/tui"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage API users and their tokens",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user and print its bearer token",
	Long: `Create a user and print its bearer token. The token is shown once;
only its hash is stored.

Examples:
  tally user add --email ada@example.com --name "Ada Lovelace"
  tally user add --email admin@example.com --superuser`,
	Args: cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		superuser, _ := cmd.Flags().GetBool("superuser")

		user, token, err := store.CreateUser(cmd.Context(), db.CreateUserRequest{
			Email:     email,
			FullName:  name,
			Superuser: superuser,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, tui.Success(fmt.Sprintf("Created user %s (%s)", user.Email, user.ID)))
		fmt.Fprintln(out, "Token:", tui.Highlight(token))
		return nil
	}),
}

var userListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List users",
	Args:    cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		users, err := store.GetUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("error fetching users: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderUsers(users))
		return nil
	}),
}

var userRotateCmd = &cobra.Command{
	Use:   "rotate-token",
	Short: "Issue a new token for a user, revoking the old one",
	Args:  cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		email, _ := cmd.Flags().GetString("email")
		token, err := store.RotateToken(cmd.Context(), email)
		if err != nil {
			return fmt.Errorf("failed to rotate token: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, tui.Success("Token rotated for "+email))
		fmt.Fprintln(out, "Token:", tui.Highlight(token))
		return nil
	}),
}

func init() {
	userAddCmd.Flags().String("email", "", "email address (required)")
	userAddCmd.Flags().String("name", "", "full name")
	userAddCmd.Flags().Bool("superuser", false, "allow generating and paying remittances")
	_ = userAddCmd.MarkFlagRequired("email")

	userRotateCmd.Flags().String("email", "", "email address (required)")
	_ = userRotateCmd.MarkFlagRequired("email")

	userCmd.AddCommand(userAddCmd, userListCmd, userRotateCmd)
}
