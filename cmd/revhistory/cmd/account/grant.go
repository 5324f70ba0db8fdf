package account

import (
	"fmt"
	"strconv"

	"revhistory/cmd/revhistory/cmd/types"
	"revhistory/internal/app/server"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var GrantCmd = &cobra.Command{
	Use:   "grant <account-id> <permission>...",
	Short: "Grant permissions to an account",
	Long: `Grants permissions to an account. Account 0 is the anonymous visitor.

Examples of permissions:
  "view all article revisions"
  "view news article revisions"
  "revert all article revisions"
  "delete all article revisions"
  "administer article"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := types.Config(cmd.Context())
		log := types.Logger(cmd.Context())

		accountID, err := strconv.Atoi(args[0])
		if err != nil || accountID < 0 {
			return fmt.Errorf("invalid account id %q", args[0])
		}

		app, err := server.New(cmd.Context(), cfg, log)
		if err != nil {
			return fmt.Errorf("init app: %w", err)
		}
		defer app.Close()

		if err := app.Access().Grant(cmd.Context(), accountID, args[1:]...); err != nil {
			return err
		}

		for _, p := range args[1:] {
			color.Green("granted %q to account %d", p, accountID)
		}
		return nil
	},
}
