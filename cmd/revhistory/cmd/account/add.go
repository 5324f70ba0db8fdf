package account

import (
	"fmt"
	"os"

	"revhistory/cmd/revhistory/cmd/types"
	"revhistory/internal/app/server"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var displayName string

var AddCmd = &cobra.Command{
	Use:   "add <login>",
	Short: "Create an account",
	Long:  `Creates an account. The password is read from the terminal without echo.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := types.Config(cmd.Context())
		log := types.Logger(cmd.Context())

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		fmt.Println()

		fmt.Print("Repeat password: ")
		confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		fmt.Println()

		if string(password) != string(confirm) {
			return fmt.Errorf("passwords do not match")
		}

		app, err := server.New(cmd.Context(), cfg, log)
		if err != nil {
			return fmt.Errorf("init app: %w", err)
		}
		defer app.Close()

		id, err := app.Accounts().Register(cmd.Context(), args[0], displayName, string(password))
		if err != nil {
			return fmt.Errorf("register: %w", err)
		}

		color.Green("Account %q created with id %d", args[0], id)
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVar(&displayName, "name", "", "display name shown as revision author")
}
