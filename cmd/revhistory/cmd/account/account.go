package account

import (
	"github.com/spf13/cobra"
)

// AccountCmd groups account administration commands.
var AccountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts and permissions",
}

func init() {
	AccountCmd.AddCommand(AddCmd)
	AccountCmd.AddCommand(GrantCmd)
}
