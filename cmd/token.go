package cmd

import (
	"time"

	"loans/core"
	"loans/service/session"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token <account>",
	Short: "sign an api access token for account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl <= 0 {
			ttl = time.Duration(cfg.Auth.TTL) * time.Second
		}

		token, err := session.Issue(cfg.Auth, core.AccountID(args[0]), ttl)
		if err != nil {
			cmd.PrintErrln("sign token failed:", err)
			return
		}

		cmd.Println(token)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().Duration("ttl", 0, "token validity, defaults to auth.ttl of the config")
}
