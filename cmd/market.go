package cmd

import (
	"encoding/json"

	"loans/core"

	"github.com/spf13/cobra"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "inspect markets in the state store",
}

var marketListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "list all markets",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		e := provideEngine()
		defer e.Close()

		markets, err := e.markets.ListMarkets(ctx)
		if err != nil {
			cmd.PrintErrln("list markets failed:", err)
			return
		}

		printJSON(cmd, markets)
	},
}

var marketStatusCmd = &cobra.Command{
	Use:   "status <currency>",
	Short: "show market status",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		currency, err := core.ParseCurrencyID(args[0])
		if err != nil {
			cmd.PrintErrln("invalid currency:", err)
			return
		}

		e := provideEngine()
		defer e.Close()

		status, err := e.markets.GetMarketStatus(ctx, currency)
		if err != nil {
			cmd.PrintErrln("get market status failed:", err)
			return
		}

		printJSON(cmd, status)
	},
}

var liquidityCmd = &cobra.Command{
	Use:   "liquidity <account>",
	Short: "show account liquidity and shortfall",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		e := provideEngine()
		defer e.Close()

		liquidity, err := e.markets.GetAccountLiquidity(ctx, core.AccountID(args[0]))
		if err != nil {
			cmd.PrintErrln("get account liquidity failed:", err)
			return
		}

		printJSON(cmd, liquidity)
	},
}

func printJSON(cmd *cobra.Command, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		cmd.PrintErrln(err)
		return
	}

	cmd.Println(string(data))
}

func init() {
	rootCmd.AddCommand(marketCmd)
	marketCmd.AddCommand(marketListCmd)
	marketCmd.AddCommand(marketStatusCmd)
	rootCmd.AddCommand(liquidityCmd)
}
