package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "oracle-server",
	Short: "Effect resolution server for card game matches",
	Long: `oracle-server hosts the oracle-text resolution engine behind a
websocket gateway. Matches are created over the admin HTTP surface;
players connect over /ws to receive game views and answer pending
resolution steps.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
