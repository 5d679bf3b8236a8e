package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planarforge/oracle-server-go/internal/server"
)

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token <token>",
	Short: "Generate a bcrypt hash for the gateway join token",
	Long: `hash-token prints the bcrypt hash of the given join token. Put the
hash in server.join_token_hash (or ORACLE_SERVER_JOIN_TOKEN_HASH) and hand
the plain token to players.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := server.HashJoinToken(args[0])
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashTokenCmd)
}
