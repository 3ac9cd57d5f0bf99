package cmd

import (
	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect the credit limit policy",
}

func init() {
	rootCmd.AddCommand(policyCmd)
}
