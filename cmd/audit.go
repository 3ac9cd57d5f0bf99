package cmd

import (
	"github.com/spf13/cobra"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check the audit log of recommendations",
	Long:  `View the audit log of the server. Requires an admin session (advisor login).`,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
