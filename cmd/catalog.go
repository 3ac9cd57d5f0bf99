package cmd

import (
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the course catalog",
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
