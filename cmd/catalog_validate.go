package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/advisor/internal/core"
)

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the catalog and policy tables",
	Long: `Loads the course catalog and policy table and reports data errors
(missing or malformed credit hours, duplicate codes, oversized catalogs) as
well as credit limit rows that cannot be classified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := f.LoadKnowledge(cmd.Context())
		if err != nil {
			var dataErr core.DataError
			if errors.As(err, &dataErr) {
				log.Error().
					Int("row", dataErr.Row).
					Str("field", dataErr.Field).
					Interface("value", dataErr.Value).
					Msgf("%s invalid data", redCross)
				return BeQuietError{}
			}
			return fmt.Errorf("loading tables: %w", err)
		}
		logSuccess("catalog is valid: %d course(s), %d credit rule(s), version %s",
			len(base.Catalog), len(base.Resolver.Rules()), bold(base.Version))
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)

	f.bindTableFlags(catalogValidateCmd.Flags())
}
