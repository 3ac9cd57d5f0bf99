package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file and the tables it references",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := f.LoadServerConfig()
		if err != nil {
			log.Error().Err(err).Msgf("%s Configuration is invalid.", redCross)
			return BeQuietError{}
		}

		if _, err := f.LoadKnowledge(cmd.Context()); err != nil {
			log.Error().Err(err).
				Strs("files", []string{cfg.Knowledge.Catalog, cfg.Knowledge.Policies}).
				Msgf("%s Knowledge tables are invalid.", redCross)
			return BeQuietError{}
		}

		logSuccess("Configuration is valid.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)

	f.bindConfigFlag(configValidateCmd.Flags())
}
