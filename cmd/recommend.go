package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var recommendProfile profileFlags

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend courses for the next semester",
	Long: `Computes a course recommendation for a student profile.
Runs locally against --catalog/--policies (or the tables of --config),
or remotely when --server is set.`,
	Example: `  # Locally
  advisor recommend --catalog courses.csv --policies policies.csv \
    --cgpa 3.1 --semester fall --passed CS101,MATH101 --failed CS102

  # Against a running server
  advisor recommend --server localhost:8080 --cgpa 2.4 --semester spring`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if f.IsRemote() && f.CatalogPath == "" && f.PolicyPath == "" && f.ConfigPath == "" {
			return recommendRemote(cmd)
		}
		return recommendLocally(cmd)
	},
}

func recommendRemote(cmd *cobra.Command) error {
	cli, err := f.GetClient()
	if err != nil {
		return err
	}
	log.Debug().Msg("Requesting recommendation from server...")
	rec, correlation, err := cli.Recommend(cmd.Context(), recommendProfile.payload())
	if err != nil {
		return logError(err, correlation, "failed to get recommendation")
	}
	printRecommendation(os.Stdout, rec)
	return nil
}

func recommendLocally(cmd *cobra.Command) error {
	base, eng, err := f.LoadAdvisor(cmd.Context())
	if err != nil {
		return err
	}
	profile, err := recommendProfile.payload().Profile()
	if err != nil {
		return err
	}

	rec, _, err := eng.Advise(base.Catalog, base.Resolver, profile)
	if err != nil {
		return err
	}
	printRecommendation(os.Stdout, rec)
	return nil
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendProfile.bind(recommendCmd.Flags())
	f.bindTableFlags(recommendCmd.Flags())

	_ = recommendCmd.MarkFlagRequired("cgpa")
	_ = recommendCmd.MarkFlagRequired("semester")
}
