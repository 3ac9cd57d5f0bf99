package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/darmiel/advisor/internal/core"
)

var (
	whyProfile    profileFlags
	whyCourseCode string
)

var whyCmd = &cobra.Command{
	Use:   "why",
	Short: "Explain how a recommendation was reached",
	Long: `Runs a recommendation and prints a detailed trace: which credit limit rule
matched the CGPA and why every course was included or skipped in each pass.
Runs locally against --catalog/--policies, or remotely when --server is set.`,
	Example: `  # Why is CS201 not recommended?
  advisor why --catalog courses.csv --policies policies.csv \
    --cgpa 2.1 --semester fall --passed CS101 --course CS201`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if f.IsRemote() && f.CatalogPath == "" && f.PolicyPath == "" && f.ConfigPath == "" {
			cli, err := f.GetClient()
			if err != nil {
				return err
			}
			trace, correlation, err := cli.Explain(cmd.Context(), whyProfile.payload())
			if err != nil {
				return logError(err, correlation, "failed to explain recommendation")
			}
			printTrace(os.Stdout, trace, whyCourseCode)
			return nil
		}

		base, eng, err := f.LoadAdvisor(cmd.Context())
		if err != nil {
			return err
		}
		profile, err := whyProfile.payload().Profile()
		if err != nil {
			return err
		}
		rec, ceiling, err := eng.Advise(base.Catalog, base.Resolver, profile)
		if err != nil {
			return err
		}
		printTrace(os.Stdout, &core.EvaluationTrace{
			Profile:        profile,
			Ceiling:        ceiling,
			Recommendation: rec,
			Decisions:      rec.Explanations.Entries(),
		}, whyCourseCode)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whyCmd)

	whyProfile.bind(whyCmd.Flags())
	f.bindTableFlags(whyCmd.Flags())
	whyCmd.Flags().StringVar(&whyCourseCode, "course", "", "Filter decisions to a specific course code (optional)")

	_ = whyCmd.MarkFlagRequired("cgpa")
	_ = whyCmd.MarkFlagRequired("semester")
}
