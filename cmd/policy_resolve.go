package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/darmiel/advisor/internal/core"
	"github.com/darmiel/advisor/internal/policy"
	"github.com/darmiel/advisor/internal/validation"
)

var policyResolveCGPA float64

var policyResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show the credit limit for a CGPA",
	Example: `  advisor policy resolve --policies policies.csv --cgpa 2.75`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validation.ValidateProfile(core.StudentProfile{
			CGPA:     policyResolveCGPA,
			Semester: core.SemesterFall,
		}); err != nil {
			return err
		}

		rules, err := loadRules(cmd)
		if err != nil {
			return err
		}
		trace := policy.New(rules).Trace(policyResolveCGPA)
		printCeiling(os.Stdout, trace)
		fmt.Printf("Credit limit for CGPA %.2f: %s\n", policyResolveCGPA, bold(trace.Ceiling))
		return nil
	},
}

// loadRules reads the credit rules from the server or the local policy table.
func loadRules(cmd *cobra.Command) (core.CreditPolicy, error) {
	if f.IsRemote() && f.PolicyPath == "" && f.ConfigPath == "" {
		cli, err := f.GetClient()
		if err != nil {
			return nil, err
		}
		view, correlation, err := cli.Policy(cmd.Context())
		if err != nil {
			return nil, logError(err, correlation, "failed to retrieve policy")
		}
		// expr rules are compiled server-side and are re-parsed from their rows
		return policy.NewFromRows(view.Rows).Rules(), nil
	}
	rows, err := f.LoadPolicies()
	if err != nil {
		return nil, err
	}
	return policy.NewFromRows(rows).Rules(), nil
}

func init() {
	policyCmd.AddCommand(policyResolveCmd)

	f.bindTableFlags(policyResolveCmd.Flags())
	policyResolveCmd.Flags().Float64Var(&policyResolveCGPA, "cgpa", 0, "Cumulative GPA (0.00 - 4.00)")
	_ = policyResolveCmd.MarkFlagRequired("cgpa")
}
