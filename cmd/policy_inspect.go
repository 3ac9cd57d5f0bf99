package cmd

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/darmiel/advisor/internal/core"
	"github.com/darmiel/advisor/internal/policy"
)

var policyInspectDump bool

var policyInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show how the policy table was parsed",
	Long: `Lists every credit limit rule in evaluation order together with the rows
that were dropped because their condition could not be classified.
Use --dump to print the parsed rules as Go values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := f.LoadPolicies()
		if err != nil {
			return err
		}
		rules, dropped := policy.Parse(rows)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "Kind", "Rule", "Limit", "Condition"})
		for i, r := range rules {
			t.AppendRow(table.Row{i + 1, r.Kind, r.Expression(), r.Ceiling, faint(r.Condition)})
		}
		for _, d := range dropped {
			t.AppendRow(table.Row{redCross, "dropped", d.Err.Error(), d.Row.Max, faint(d.Row.Condition)})
		}
		applyTableFormat(t)
		t.Render()

		if policyInspectDump {
			cfg := spew.ConfigState{
				Indent:                  "  ",
				DisablePointerAddresses: true,
				DisableCapacities:       true,
				SortKeys:                true,
			}
			// compiled programs are not useful in a dump
			dump := make([]core.CreditRule, len(rules))
			for i, r := range rules {
				r.Program = nil
				dump[i] = r
			}
			cfg.Fdump(os.Stdout, dump)
		}
		return nil
	},
}

func init() {
	policyCmd.AddCommand(policyInspectCmd)

	f.bindTableFlags(policyInspectCmd.Flags())
	policyInspectCmd.Flags().BoolVar(&policyInspectDump, "dump", false, "Dump the parsed rules")
}
