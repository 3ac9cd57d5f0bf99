package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/advisor/pkg/client"
)

var auditListOpts client.ListAuditsOpts

// auditListCmd represents the audit list command
var auditListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"log", "ls"},
	Short:   "Retrieve and display audit log entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := f.GetClient()
		if err != nil {
			return err
		}

		log.Debug().Msg("Fetching audit log...")
		audits, correlation, err := cli.ListAudits(cmd.Context(), auditListOpts)
		if err != nil {
			return logError(err, correlation, "failed to retrieve audit log")
		}

		log.Info().Msgf("Retrieved %d audit entries", len(audits))

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			"Time", "ID", "Action", "Profile", "Limit", "Credits", "Courses", "Error",
		})

		for _, e := range audits {
			status := greenCheck
			if !e.Success {
				status = redCross
			}

			t.AppendRow(table.Row{
				e.Time.Format(time.RFC3339),
				e.ID,
				status + " " + e.Action,
				e.ProfileFingerprint,
				e.Ceiling,
				e.TotalCredits,
				truncate(strings.Join(e.Courses, ", "), 40),
				truncate(e.Error, 50),
			})
		}

		applyTableFormat(t)
		t.Render()
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditListCmd)

	auditListCmd.Flags().UintVarP(&auditListOpts.Limit, "limit", "n", 25, "Number of audit entries to retrieve")
	auditListCmd.Flags().StringVar(&auditListOpts.Action, "action", "", "Filter by action (recommend, explain)")
	auditListCmd.Flags().StringVar(&auditListOpts.Fingerprint, "fingerprint", "", "Filter by profile fingerprint")
}
