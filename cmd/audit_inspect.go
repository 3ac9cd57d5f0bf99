package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/advisor/pkg/client"
)

var auditInspectCmd = &cobra.Command{
	Use:     "inspect CORRELATION-ID",
	Short:   "Show full details of a specific audit log entry",
	Example: `  advisor audit inspect d3k1qv2a0fq5b8c9r0g0`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		correlationID := args[0]
		if correlationID == "" {
			return fmt.Errorf("correlation ID cannot be empty")
		}

		cli, err := f.GetClient()
		if err != nil {
			return err
		}

		log.Debug().Msgf("Retrieving entry with correlation ID '%s'...", correlationID)
		audits, correlation, err := cli.ListAudits(cmd.Context(), client.ListAuditsOpts{
			Limit:         1,
			CorrelationID: correlationID,
		})
		if err != nil {
			return logError(err, correlation, "failed to retrieve audit log entry")
		}
		if len(audits) == 0 {
			log.Warn().Str("correlation_id", correlationID).Msg("no audit log entries found")
			return nil
		}

		entry := audits[0]

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		printKV := func(key string, val any) {
			fmt.Printf("  %-26s %v\n", faint(key)+":", val)
		}
		printCodes := func(codes []string) string {
			if len(codes) == 0 {
				return faint("(none)")
			}
			return strings.Join(codes, ", ")
		}

		status := green("succeeded")
		if !entry.Success {
			status = red("failed")
		}

		fmt.Println(bold("\n── Audit Entry ──"))
		printKV("Correlation ID", correlationID)
		printKV("Time", entry.Time.Local().Format(time.RFC1123))
		printKV("Action", entry.Action)
		printKV("Status", status)
		if entry.KnowledgeVersion != "" {
			printKV("Knowledge", entry.KnowledgeVersion)
		}

		fmt.Println(bold("\n── Profile ──"))
		printKV("Fingerprint", entry.ProfileFingerprint)
		if p := entry.Profile; p != nil {
			printKV("CGPA", fmt.Sprintf("%.2f", p.CGPA))
			printKV("Semester", p.Semester)
			printKV("Passed", printCodes(p.Passed))
			printKV("Failed", printCodes(p.Failed))
		} else {
			fmt.Printf("  %s\n", faint("(profile redacted)"))
		}

		fmt.Println(bold("\n── Result ──"))
		if entry.Error != "" {
			printKV("Error Message", red(entry.Error))
		} else {
			printKV("Credit Limit", entry.Ceiling)
			printKV("Total Credits", entry.TotalCredits)
			printKV("Courses", printCodes(entry.Courses))
		}
		fmt.Println()

		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditInspectCmd)
}
