package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/advisor/internal/catalog"
	"github.com/darmiel/advisor/internal/core"
)

var catalogListOutput string

var catalogListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all courses of the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		var courses []core.Course
		if f.IsRemote() && f.CatalogPath == "" && f.ConfigPath == "" {
			cli, err := f.GetClient()
			if err != nil {
				return err
			}
			view, correlation, err := cli.Catalog(cmd.Context())
			if err != nil {
				return logError(err, correlation, "failed to retrieve catalog")
			}
			log.Debug().Str("version", view.Version).Msg("retrieved catalog")
			courses = view.Courses
		} else {
			local, err := f.LoadCatalog()
			if err != nil {
				return err
			}
			courses = local
		}

		switch catalogListOutput {
		case "table", "":
			printCatalog(os.Stdout, courses)
		case "csv":
			return catalog.WriteCourses(os.Stdout, courses)
		default:
			return fmt.Errorf("unknown output format '%s' (table, csv)", catalogListOutput)
		}
		return nil
	},
}

func printCatalog(w io.Writer, courses []core.Course) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Code", "Name", "Credits", "Offered", "Prerequisites", "Co-requisites"})
	for _, c := range courses {
		t.AppendRow(table.Row{
			bold(c.Code),
			truncate(c.Name, 40),
			c.CreditHours,
			c.Offered,
			orNone(c.Prerequisites),
			orNone(c.Corequisites),
		})
	}
	applyTableFormat(t)
	t.Render()
}

func orNone(codes []string) string {
	if len(codes) == 0 {
		return faint("-")
	}
	return strings.Join(codes, ", ")
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)

	f.bindTableFlags(catalogListCmd.Flags())
	catalogListCmd.Flags().StringVarP(&catalogListOutput, "output", "o", "table", "Output format (table, csv)")
}
