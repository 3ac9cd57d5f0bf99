package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/darmiel/advisor/internal/core"
)

const noRecommendations = "No courses could be recommended based on your profile."

// printRecommendation renders the course table followed by the decision transcript.
func printRecommendation(w io.Writer, rec *core.Recommendation) {
	if len(rec.Courses) == 0 {
		_, _ = fmt.Fprintln(w, noRecommendations)
	} else {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"Code", "Course", "Credits"})
		for _, c := range rec.Courses {
			t.AppendRow(table.Row{bold(c.Code), c.Name, c.CreditHours})
		}
		t.AppendFooter(table.Row{"", "Total", fmt.Sprintf("%d / %d", rec.TotalCredits, rec.Ceiling)})
		applyTableFormat(t)
		t.Render()
	}

	messages := rec.Explanations.Messages()
	if len(messages) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, bold("Explanation of Decisions"))
	for _, msg := range messages {
		_, _ = fmt.Fprintf(w, "  • %s\n", msg)
	}
}

// printTrace renders how the credit limit was resolved and every decision of both passes.
func printTrace(w io.Writer, trace *core.EvaluationTrace, onlyCode string) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	_, _ = fmt.Fprintf(w, "\n%s for CGPA %s in %s\n",
		bold("Evaluation Trace"),
		bold(fmt.Sprintf("%.2f", trace.Profile.CGPA)),
		trace.Profile.Semester)
	_, _ = fmt.Fprintln(w, faint("---------------------------------------------------"))

	printCeiling(w, trace.Ceiling)

	for _, pass := range []core.Pass{core.PassRetake, core.PassGeneral} {
		title := "Pass 1: retakes"
		if pass == core.PassGeneral {
			title = "Pass 2: general eligibility"
		}
		_, _ = fmt.Fprintln(w, bold(title))

		printed := 0
		for _, d := range trace.Decisions {
			if d.Pass != pass || (onlyCode != "" && !strings.EqualFold(d.Code, onlyCode)) {
				continue
			}
			icon := red("✖")
			if d.Reason.Accepted() {
				icon = green("✔")
			}
			_, _ = fmt.Fprintf(w, "    %s %s %s\n", icon, bold(d.Code), faint("["+string(d.Reason)+"]"))
			_, _ = fmt.Fprintf(w, "          ↳ %s\n", d.Message)
			printed++
		}
		if printed == 0 {
			_, _ = fmt.Fprintf(w, "    %s\n", faint("(no decisions)"))
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintln(w, "---------------------------------------------------")
	if rec := trace.Recommendation; rec != nil {
		_, _ = fmt.Fprintf(w, "Result: %s course(s), %d of %d credits\n",
			bold(green(len(rec.Courses))), rec.TotalCredits, rec.Ceiling)
	}
	if trace.CorrelationID != "" {
		_, _ = fmt.Fprintf(w, "%s\n", faint("correlation: "+trace.CorrelationID))
	}
	_, _ = fmt.Fprintln(w)
}

// printCeiling renders the evaluation of every credit limit rule up to the first match.
func printCeiling(w io.Writer, trace core.CeilingTrace) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	_, _ = fmt.Fprintln(w, bold("Credit limit"))
	if len(trace.RuleResults) == 0 {
		_, _ = fmt.Fprintf(w, "    %s\n", faint("(no credit limit rules)"))
	}
	for _, res := range trace.RuleResults {
		icon := red("✖")
		if res.Matched {
			icon = green("✔")
		}
		_, _ = fmt.Fprintf(w, "    %s #%d %s → %d\n", icon, res.Index+1, res.Expression, res.Ceiling)
		if res.Reason != "" {
			reason := res.Reason
			if res.Matched {
				reason = faint(reason)
			} else {
				reason = yellow(reason)
			}
			_, _ = fmt.Fprintf(w, "          ↳ %s\n", reason)
		}
	}
	if trace.Default {
		_, _ = fmt.Fprintf(w, "    %s no rule matched, using default limit %d\n", cyan("→"), trace.Ceiling)
	}
	_, _ = fmt.Fprintln(w)
}
