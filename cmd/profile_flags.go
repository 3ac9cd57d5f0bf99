package cmd

import (
	"github.com/spf13/pflag"

	"github.com/darmiel/advisor/internal/api"
)

type profileFlags struct {
	flags    *pflag.FlagSet
	cgpa     float64
	semester string
	passed   []string
	failed   []string
}

func (p *profileFlags) bind(flags *pflag.FlagSet) {
	p.flags = flags
	flags.Float64Var(&p.cgpa, "cgpa", 0, "Cumulative GPA (0.00 - 4.00), required")
	flags.StringVarP(&p.semester, "semester", "s", "", "Semester to enroll for (FALL, SPRING)")
	flags.StringSliceVarP(&p.passed, "passed", "p", nil, "Codes of passed courses (comma-separated)")
	flags.StringSliceVarP(&p.failed, "failed", "x", nil, "Codes of failed courses (comma-separated)")
}

// payload leaves the CGPA unset unless --cgpa was given.
func (p *profileFlags) payload() api.ProfilePayload {
	out := api.ProfilePayload{
		Semester: p.semester,
		Passed:   p.passed,
		Failed:   p.failed,
	}
	if p.flags != nil && p.flags.Changed("cgpa") {
		cgpa := p.cgpa
		out.CGPA = &cgpa
	}
	return out
}
