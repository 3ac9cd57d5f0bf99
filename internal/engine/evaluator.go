package engine

import (
	"fmt"
	"strings"

	"github.com/darmiel/advisor/internal/core"
)

// run is the state of a single recommendation. It is created per call and discarded afterwards.
type run struct {
	semester core.Semester
	ceiling  int
	passed   map[string]struct{}
	failed   map[string]struct{}
	added    map[string]struct{}
	result   *core.Recommendation
}

func newRun(ceiling int, profile core.StudentProfile) *run {
	return &run{
		semester: core.ParseSemester(string(profile.Semester)),
		ceiling:  ceiling,
		passed:   toSet(profile.Passed),
		failed:   toSet(profile.Failed),
		added:    make(map[string]struct{}),
		result: &core.Recommendation{
			Courses: []core.RecommendedCourse{},
			Ceiling: ceiling,
		},
	}
}

// retakePass prioritizes failed courses which have not been passed since.
func (r *run) retakePass(catalog []core.Course) {
	for _, course := range catalog {
		code := strings.TrimSpace(course.Code)
		if !has(r.failed, code) {
			continue
		}

		if has(r.passed, code) {
			r.explain(core.PassRetake, code, core.ReasonAlreadyPassed,
				"%s is not recommended because it was already passed.", code)
			continue
		}
		if !course.Offered.OfferedIn(r.semester) {
			r.explain(core.PassRetake, code, core.ReasonNotOffered,
				"%s is unavailable this semester.", code)
			continue
		}
		if unmet := missing(course.Prerequisites, r.passed); len(unmet) > 0 {
			r.explain(core.PassRetake, code, core.ReasonPrerequisites,
				"%s is not recommended due to unmet prerequisite(s): %s.", code, strings.Join(unmet, ", "))
			continue
		}
		if !r.fits(course) {
			r.explain(core.PassRetake, code, core.ReasonCreditLimit,
				"%s is not added because it would exceed the credit limit.", code)
			continue
		}

		r.add(course)
		r.explain(core.PassRetake, code, core.ReasonRetake,
			"%s is prioritized because you failed it previously and met its prerequisites.", code)
	}
}

// generalPass fills the remaining capacity with eligible courses in catalog order.
func (r *run) generalPass(catalog []core.Course) {
	for _, course := range catalog {
		code := strings.TrimSpace(course.Code)
		if has(r.passed, code) || has(r.added, code) {
			continue
		}

		if !course.Offered.OfferedIn(r.semester) {
			r.explain(core.PassGeneral, code, core.ReasonNotOffered,
				"%s is not offered in the %s semester.", code, r.semester)
			continue
		}
		if unmet := missing(course.Prerequisites, r.passed); len(unmet) > 0 {
			r.explain(core.PassGeneral, code, core.ReasonPrerequisites,
				"%s is not recommended due to unmet prerequisite(s): %s.", code, strings.Join(unmet, ", "))
			continue
		}
		// co-requisites may also be satisfied by courses added earlier in this run
		if unmet := missing(course.Corequisites, r.passed, r.added); len(unmet) > 0 {
			r.explain(core.PassGeneral, code, core.ReasonCorequisites,
				"%s is not recommended due to unmet co-requisite(s): %s.", code, strings.Join(unmet, ", "))
			continue
		}
		if !r.fits(course) {
			r.explain(core.PassGeneral, code, core.ReasonCreditLimit,
				"%s is not added because it would exceed the credit limit.", code)
			continue
		}

		r.add(course)
		if prereqs := trimmed(course.Prerequisites); len(prereqs) > 0 {
			r.explain(core.PassGeneral, code, core.ReasonEligible,
				"%s is recommended because you passed %s, its prerequisite(s).", code, strings.Join(prereqs, ", "))
		} else {
			r.explain(core.PassGeneral, code, core.ReasonEligible,
				"%s is recommended because it has no prerequisites.", code)
		}
	}
}

func (r *run) fits(course core.Course) bool {
	return course.CreditHours <= r.ceiling-r.result.TotalCredits
}

func (r *run) add(course core.Course) {
	code := strings.TrimSpace(course.Code)
	r.added[code] = struct{}{}
	r.result.TotalCredits += course.CreditHours
	r.result.Courses = append(r.result.Courses, core.RecommendedCourse{
		Code:        code,
		Name:        strings.TrimSpace(course.Name),
		CreditHours: course.CreditHours,
	})
}

func (r *run) explain(pass core.Pass, code string, reason core.Reason, format string, args ...any) {
	r.result.Explanations.Append(core.Explanation{
		Pass:    pass,
		Code:    code,
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
	})
}

// missing returns the codes of required that are in neither of the given sets, in declared order.
func missing(required []string, sets ...map[string]struct{}) []string {
	var unmet []string
	for _, code := range trimmed(required) {
		satisfied := false
		for _, set := range sets {
			if has(set, code) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			unmet = append(unmet, code)
		}
	}
	return unmet
}

func trimmed(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func toSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range trimmed(codes) {
		set[c] = struct{}{}
	}
	return set
}

func has(set map[string]struct{}, code string) bool {
	if set == nil {
		return false
	}
	_, ok := set[code]
	return ok
}
