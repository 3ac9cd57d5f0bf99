package audit

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"github.com/darmiel/advisor/internal/core"
)

// ProfileFingerprint identifies a student profile without storing the transcript.
// Course order in passed/failed does not change the fingerprint.
func ProfileFingerprint(p core.StudentProfile) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%.4f|%s|%s|%s",
		p.CGPA,
		core.ParseSemester(string(p.Semester)),
		sortedCodes(p.Passed),
		sortedCodes(p.Failed))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))[:16]
}

func sortedCodes(codes []string) string {
	cpy := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			cpy = append(cpy, c)
		}
	}
	sort.Strings(cpy)
	return strings.Join(cpy, ",")
}
