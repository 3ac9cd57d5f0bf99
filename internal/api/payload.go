package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/darmiel/advisor/internal/core"
)

// maxPayloadBytes bounds request bodies; profiles are small.
const maxPayloadBytes = 1 << 20

// ProfilePayload is the request body of the recommend and explain routes.
// CGPA is a pointer so that a missing value is not mistaken for 0.00.
type ProfilePayload struct {
	CGPA     *float64 `json:"cgpa"`
	Semester string   `json:"semester"`
	Passed   []string `json:"passed"`
	Failed   []string `json:"failed"`
}

// NewProfilePayload creates a payload with the given CGPA set.
func NewProfilePayload(cgpa float64, semester string, passed, failed []string) ProfilePayload {
	return ProfilePayload{
		CGPA:     &cgpa,
		Semester: semester,
		Passed:   passed,
		Failed:   failed,
	}
}

// Profile normalizes the payload into a student profile.
func (p ProfilePayload) Profile() (core.StudentProfile, error) {
	if p.CGPA == nil {
		return core.StudentProfile{}, core.InvalidProfileError{Field: "cgpa", Reason: "is required"}
	}
	return core.StudentProfile{
		CGPA:     *p.CGPA,
		Semester: core.ParseSemester(p.Semester),
		Passed:   p.Passed,
		Failed:   p.Failed,
	}, nil
}

func DecodePayload(r *http.Request, dest any, allowEmpty bool) error {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return err
		}
		contentType = mediaType
	}
	switch contentType {
	case "application/json", "":
		// strict encoding for JSON
		dec := json.NewDecoder(io.LimitReader(r.Body, maxPayloadBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(dest); err != nil {
			if !errors.Is(err, io.EOF) || !allowEmpty {
				return err
			}
		}
		// ensure there's no extra data
		if dec.More() {
			return errors.New("extra data in request body")
		}
		return nil
	default:
		return errors.New("unsupported content type")
	}
}
