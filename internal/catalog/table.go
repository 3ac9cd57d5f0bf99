package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/darmiel/advisor/internal/core"
)

// Format is the on-disk format of a course or policy table.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the table format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported table format '%s' (expected .csv, .yaml or .yml)", filepath.Ext(path))
	}
}

// ReadRecords reads all rows of a table. CSV tables must have a header row,
// YAML tables are a list of mappings.
func ReadRecords(r io.Reader, format Format) ([]Record, error) {
	switch format {
	case FormatCSV:
		return readCSV(r)
	case FormatYAML:
		return readYAML(r)
	default:
		return nil, fmt.Errorf("unsupported table format '%s'", format)
	}
}

func readCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // pandas exports may drop trailing empty cells
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimPrefix(strings.TrimSpace(header[i]), "\ufeff")
	}

	var records []Record
	for line := 1; ; line++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line, err)
		}
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(fields) {
				rec[col] = fields[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func readYAML(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading yaml: %w", err)
	}
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	records := make([]Record, len(raw))
	for i, m := range raw {
		records[i] = m
	}
	return records, nil
}

// ReadCourses reads and validates a course table.
func ReadCourses(r io.Reader, format Format) ([]core.Course, error) {
	records, err := ReadRecords(r, format)
	if err != nil {
		return nil, err
	}
	courses := make([]core.Course, 0, len(records))
	for i, rec := range records {
		c, err := CourseFromRecord(i+1, rec)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// ReadPolicies reads and validates a policy table.
func ReadPolicies(r io.Reader, format Format) ([]core.PolicyRow, error) {
	records, err := ReadRecords(r, format)
	if err != nil {
		return nil, err
	}
	rows := make([]core.PolicyRow, 0, len(records))
	for i, rec := range records {
		p, err := PolicyFromRecord(i+1, rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, p)
	}
	return rows, nil
}

// LoadCourses reads a course table from disk.
func LoadCourses(path string) ([]core.Course, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening course table: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	courses, err := ReadCourses(f, format)
	if err != nil {
		return nil, fmt.Errorf("loading courses from '%s': %w", path, err)
	}
	return courses, nil
}

// LoadPolicies reads a policy table from disk.
func LoadPolicies(path string) ([]core.PolicyRow, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening policy table: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	rows, err := ReadPolicies(f, format)
	if err != nil {
		return nil, fmt.Errorf("loading policies from '%s': %w", path, err)
	}
	return rows, nil
}

// WriteCourses writes the catalog as CSV using CourseColumns.
func WriteCourses(w io.Writer, courses []core.Course) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CourseColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range courses {
		if err := writer.Write(CourseToRecord(c)); err != nil {
			return fmt.Errorf("writing course '%s': %w", c.Code, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
