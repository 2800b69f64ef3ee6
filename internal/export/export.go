// Package export renders video reports as downloadable CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/services"
)

// Format is a supported export format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a client-supplied format string. Empty defaults
// to JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON, "":
		return FormatJSON, nil
	default:
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("Unsupported export format %q", s))
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// Filename builds the suggested download filename for a report.
func Filename(videoID string, f Format) string {
	return fmt.Sprintf("video-report-%s-%s.%s",
		videoID, time.Now().UTC().Format("20060102"), f)
}

// WriteReport renders the report in the requested format.
func WriteReport(w io.Writer, report *services.VideoReport, f Format) error {
	if f == FormatCSV {
		return writeCSV(w, report)
	}
	return writeJSON(w, report)
}

func writeJSON(w io.Writer, report *services.VideoReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// writeCSV emits a header block describing the video followed by one row
// per annotation.
func writeCSV(w io.Writer, report *services.VideoReport) error {
	cw := csv.NewWriter(w)

	head := [][]string{
		{"Video", report.Video.Title},
		{"Category", string(report.Video.Category)},
		{"Generated", report.GeneratedAt.Format(time.RFC3339)},
		{"Total Annotations", strconv.Itoa(report.Summary.TotalAnnotations)},
		{"Positive Indicators", strconv.Itoa(report.Summary.PositiveIndicators)},
		{"Areas For Improvement", strconv.Itoa(report.Summary.AreasForImprovement)},
		{"Practices Coverage %", strconv.FormatFloat(report.Summary.PracticesCoveragePercent, 'f', 2, 64)},
		{},
		{"Start Time", "End Time", "Category", "Practice", "Type", "Status", "Confidence", "Comment"},
	}
	for _, row := range head {
		if err := cw.Write(row); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	for _, ann := range report.Annotations {
		endTime := ""
		if ann.EndTime != nil {
			endTime = strconv.FormatFloat(*ann.EndTime, 'f', 2, 64)
		}
		practice := ""
		if ann.Practice != nil {
			practice = ann.Practice.Title
		}
		confidence := ""
		if ann.ConfidenceScore != nil {
			confidence = strconv.FormatFloat(*ann.ConfidenceScore, 'f', 2, 64)
		}

		row := []string{
			strconv.FormatFloat(ann.StartTime, 'f', 2, 64),
			endTime,
			string(ann.PracticeCategory),
			practice,
			string(ann.Type),
			string(ann.Status),
			confidence,
			ann.Comment,
		}
		if err := cw.Write(row); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
