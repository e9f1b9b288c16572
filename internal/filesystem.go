package internal

import (
	"fmt"
	"time"
)

// ExtractFilesystemDate wraps a last-modified timestamp (milliseconds
// since the Unix epoch) as the lowest-confidence fallback. The only
// rejection is a timestamp decoding outside the accepted year range;
// that rejection is what makes a genuine "no date found" outcome
// reachable at all.
func ExtractFilesystemDate(modMillis int64) DateEvidence {
	t := time.UnixMilli(modMillis).UTC()

	if t.Year() < MinYear || t.Year() > MaxYear {
		return DateEvidence{
			Source:        SourceFilesystem,
			FailureReason: fmt.Sprintf("file timestamp out of range: %d (%s)", modMillis, t.Format(time.RFC3339)),
		}
	}

	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return DateEvidence{
		Date:       &d,
		Source:     SourceFilesystem,
		Confidence: 0.5, // file dates move around when files are copied
		RawText:    fmt.Sprintf("lastModified: %d (%s)", modMillis, t.Format(time.RFC3339)),
	}
}
