package internal

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// MetadataRecord is the decoded field->value mapping handed over by
// the EXIF collaborator. Values keep their original textual form
// (EXIF dates use ":"-separated components, "2024:01:15 14:30:22").
type MetadataRecord map[string]string

// Date field names the extractor recognizes, highest priority first:
// capture time, creation time, generic timestamp, modification time.
var metadataDateFields = []string{
	"DateTimeOriginal",
	"CreateDate",
	"DateTime",
	"ModifyDate",
}

var exifDatePrefix = regexp.MustCompile(`^(\d{4}):(\d{2}):(\d{2})`)

// normalizeExifDate rewrites the ":"-separated date components of an
// EXIF timestamp to calendar-date form: "2024:01:15 14:30:22" becomes
// "2024-01-15 14:30:22". Non-EXIF strings pass through untouched.
func normalizeExifDate(s string) string {
	return exifDatePrefix.ReplaceAllString(s, "$1-$2-$3")
}

// metadataTimeLayouts are tried in order against the normalized value.
var metadataTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ExtractMetadataDate selects the best date field from a decoded
// metadata record. It never panics or returns an error: malformed or
// absent metadata folds into zero-confidence evidence.
func ExtractMetadataDate(record MetadataRecord, contentType string) DateEvidence {
	if contentType != "" && !supportedContentType(contentType) {
		return DateEvidence{
			Source:        SourceMetadata,
			FailureReason: fmt.Sprintf("unsupported file type for metadata: %s", contentType),
		}
	}

	if len(record) == 0 {
		return DateEvidence{
			Source:        SourceMetadata,
			FailureReason: "no metadata record available",
		}
	}

	field, value := "", ""
	for _, f := range metadataDateFields {
		if v, ok := record[f]; ok && strings.TrimSpace(v) != "" {
			field, value = f, v
			break
		}
	}
	if field == "" {
		return DateEvidence{
			Source:        SourceMetadata,
			FailureReason: "no date fields found in metadata",
		}
	}

	normalized := normalizeExifDate(strings.TrimSpace(value))
	var parsed time.Time
	ok := false
	for _, layout := range metadataTimeLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			parsed, ok = t, true
			break
		}
	}
	if !ok {
		return DateEvidence{
			Source:        SourceMetadata,
			FailureReason: fmt.Sprintf("unparsable %s value: %q", field, value),
		}
	}

	if !isValidDate(parsed.Year(), int(parsed.Month()), parsed.Day()) {
		return DateEvidence{
			Source:        SourceMetadata,
			FailureReason: fmt.Sprintf("%s date out of range: %q", field, value),
		}
	}

	d := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	return DateEvidence{
		Date:       &d,
		Source:     SourceMetadata,
		Confidence: 0.9, // trustworthy but editable, hence not 1.0
		RawText:    fmt.Sprintf("%s: %s", field, value),
	}
}
