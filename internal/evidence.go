package internal

import (
	"fmt"
	"time"
)

// DateSource identifies where a candidate date came from. The automatic
// chain tries sources in precedence order: filename, then metadata, then
// the filesystem timestamp. Manual is an operator override and never
// produced by the chain itself.
type DateSource string

const (
	SourceFilename   DateSource = "filename"
	SourceMetadata   DateSource = "metadata"
	SourceFilesystem DateSource = "filesystem"
	SourceManual     DateSource = "manual"
)

// Year bounds for any accepted capture date.
const (
	MinYear = 1970
	MaxYear = 2100
)

// DateEvidence is the result of a single extraction attempt.
// Date == nil always goes with Confidence == 0 and a FailureReason;
// a non-nil Date always carries Confidence > 0.
type DateEvidence struct {
	Date          *time.Time
	Source        DateSource
	Confidence    float64
	RawText       string // original substring/value that produced the date
	FailureReason string // set only when Date is nil
}

// Found reports whether this evidence carries a usable date.
func (e DateEvidence) Found() bool {
	return e.Date != nil && e.Confidence > 0
}

// ManualEvidence wraps an operator-supplied date. Highest trust.
func ManualEvidence(year, month, day int) (DateEvidence, error) {
	if !isValidDate(year, month, day) {
		return DateEvidence{
			Source:        SourceManual,
			FailureReason: fmt.Sprintf("invalid manual date %04d-%02d-%02d", year, month, day),
		}, fmt.Errorf("invalid manual date %04d-%02d-%02d", year, month, day)
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return DateEvidence{
		Date:       &d,
		Source:     SourceManual,
		Confidence: 1.0,
		RawText:    fmt.Sprintf("manual: %04d-%02d-%02d", year, month, day),
	}, nil
}

// isValidDate checks range bounds and real calendar validity.
// time.Date normalizes out-of-range days into the next month (Feb 30
// becomes Mar 1), so the triple is round-tripped and compared.
func isValidDate(year, month, day int) bool {
	if year < MinYear || year > MaxYear {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	if day < 1 || day > 31 {
		return false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Year() == year && int(d.Month()) == month && d.Day() == day
}

// FileStatus is the processing outcome for one file.
type FileStatus string

const (
	StatusResolved       FileStatus = "resolved"
	StatusNeedsAttention FileStatus = "needs_attention"
)

// Problem categorizes why a file could not be auto-processed.
type Problem string

const (
	ProblemNone            Problem = ""
	ProblemNoDateFound     Problem = "no_date_found"
	ProblemInvalidDate     Problem = "invalid_date"
	ProblemUnsupportedType Problem = "unsupported_type"
	ProblemMetadataMissing Problem = "metadata_missing"
	ProblemExtractionError Problem = "extraction_error"
)

// FileInput is everything the core needs to know about one input file.
// Metadata is the already-decoded record from the EXIF collaborator;
// nil means decoding was not attempted or found nothing.
type FileInput struct {
	Name        string // original filename, no directory, with extension
	Dir         string // directory holding the file; empty means the batch root
	Extension   string // including dot, case preserved (".JPG" stays ".JPG")
	ContentType string // declared MIME type, may be empty
	ModMillis   int64  // last-modified, milliseconds since the Unix epoch
	Metadata    MetadataRecord
	MetadataErr error // decode fault from the collaborator, if any
}

// Assignment is one file's final outcome: the winning evidence, the
// generated target name (empty when unresolved), and a classification.
type Assignment struct {
	Input      FileInput
	Evidence   DateEvidence
	TargetName string
	Status     FileStatus
	Problem    Problem
}

// ProblemEntry is the display form of a needs-attention file.
type ProblemEntry struct {
	Filename   string
	Problem    Problem
	Reason     string
	Suggestion string
}

// Fixed reason/suggestion text per problem code.
var problemReasons = map[Problem]string{
	ProblemNoDateFound:     "Could not find a date in filename, metadata, or file timestamp",
	ProblemInvalidDate:     "Date found but appears to be invalid (e.g. 13/40/2024)",
	ProblemUnsupportedType: "File is not a JPEG or HEIC image",
	ProblemMetadataMissing: "Expected embedded metadata but none found",
	ProblemExtractionError: "An error occurred while reading this file's metadata",
}

var problemSuggestions = map[Problem]string{
	ProblemNoDateFound:     "You may manually specify the creation date for this file",
	ProblemInvalidDate:     "Please check the filename format",
	ProblemUnsupportedType: "Only JPEG and HEIC files are supported",
	ProblemMetadataMissing: "Try renaming based on the file timestamp instead",
	ProblemExtractionError: "Try re-importing the file",
}

// NewProblemEntry builds the display entry for a needs-attention assignment.
func NewProblemEntry(a Assignment) ProblemEntry {
	return ProblemEntry{
		Filename:   a.Input.Name,
		Problem:    a.Problem,
		Reason:     problemReasons[a.Problem],
		Suggestion: problemSuggestions[a.Problem],
	}
}
