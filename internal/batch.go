package internal

import (
	"path/filepath"
	"strings"
)

// Content types and extensions the pipeline accepts. Anything else is
// rejected before date resolution runs.
var supportedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/heic": true,
	"image/heif": true,
}

var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".heic": true,
	".heif": true,
}

func supportedContentType(contentType string) bool {
	return supportedTypes[strings.ToLower(contentType)]
}

// IsSupportedInput checks a file's declared content type and extension
// against the supported set. Either one being recognized is enough,
// since cameras and exporters are sloppy about MIME types.
func IsSupportedInput(contentType, filename string) bool {
	if supportedContentType(contentType) {
		return true
	}
	return supportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// BatchResult aggregates one batch run: assignments in input order
// plus the derived problem entries for display.
type BatchResult struct {
	Assignments []Assignment
	Problems    []ProblemEntry
}

// Resolved counts assignments that got a target name.
func (r *BatchResult) Resolved() int {
	n := 0
	for _, a := range r.Assignments {
		if a.Status == StatusResolved {
			n++
		}
	}
	return n
}

// BatchOptions tunes a batch run.
type BatchOptions struct {
	// ManualDate, when non-nil, is applied as an operator override to
	// files the automatic chain cannot resolve.
	ManualDate *DateEvidence
}

// ProcessBatch drives the pipeline over the inputs in the order given:
// resolve a date, generate a name, uniquify against the batch ledger,
// classify the outcome. A file that cannot be resolved never aborts
// the batch; it becomes a needs-attention entry and processing
// continues. Processing order is significant: it decides which of two
// same-date files gets the bare name and which gets the suffix, so
// callers wanting reproducible output must pass a fixed order.
func ProcessBatch(inputs []FileInput, opts BatchOptions) *BatchResult {
	ledger := NewCollisionLedger()
	result := &BatchResult{
		Assignments: make([]Assignment, 0, len(inputs)),
	}

	for _, in := range inputs {
		a := processOne(in, ledger, opts)
		result.Assignments = append(result.Assignments, a)
		if a.Status == StatusNeedsAttention {
			result.Problems = append(result.Problems, NewProblemEntry(a))
		}
	}

	return result
}

func processOne(in FileInput, ledger *CollisionLedger, opts BatchOptions) Assignment {
	if !IsSupportedInput(in.ContentType, in.Name) {
		return Assignment{
			Input: in,
			Evidence: DateEvidence{
				Source:        SourceFilename,
				FailureReason: "unsupported file type: " + in.ContentType,
			},
			Status:  StatusNeedsAttention,
			Problem: ProblemUnsupportedType,
		}
	}

	winner, trail := ResolveDate(in)

	if !winner.Found() && opts.ManualDate != nil && opts.ManualDate.Found() {
		winner = *opts.ManualDate
	}

	if !winner.Found() {
		return Assignment{
			Input:    in,
			Evidence: winner,
			Status:   StatusNeedsAttention,
			Problem:  classifyFailure(trail),
		}
	}

	return Assignment{
		Input:      in,
		Evidence:   winner,
		TargetName: ledger.Assign(*winner.Date, in.Extension),
		Status:     StatusResolved,
	}
}

// classifyFailure picks a problem code from the evidence trail of a
// terminally failed resolution.
func classifyFailure(trail []DateEvidence) Problem {
	for _, ev := range trail {
		if ev.Source != SourceMetadata {
			continue
		}
		if strings.HasPrefix(ev.FailureReason, "metadata extraction error") {
			return ProblemExtractionError
		}
	}
	for _, ev := range trail {
		if ev.Source == SourceFilename && strings.Contains(ev.FailureReason, "failed calendar validation") {
			return ProblemInvalidDate
		}
	}
	for _, ev := range trail {
		if ev.Source == SourceMetadata && strings.Contains(ev.FailureReason, "no date fields") {
			return ProblemMetadataMissing
		}
	}
	return ProblemNoDateFound
}
