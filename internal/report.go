package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
)

// ReportOptions controls how a batch result is displayed.
type ReportOptions struct {
	Format string // "table" or "json"
}

// BatchReport is the aggregate view of one batch run.
type BatchReport struct {
	TotalFiles     int                   `json:"total_files"`
	Resolved       int                   `json:"resolved"`
	NeedsAttention int                   `json:"needs_attention"`
	BySource       map[DateSource]int    `json:"by_source"`
	ByProblem      map[Problem]int       `json:"by_problem"`
	Assignments    []AssignmentSummary   `json:"assignments"`
	Problems       []ProblemEntry        `json:"problems,omitempty"`
}

// AssignmentSummary is the display form of one assignment.
type AssignmentSummary struct {
	Original   string  `json:"original"`
	Target     string  `json:"target,omitempty"`
	Status     string  `json:"status"`
	Source     string  `json:"source,omitempty"`
	Confidence float64 `json:"confidence"`
	RawText    string  `json:"raw_text,omitempty"`
}

// NewBatchReport derives the aggregate report from a batch result.
func NewBatchReport(result *BatchResult) *BatchReport {
	report := &BatchReport{
		TotalFiles: len(result.Assignments),
		BySource:   make(map[DateSource]int),
		ByProblem:  make(map[Problem]int),
		Problems:   result.Problems,
	}

	for _, a := range result.Assignments {
		summary := AssignmentSummary{
			Original:   a.Input.Name,
			Target:     a.TargetName,
			Status:     string(a.Status),
			Confidence: a.Evidence.Confidence,
			RawText:    a.Evidence.RawText,
		}
		if a.Status == StatusResolved {
			report.Resolved++
			report.BySource[a.Evidence.Source]++
			summary.Source = string(a.Evidence.Source)
		} else {
			report.NeedsAttention++
			report.ByProblem[a.Problem]++
		}
		report.Assignments = append(report.Assignments, summary)
	}

	return report
}

// DisplayReport renders the report in the requested format.
func DisplayReport(report *BatchReport, opts *ReportOptions) error {
	if opts != nil && opts.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return displayTable(report)
}

func displayTable(report *BatchReport) error {
	fmt.Printf("\n📷 Processed %d files: %d resolved, %d need attention\n\n",
		report.TotalFiles, report.Resolved, report.NeedsAttention)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORIGINAL\tNEW NAME\tSOURCE\tCONFIDENCE")
	for _, s := range report.Assignments {
		if s.Status != string(StatusResolved) {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\n", s.Original, s.Target, s.Source, s.Confidence)
	}
	w.Flush()

	if len(report.BySource) > 0 {
		fmt.Println("\nDate sources:")
		for _, src := range []DateSource{SourceFilename, SourceMetadata, SourceFilesystem, SourceManual} {
			if n := report.BySource[src]; n > 0 {
				fmt.Printf("  • %s: %d\n", src, n)
			}
		}
	}

	if len(report.Problems) > 0 {
		fmt.Printf("\n⚠️  %d files need attention:\n", len(report.Problems))
		for i, p := range report.Problems {
			fmt.Printf("\n%d. %s\n", i+1, p.Filename)
			fmt.Printf("   Problem: %s\n", p.Problem)
			fmt.Printf("   %s\n", p.Reason)
			if p.Suggestion != "" {
				fmt.Printf("   💡 %s\n", p.Suggestion)
			}
		}
		fmt.Println()
		fmt.Println(problemSummary(report.ByProblem))
	}

	return nil
}

func problemSummary(byProblem map[Problem]int) string {
	keys := make([]string, 0, len(byProblem))
	for p := range byProblem {
		keys = append(keys, string(p))
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Problem categories:\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  • %s: %d\n", k, byProblem[Problem(k)]))
	}
	return b.String()
}
