package internal

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ApplyOutcome says what happened to one assignment on disk.
type ApplyOutcome int

const (
	ApplyRenamed ApplyOutcome = iota
	ApplySkippedSame      // file already carries the target name
	ApplySkippedDuplicate // target exists with identical content
	ApplyRenamedFallback  // target occupied, used a numbered fallback path
)

// fileHash computes SHA256 hash of a file content
func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// maxFallbackAttempts bounds the _2, _3... probe so a pathological
// folder surfaces an error instead of spinning.
const maxFallbackAttempts = 100

// safeRenamePath generates a safe new path if dest exists by appending _2, _3...
func safeRenamePath(dest string) (string, error) {
	ext := filepath.Ext(dest)
	base := dest[:len(dest)-len(ext)]
	for i := 2; i < 2+maxFallbackAttempts; i++ {
		try := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := os.Stat(try); os.IsNotExist(err) {
			return try, nil
		}
	}
	return "", fmt.Errorf("target exists with different content and all fallback names are taken: %s", dest)
}

// ApplyAssignment renames one resolved file in place. Target names are
// already unique within the batch; collisions here come only from
// files that predate the run. A pre-existing target with identical
// content means the source is a duplicate and is left untouched; with
// different content the source falls back to a _2/_3 suffixed path
// (never overwrites).
func ApplyAssignment(dir string, a Assignment, dryRun bool) (appliedName string, outcome ApplyOutcome, err error) {
	if a.Status != StatusResolved || a.TargetName == "" {
		return "", ApplySkippedSame, fmt.Errorf("assignment for %s is not resolved", a.Input.Name)
	}

	if a.Input.Name == a.TargetName {
		return a.TargetName, ApplySkippedSame, nil
	}

	// Recursive scans yield files below the batch root; each one is
	// renamed inside its own directory.
	fileDir := dir
	if a.Input.Dir != "" {
		fileDir = a.Input.Dir
	}
	src := filepath.Join(fileDir, a.Input.Name)
	dest := filepath.Join(fileDir, a.TargetName)

	if dryRun {
		fmt.Printf("[dry-run] would rename %s → %s\n", a.Input.Name, a.TargetName)
		return a.TargetName, ApplyRenamed, nil
	}

	outcome = ApplyRenamed
	if _, statErr := os.Stat(dest); statErr == nil {
		srcHash, err := fileHash(src)
		if err != nil {
			return "", outcome, fmt.Errorf("failed to hash src file %s: %w", src, err)
		}
		destHash, err := fileHash(dest)
		if err != nil {
			return "", outcome, fmt.Errorf("failed to hash dest file %s: %w", dest, err)
		}
		if srcHash == destHash {
			fmt.Printf("Skipping duplicate file: %s\n", a.Input.Name)
			return a.TargetName, ApplySkippedDuplicate, nil
		}
		fallback, fbErr := safeRenamePath(dest)
		if fbErr != nil {
			return "", outcome, fbErr
		}
		dest = fallback
		outcome = ApplyRenamedFallback
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return "", outcome, fmt.Errorf("failed to stat %s: %w", dest, statErr)
	}

	if err := os.Rename(src, dest); err != nil {
		return "", outcome, fmt.Errorf("failed to rename %s to %s: %w", src, dest, err)
	}

	fmt.Printf("Renamed %s → %s\n", a.Input.Name, filepath.Base(dest))
	return filepath.Base(dest), outcome, nil
}

// ApplyBatch applies all resolved assignments in order, logging to the
// session when one is present. A single file's failure is isolated;
// the pass aborts early only on the error circuit breaker (disk full,
// permissions).
func ApplyBatch(dir string, result *BatchResult, session *RenameSession, logger *Logger, dryRun bool) SessionStats {
	stats := SessionStats{TotalScanned: len(result.Assignments)}
	errStats := NewErrorStats()

	for _, a := range result.Assignments {
		if a.Status != StatusResolved {
			stats.NeedsAttention++
			if session != nil {
				session.LogNeedsAttention(NewProblemEntry(a))
			}
			continue
		}

		applied, outcome, err := ApplyAssignment(dir, a, dryRun)
		if err != nil {
			stats.Errors++
			errStats.Consecutive++
			procErr := CategorizeError(a.Input.Name, err)
			errStats.Add(procErr)
			if logger != nil {
				logger.Log("error renaming %s: %v", a.Input.Name, err)
			}
			if session != nil {
				session.LogError(a.Input.Name, procErr)
			}
			if abort, reason := errStats.ShouldAbort(); abort {
				fmt.Printf("Aborting: %s\n", reason)
				break
			}
			continue
		}
		errStats.ResetConsecutive()

		switch outcome {
		case ApplySkippedSame, ApplySkippedDuplicate:
			stats.SkippedSame++
			if session != nil {
				session.LogSkippedSame(a)
			}
		default:
			stats.Renamed++
			if logger != nil {
				logger.Log("renamed %s -> %s (%s, confidence %.1f)", a.Input.Name, applied, a.Evidence.Source, a.Evidence.Confidence)
			}
			if session != nil {
				session.LogRenamed(a, applied)
			}
		}
	}

	if errStats.Total > 0 {
		fmt.Print(errStats.GenerateReport())
	}
	return stats
}
