package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RenameSession records one batch run as an append-only JSONL
// manifest under <folder>/renames/<session-id>/. The manifest is the
// audit trail: what evidence won for each file, what it was renamed
// to, and what needed attention.
type RenameSession struct {
	ID           string   // Session ID (timestamp: 2025-01-15-103045)
	FolderPath   string   // Folder being renamed
	SessionDir   string   // Full path to session directory
	ManifestFile *os.File // Open file handle for manifest.jsonl
	stats        SessionStats
}

// SessionStats tracks statistics for a rename session
type SessionStats struct {
	TotalScanned   int
	Renamed        int
	NeedsAttention int
	SkippedSame    int // already carried the target name
	Errors         int
}

// SessionEvent represents a single event in the manifest log
type SessionEvent struct {
	Event      string  `json:"event"`
	Ts         string  `json:"ts"`
	File       string  `json:"file,omitempty"`
	Target     string  `json:"target,omitempty"`
	Source     string  `json:"source,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	RawText    string  `json:"raw_text,omitempty"`
	Problem    string  `json:"problem,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	Suggestion string  `json:"suggestion,omitempty"`
	Error      string  `json:"error,omitempty"`

	// Session start/end fields
	Folder         string `json:"folder,omitempty"`
	TotalFiles     int    `json:"total_files,omitempty"`
	TotalScanned   int    `json:"total_scanned,omitempty"`
	Renamed        int    `json:"renamed,omitempty"`
	NeedsAttention int    `json:"needs_attention,omitempty"`
	SkippedSame    int    `json:"skipped_same,omitempty"`
	ErrorCount     int    `json:"errors,omitempty"`
}

// NewRenameSession creates a new session directory and manifest.
func NewRenameSession(folderPath string) (*RenameSession, error) {
	sessionID := time.Now().Format("2006-01-02-150405")

	renamesDir := filepath.Join(folderPath, "renames")
	sessionDir := filepath.Join(renamesDir, sessionID)

	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	manifestPath := filepath.Join(sessionDir, "manifest.jsonl")
	manifestFile, err := os.OpenFile(manifestPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest file: %w", err)
	}

	return &RenameSession{
		ID:           sessionID,
		FolderPath:   folderPath,
		SessionDir:   sessionDir,
		ManifestFile: manifestFile,
	}, nil
}

// LogSessionStart writes the session start event to manifest
func (s *RenameSession) LogSessionStart(totalFiles int) error {
	return s.writeEvent(SessionEvent{
		Event:      "session_start",
		Ts:         time.Now().UTC().Format(time.RFC3339),
		Folder:     s.FolderPath,
		TotalFiles: totalFiles,
	})
}

// LogRenamed logs a successfully applied rename with its evidence.
func (s *RenameSession) LogRenamed(a Assignment, appliedName string) error {
	s.stats.Renamed++

	return s.writeEvent(SessionEvent{
		Event:      "renamed",
		Ts:         time.Now().UTC().Format(time.RFC3339),
		File:       a.Input.Name,
		Target:     appliedName,
		Source:     string(a.Evidence.Source),
		Confidence: a.Evidence.Confidence,
		RawText:    a.Evidence.RawText,
	})
}

// LogSkippedSame logs a file that already carries its target name.
func (s *RenameSession) LogSkippedSame(a Assignment) error {
	s.stats.SkippedSame++

	return s.writeEvent(SessionEvent{
		Event:  "skipped_same",
		Ts:     time.Now().UTC().Format(time.RFC3339),
		File:   a.Input.Name,
		Target: a.TargetName,
	})
}

// LogNeedsAttention logs a file the automatic chain could not resolve.
func (s *RenameSession) LogNeedsAttention(entry ProblemEntry) error {
	s.stats.NeedsAttention++

	return s.writeEvent(SessionEvent{
		Event:      "needs_attention",
		Ts:         time.Now().UTC().Format(time.RFC3339),
		File:       entry.Filename,
		Problem:    string(entry.Problem),
		Reason:     entry.Reason,
		Suggestion: entry.Suggestion,
	})
}

// LogError logs a categorized apply-stage error.
func (s *RenameSession) LogError(file string, procErr *ProcessError) error {
	s.stats.Errors++

	return s.writeEvent(SessionEvent{
		Event:      "error",
		Ts:         time.Now().UTC().Format(time.RFC3339),
		File:       file,
		Error:      procErr.OriginalErr.Error(),
		Problem:    string(procErr.Category),
		Suggestion: procErr.Suggestion,
	})
}

// LogSessionEnd writes the session end event to manifest
func (s *RenameSession) LogSessionEnd(stats SessionStats) error {
	return s.writeEvent(SessionEvent{
		Event:          "session_end",
		Ts:             time.Now().UTC().Format(time.RFC3339),
		TotalScanned:   stats.TotalScanned,
		Renamed:        stats.Renamed,
		NeedsAttention: stats.NeedsAttention,
		SkippedSame:    stats.SkippedSame,
		ErrorCount:     stats.Errors,
	})
}

// GetStats returns the current session statistics
func (s *RenameSession) GetStats() SessionStats {
	return s.stats
}

// Close closes the manifest file and session
func (s *RenameSession) Close() error {
	if s.ManifestFile != nil {
		return s.ManifestFile.Close()
	}
	return nil
}

// writeEvent writes a manifest event as a JSON line
func (s *RenameSession) writeEvent(event SessionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := s.ManifestFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to manifest: %w", err)
	}

	// Flush to ensure data is written
	return s.ManifestFile.Sync()
}
