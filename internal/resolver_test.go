package internal

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func millisFor(year, month, day int) int64 {
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC).UnixMilli()
}

func TestExtractFilesystemDate_Valid(t *testing.T) {
	ev := ExtractFilesystemDate(millisFor(2024, 1, 15))

	assertDate(t, ev, 2024, 1, 15)
	if ev.Source != SourceFilesystem {
		t.Errorf("Expected filesystem source, got %s", ev.Source)
	}
	if ev.Confidence != 0.5 {
		t.Errorf("Expected confidence 0.5, got %f", ev.Confidence)
	}
	if !strings.Contains(ev.RawText, "lastModified") {
		t.Errorf("Expected raw timestamp in raw text, got %q", ev.RawText)
	}
}

func TestExtractFilesystemDate_EpochZero(t *testing.T) {
	// Epoch 0 is 1970-01-01, which is inside the accepted range.
	ev := ExtractFilesystemDate(0)
	assertDate(t, ev, 1970, 1, 1)
}

func TestExtractFilesystemDate_OutOfRange(t *testing.T) {
	ev := ExtractFilesystemDate(millisFor(1960, 1, 1) - 1)
	if ev.Found() {
		t.Fatalf("Expected failure for pre-1970 timestamp, got %s", ev.Date)
	}

	farFuture := time.Date(2101, 6, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	ev = ExtractFilesystemDate(farFuture)
	if ev.Found() {
		t.Fatalf("Expected failure for year 2101 timestamp, got %s", ev.Date)
	}
}

func TestResolveDate_FilenameWins(t *testing.T) {
	in := FileInput{
		Name:        "2024-01-15.jpg",
		ContentType: "image/jpeg",
		Metadata:    MetadataRecord{"DateTimeOriginal": "2020:05:05 10:00:00"},
		ModMillis:   millisFor(2022, 7, 7),
	}

	winner, trail := ResolveDate(in)
	if winner.Source != SourceFilename {
		t.Fatalf("Expected filename evidence to win, got %s", winner.Source)
	}
	assertDate(t, winner, 2024, 1, 15)
	if len(trail) != 1 {
		t.Errorf("Expected short-circuit after filename, trail has %d entries", len(trail))
	}
}

func TestResolveDate_MetadataBeatsFilesystem(t *testing.T) {
	in := FileInput{
		Name:        "vacation_photo.jpg",
		ContentType: "image/jpeg",
		Metadata:    MetadataRecord{"DateTimeOriginal": "2020:05:05 10:00:00"},
		ModMillis:   millisFor(2022, 7, 7),
	}

	winner, _ := ResolveDate(in)
	if winner.Source != SourceMetadata {
		t.Fatalf("Expected metadata evidence to win, got %s", winner.Source)
	}
	assertDate(t, winner, 2020, 5, 5)
}

func TestResolveDate_FilesystemFallback(t *testing.T) {
	// No metadata, unparsable filename: timestamp still resolves it.
	in := FileInput{
		Name:        "vacation_photo.jpg",
		ContentType: "image/jpeg",
		ModMillis:   millisFor(2022, 7, 7),
	}

	winner, trail := ResolveDate(in)
	if winner.Source != SourceFilesystem {
		t.Fatalf("Expected filesystem fallback, got %s", winner.Source)
	}
	assertDate(t, winner, 2022, 7, 7)
	if winner.Confidence != 0.5 {
		t.Errorf("Expected confidence 0.5, got %f", winner.Confidence)
	}
	if len(trail) != 3 {
		t.Errorf("Expected full trail of 3 attempts, got %d", len(trail))
	}
}

func TestResolveDate_MetadataFaultFoldedNotRaised(t *testing.T) {
	in := FileInput{
		Name:        "vacation_photo.jpg",
		ContentType: "image/jpeg",
		MetadataErr: errors.New("exif decode panic: truncated tag"),
		ModMillis:   millisFor(2022, 7, 7),
	}

	winner, trail := ResolveDate(in)
	if winner.Source != SourceFilesystem {
		t.Fatalf("Expected filesystem fallback after decode fault, got %s", winner.Source)
	}
	if !strings.Contains(trail[1].FailureReason, "metadata extraction error") {
		t.Errorf("Expected decode fault in trail, got %q", trail[1].FailureReason)
	}
}

func TestResolveDate_AllFail(t *testing.T) {
	in := FileInput{
		Name:        "vacation_photo.jpg",
		ContentType: "image/jpeg",
		ModMillis:   -1e15, // far before 1970
	}

	winner, trail := ResolveDate(in)
	if winner.Found() {
		t.Fatalf("Expected unresolved outcome, got %s", winner.Date)
	}
	if winner.Source != SourceFilesystem {
		t.Errorf("Expected the terminal evidence to be filesystem-sourced, got %s", winner.Source)
	}
	if len(trail) != 3 {
		t.Errorf("Expected 3 attempts, got %d", len(trail))
	}
}
