package internal

import (
	"testing"
	"time"
)

func assertDate(t *testing.T, ev DateEvidence, year, month, day int) {
	t.Helper()
	if !ev.Found() {
		t.Fatalf("Expected a date, got failure: %s", ev.FailureReason)
	}
	if ev.Date.Year() != year || int(ev.Date.Month()) != month || ev.Date.Day() != day {
		t.Errorf("Expected %04d-%02d-%02d, got %s", year, month, day, ev.Date.Format("2006-01-02"))
	}
}

func TestExtractFilenameDate_ISO(t *testing.T) {
	ev := ExtractFilenameDate("2024-01-15.jpg")

	assertDate(t, ev, 2024, 1, 15)
	if ev.Source != SourceFilename {
		t.Errorf("Expected filename source, got %s", ev.Source)
	}
	if ev.Confidence != 1.0 {
		t.Errorf("Expected confidence 1.0, got %f", ev.Confidence)
	}
	if ev.RawText != "2024-01-15" {
		t.Errorf("Expected raw text '2024-01-15', got %q", ev.RawText)
	}
}

func TestExtractFilenameDate_Underscores(t *testing.T) {
	ev := ExtractFilenameDate("2024_01_15.jpg")
	assertDate(t, ev, 2024, 1, 15)
	if ev.Confidence != 1.0 {
		t.Errorf("Expected confidence 1.0, got %f", ev.Confidence)
	}
}

func TestExtractFilenameDate_Compact(t *testing.T) {
	ev := ExtractFilenameDate("20240115.jpg")
	assertDate(t, ev, 2024, 1, 15)
	if ev.Confidence != 1.0 {
		t.Errorf("Expected confidence 1.0, got %f", ev.Confidence)
	}
}

func TestExtractFilenameDate_PrefixAndSuffix(t *testing.T) {
	ev := ExtractFilenameDate("IMG_2024-01-15.jpg")
	assertDate(t, ev, 2024, 1, 15)

	ev = ExtractFilenameDate("2024-01-15_vacation.jpg")
	assertDate(t, ev, 2024, 1, 15)

	ev = ExtractFilenameDate("IMG_20240115_120000.jpg")
	assertDate(t, ev, 2024, 1, 15)
}

func TestExtractFilenameDate_MonthDayYear(t *testing.T) {
	ev := ExtractFilenameDate("01-15-2024.jpg")
	assertDate(t, ev, 2024, 1, 15)
	if ev.Confidence != 0.8 {
		t.Errorf("Expected confidence 0.8, got %f", ev.Confidence)
	}
	if ev.RawText != "01-15-2024" {
		t.Errorf("Expected raw text '01-15-2024', got %q", ev.RawText)
	}

	ev = ExtractFilenameDate("01/15/2024.jpg")
	assertDate(t, ev, 2024, 1, 15)

	ev = ExtractFilenameDate("01_15_2024.jpg")
	assertDate(t, ev, 2024, 1, 15)
}

func TestExtractFilenameDate_DayMonthYear(t *testing.T) {
	// First number > 12: must be the day regardless of position.
	ev := ExtractFilenameDate("15-01-2024.jpg")
	assertDate(t, ev, 2024, 1, 15)

	ev = ExtractFilenameDate("15/01/2024.jpg")
	assertDate(t, ev, 2024, 1, 15)
}

func TestExtractFilenameDate_AmbiguousDefaultsToMonthDay(t *testing.T) {
	// 05-03-2024 could be May 3 or March 5; month-day order wins.
	ev := ExtractFilenameDate("05-03-2024.jpg")
	assertDate(t, ev, 2024, 5, 3)
	if ev.Confidence != 0.8 {
		t.Errorf("Expected confidence 0.8 for ambiguous date, got %f", ev.Confidence)
	}
}

func TestExtractFilenameDate_TwoDigitYear(t *testing.T) {
	ev := ExtractFilenameDate("01-15-24.jpg")
	assertDate(t, ev, 2024, 1, 15)
	if ev.Confidence != 0.6 {
		t.Errorf("Expected confidence 0.6, got %f", ev.Confidence)
	}

	// Years >= 50 belong to the 1900s.
	ev = ExtractFilenameDate("12-25-99.jpg")
	assertDate(t, ev, 1999, 12, 25)
}

func TestExtractFilenameDate_InvalidMonth(t *testing.T) {
	ev := ExtractFilenameDate("2024-13-15.jpg")
	if ev.Found() {
		t.Fatalf("Expected failure for month 13, got %s", ev.Date)
	}
	if ev.Confidence != 0 {
		t.Errorf("Expected confidence 0, got %f", ev.Confidence)
	}
}

func TestExtractFilenameDate_InvalidDay(t *testing.T) {
	// Feb 30 must not silently roll into March.
	ev := ExtractFilenameDate("2024-02-30.jpg")
	if ev.Found() {
		t.Fatalf("Expected failure for Feb 30, got %s", ev.Date)
	}
}

func TestExtractFilenameDate_LeapYear(t *testing.T) {
	ev := ExtractFilenameDate("2024-02-29.jpg")
	assertDate(t, ev, 2024, 2, 29)

	ev = ExtractFilenameDate("2023-02-29.jpg")
	if ev.Found() {
		t.Fatalf("Expected failure for Feb 29 in non-leap year, got %s", ev.Date)
	}
}

func TestExtractFilenameDate_YearOutOfRange(t *testing.T) {
	ev := ExtractFilenameDate("1969-01-15.jpg")
	if ev.Found() {
		t.Errorf("Expected failure for year 1969, got %s", ev.Date)
	}

	ev = ExtractFilenameDate("2101-01-15.jpg")
	if ev.Found() {
		t.Errorf("Expected failure for year 2101, got %s", ev.Date)
	}
}

func TestExtractFilenameDate_NoDate(t *testing.T) {
	ev := ExtractFilenameDate("vacation_photo.jpg")
	if ev.Found() {
		t.Fatalf("Expected no date, got %s", ev.Date)
	}
	if ev.Source != SourceFilename {
		t.Errorf("Expected filename source, got %s", ev.Source)
	}
	if ev.FailureReason == "" {
		t.Error("Expected a failure reason")
	}
}

func TestExtractFilenameDate_DateIsMidnightUTC(t *testing.T) {
	ev := ExtractFilenameDate("2024-01-15.jpg")
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !ev.Date.Equal(want) {
		t.Errorf("Expected %s, got %s", want, ev.Date)
	}
}
