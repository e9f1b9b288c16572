package internal

import (
	"sort"
	"testing"
	"time"
)

func TestGenerateFilename(t *testing.T) {
	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	if got := GenerateFilename(d, ".jpg"); got != "2024-01-15.jpg" {
		t.Errorf("Expected '2024-01-15.jpg', got %q", got)
	}

	// Extension case is preserved verbatim.
	if got := GenerateFilename(d, ".JPG"); got != "2024-01-15.JPG" {
		t.Errorf("Expected '2024-01-15.JPG', got %q", got)
	}
}

func TestCollisionLedger_Sequence(t *testing.T) {
	ledger := NewCollisionLedger()
	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	expected := []string{"2024-01-15.jpg", "2024-01-15-01.jpg", "2024-01-15-02.jpg"}
	for i, want := range expected {
		got := ledger.Assign(d, ".jpg")
		if got != want {
			t.Errorf("Assignment %d: expected %q, got %q", i, want, got)
		}
	}

	if ledger.Count("2024-01-15") != 3 {
		t.Errorf("Expected count 3, got %d", ledger.Count("2024-01-15"))
	}
}

func TestCollisionLedger_IndependentKeys(t *testing.T) {
	ledger := NewCollisionLedger()
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC)

	if got := ledger.Assign(jan, ".jpg"); got != "2024-01-15.jpg" {
		t.Errorf("Expected bare name, got %q", got)
	}
	if got := ledger.Assign(feb, ".jpg"); got != "2024-02-16.jpg" {
		t.Errorf("Expected bare name for a fresh date, got %q", got)
	}
	if got := ledger.Assign(jan, ".heic"); got != "2024-01-15-01.heic" {
		t.Errorf("Expected suffix on second assignment, got %q", got)
	}
}

func TestCollisionLedger_ReversedOrderSameMultiset(t *testing.T) {
	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	forward := NewCollisionLedger()
	var a []string
	for i := 0; i < 3; i++ {
		a = append(a, forward.Assign(d, ".jpg"))
	}

	reversed := NewCollisionLedger()
	var b []string
	for i := 0; i < 3; i++ {
		b = append(b, reversed.Assign(d, ".jpg"))
	}

	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Expected same multiset of names, diverged at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestCollisionLedger_FreshPerBatch(t *testing.T) {
	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	first := NewCollisionLedger()
	first.Assign(d, ".jpg")
	first.Assign(d, ".jpg")

	// A new batch starts over; no cross-batch memory.
	second := NewCollisionLedger()
	if got := second.Assign(d, ".jpg"); got != "2024-01-15.jpg" {
		t.Errorf("Expected a fresh ledger to issue the bare name, got %q", got)
	}
}
